package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"slpece/internal/pkg/inference"
	"slpece/internal/pkg/storage"
	"slpece/internal/pkg/storage/local"
	"slpece/internal/pkg/storygen"
	"slpece/internal/pkg/svgpath"
)

// bucketStorage 模拟可为任意 bucket 签名的后端
type bucketStorage struct {
	*local.LocalStorage
	lastExpiry time.Duration
}

func (b *bucketStorage) PresignBucketObject(ctx context.Context, bucket, key string, expiresIn time.Duration) (string, error) {
	if bucket == "forbidden" {
		return "", fmt.Errorf("%w: %s", storage.ErrBucketMismatch, bucket)
	}
	b.lastExpiry = expiresIn
	return fmt.Sprintf("https://%s.example.com/%s?sig=1", bucket, key), nil
}

func newLocal(t *testing.T) *local.LocalStorage {
	st, err := local.NewLocalStorage(t.TempDir(), "http://localhost:8080/storage", 600)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestPresignService(t *testing.T) {
	Convey("预签名下载URL", t, func() {
		ctx := context.Background()

		Convey("支持任意 bucket 的后端使用 URI 中的 bucket", func() {
			st := &bucketStorage{LocalStorage: newLocal(t)}
			svc := NewPresignService(st)

			res, err := svc.GetDownloadURL(ctx, "s3://animal-images/lion/1.png", 0)
			So(err, ShouldBeNil)
			So(res.URL, ShouldEqual, "https://animal-images.example.com/lion/1.png?sig=1")
			So(res.Bucket, ShouldEqual, "animal-images")
			So(res.Key, ShouldEqual, "lion/1.png")
			So(st.lastExpiry, ShouldEqual, DefaultPresignExpiry)

			_, err = svc.GetDownloadURL(ctx, "s3://forbidden/x.png", time.Minute)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("其他后端按 key 签名", func() {
			st := newLocal(t)
			_, err := st.Upload(ctx, "stories/a.mp3", strings.NewReader("mp3"), 3, "audio/mpeg")
			So(err, ShouldBeNil)
			svc := NewPresignService(st)

			res, err := svc.GetDownloadURL(ctx, "s3://any/stories/a.mp3", time.Hour)
			So(err, ShouldBeNil)
			So(res.URL, ShouldStartWith, "http://localhost:8080/storage/stories/a.mp3?expires=")

			Convey("对象不存在返回 ErrObjectNotFound", func() {
				_, err := svc.GetDownloadURL(ctx, "s3://any/stories/missing.mp3", time.Hour)
				So(errors.Is(err, ErrObjectNotFound), ShouldBeTrue)
			})
		})

		Convey("非法 URI", func() {
			svc := NewPresignService(newLocal(t))
			_, err := svc.GetDownloadURL(ctx, "", 0)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			_, err = svc.GetDownloadURL(ctx, "ftp://bucket/key", 0)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})
	})

	Convey("预签名上传URL", t, func() {
		svc := NewPresignService(newLocal(t))

		Convey("本地存储不支持直传", func() {
			_, err := svc.GetUploadURL(context.Background(), "uploads/a.png", "image/png", 0)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("key 校验", func() {
			_, err := svc.GetUploadURL(context.Background(), "", "", 0)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			_, err = svc.GetUploadURL(context.Background(), "../etc/passwd", "", 0)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})
	})
}

type fakePredictor struct {
	pred  *inference.Prediction
	err   error
	got   []byte
	gotCT string
}

func (f *fakePredictor) Predict(ctx context.Context, filename, contentType string, image io.Reader) (*inference.Prediction, error) {
	f.got, _ = io.ReadAll(image)
	f.gotCT = contentType
	return f.pred, f.err
}

func TestRecognitionService(t *testing.T) {
	Convey("识别代理", t, func() {
		ctx := context.Background()
		predictor := &fakePredictor{pred: &inference.Prediction{Prediction: "lion", Confidence: 0.93}}

		Convey("返回识别结果", func() {
			svc := NewRecognitionService(predictor, nil)
			res, err := svc.Recognize(ctx, "cat.jpg", "image/jpeg", []byte("jpeg-bytes"))
			So(err, ShouldBeNil)
			So(res.Prediction, ShouldEqual, "lion")
			So(res.Confidence, ShouldEqual, 0.93)
			So(res.ImageKey, ShouldBeEmpty)
			So(string(predictor.got), ShouldEqual, "jpeg-bytes")
		})

		Convey("配置存储时保存图片", func() {
			st := newLocal(t)
			svc := NewRecognitionService(predictor, st)
			res, err := svc.Recognize(ctx, "photo.PNG", "image/png", []byte("png-bytes"))
			So(err, ShouldBeNil)
			So(res.ImageKey, ShouldStartWith, "recognitions/")
			So(res.ImageKey, ShouldEndWith, ".png")

			data, err := os.ReadFile(filepath.Join(st.BasePath(), res.ImageKey))
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "png-bytes")
		})

		Convey("未知 Content-Type 按扩展名推断", func() {
			_, err := NewRecognitionService(predictor, nil).Recognize(ctx, "cat.png", "application/octet-stream", []byte("x"))
			So(err, ShouldBeNil)
			So(predictor.gotCT, ShouldEqual, "image/png")
		})

		Convey("识别失败时删除已保存的图片", func() {
			st := newLocal(t)
			predictor.err = inference.ErrUpstream
			_, err := NewRecognitionService(predictor, st).Recognize(ctx, "a.jpg", "image/jpeg", []byte("x"))
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)

			entries, err := os.ReadDir(filepath.Join(st.BasePath(), "recognitions"))
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 0)
		})

		Convey("空图片", func() {
			_, err := NewRecognitionService(predictor, nil).Recognize(ctx, "a.jpg", "image/jpeg", nil)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("上游失败返回 ErrUpstream", func() {
			predictor.err = inference.ErrUpstream
			_, err := NewRecognitionService(predictor, nil).Recognize(ctx, "a.jpg", "image/jpeg", []byte("x"))
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
		})
	})
}

type fakeGenerator struct {
	parts []storygen.Part
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) ([]storygen.Part, error) {
	return f.parts, f.err
}

func TestStoryGenService(t *testing.T) {
	Convey("故事生成", t, func() {
		ctx := context.Background()
		gen := &fakeGenerator{parts: []storygen.Part{{Part: 1, Text: "Once."}}}
		svc := NewStoryGenService(gen)

		parts, err := svc.Generate(ctx, "  a lion  ")
		So(err, ShouldBeNil)
		So(len(parts), ShouldEqual, 1)

		_, err = svc.Generate(ctx, "   ")
		So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

		gen.err = storygen.ErrUpstream
		_, err = svc.Generate(ctx, "a lion")
		So(errors.Is(err, ErrUpstream), ShouldBeTrue)
	})
}

type fakeIllustrator struct {
	prompts []string
	failOn  int
}

func (f *fakeIllustrator) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.prompts) == f.failOn {
		return nil, errors.New("quota exceeded")
	}
	return []byte("png-bytes"), nil
}

func TestStoryGenService_Illustrations(t *testing.T) {
	Convey("为缺少插图的段落生成插图", t, func() {
		ctx := context.Background()
		st := newLocal(t)
		gen := &fakeGenerator{parts: []storygen.Part{
			{Part: 1, Text: "The lion wakes."},
			{Part: 2, Text: "He finds a friend.", ImageURL: "https://cdn/2.png"},
			{Part: 3, Text: "They play."},
		}}
		ill := &fakeIllustrator{failOn: 2}
		svc := NewStoryGenService(gen).WithIllustrations(ill, st)

		parts, err := svc.Generate(ctx, "a lion")
		So(err, ShouldBeNil)
		So(len(ill.prompts), ShouldEqual, 2)
		So(ill.prompts[0], ShouldContainSubstring, "The lion wakes.")

		So(parts[0].ImageURL, ShouldStartWith, "http://localhost:8080/storage/illustrations/")
		So(parts[1].ImageURL, ShouldEqual, "https://cdn/2.png")
		// 第三段插图生成失败，保持为空
		So(parts[2].ImageURL, ShouldBeEmpty)

		key := strings.TrimPrefix(parts[0].ImageURL, "http://localhost:8080/storage/")
		data, err := os.ReadFile(filepath.Join(st.BasePath(), key))
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, "png-bytes")
	})
}

func TestDrawingService(t *testing.T) {
	Convey("画板保存为 SVG", t, func() {
		ctx := context.Background()
		st := newLocal(t)
		svc := NewDrawingService(st)

		strokes := []svgpath.Stroke{{{X: 1, Y: 2}, {X: 3, Y: 4}}}

		Convey("上传到 drawings/<user_id>/", func() {
			res, err := svc.SaveDrawing(ctx, &SaveDrawingRequest{UserID: "kid-1", Strokes: strokes})
			So(err, ShouldBeNil)
			So(res.Key, ShouldStartWith, "drawings/kid-1/")
			So(res.Key, ShouldEndWith, ".svg")
			So(res.Path, ShouldEqual, "M 1 2 L 3 4")
			So(res.URL, ShouldStartWith, "http://localhost:8080/storage/drawings/kid-1/")

			data, err := os.ReadFile(filepath.Join(st.BasePath(), res.Key))
			So(err, ShouldBeNil)
			So(strings.HasPrefix(string(data), "<svg"), ShouldBeTrue)
		})

		Convey("读取与删除", func() {
			res, err := svc.SaveDrawing(ctx, &SaveDrawingRequest{UserID: "kid-1", Strokes: strokes})
			So(err, ShouldBeNil)
			So(res.Key, ShouldEqual, "drawings/kid-1/"+res.ID+".svg")

			data, err := svc.GetDrawing(ctx, "kid-1", res.ID)
			So(err, ShouldBeNil)
			So(strings.HasPrefix(string(data), "<svg"), ShouldBeTrue)

			// 带 .svg 后缀的 id 同样可以定位
			_, err = svc.GetDrawing(ctx, "kid-1", res.ID+".svg")
			So(err, ShouldBeNil)

			So(svc.DeleteDrawing(ctx, "kid-1", res.ID), ShouldBeNil)
			_, err = svc.GetDrawing(ctx, "kid-1", res.ID)
			So(errors.Is(err, ErrDrawingNotFound), ShouldBeTrue)
			So(errors.Is(svc.DeleteDrawing(ctx, "kid-1", res.ID), ErrDrawingNotFound), ShouldBeTrue)
		})

		Convey("读取参数校验", func() {
			_, err := svc.GetDrawing(ctx, "kid-1", "..")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			So(errors.Is(svc.DeleteDrawing(ctx, "", "x"), ErrInvalidInput), ShouldBeTrue)
		})

		Convey("没有笔画", func() {
			_, err := svc.SaveDrawing(ctx, &SaveDrawingRequest{UserID: "kid-1"})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("非法 user_id", func() {
			_, err := svc.SaveDrawing(ctx, &SaveDrawingRequest{UserID: "../x", Strokes: strokes})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			_, err = svc.SaveDrawing(ctx, &SaveDrawingRequest{Strokes: strokes})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})
	})
}
