package storage

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseS3URI(t *testing.T) {
	Convey("ParseS3URI 解析 bucket 和 key", t, func() {
		Convey("s3 scheme", func() {
			ref, err := ParseS3URI("s3://slpece-media/stories/lion/page1.png")
			So(err, ShouldBeNil)
			So(ref.Bucket, ShouldEqual, "slpece-media")
			So(ref.Key, ShouldEqual, "stories/lion/page1.png")
		})

		Convey("虚拟主机风格 https URL", func() {
			ref, err := ParseS3URI("https://slpece-media.s3.us-east-1.amazonaws.com/audio/a.mp3")
			So(err, ShouldBeNil)
			So(ref.Bucket, ShouldEqual, "slpece-media")
			So(ref.Key, ShouldEqual, "audio/a.mp3")
		})

		Convey("非法输入", func() {
			for _, raw := range []string{
				"",
				"   ",
				"s3://bucket-only",
				"s3://bucket/",
				"s3://bucket/dir/",
				"ftp://bucket/key",
				"https://example.com/key",
				"s3:///key",
			} {
				_, err := ParseS3URI(raw)
				So(err, ShouldEqual, ErrInvalidS3URI)
			}
		})
	})
}

func TestClampExpiry(t *testing.T) {
	Convey("ClampExpiry 受配置上限约束", t, func() {
		So(ClampExpiry(time.Hour, 0), ShouldEqual, time.Hour)
		So(ClampExpiry(time.Hour, 600), ShouldEqual, 10*time.Minute)
		So(ClampExpiry(time.Minute, 600), ShouldEqual, time.Minute)
		So(ClampExpiry(0, 600), ShouldEqual, 10*time.Minute)
	})
}

func TestContentTypeByExt(t *testing.T) {
	Convey("根据扩展名推断 Content-Type", t, func() {
		So(ContentTypeByExt("a.png"), ShouldEqual, "image/png")
		So(ContentTypeByExt("drawings/u1/a.SVG"), ShouldEqual, "image/svg+xml")
		So(ContentTypeByExt("a.unknownext"), ShouldEqual, "application/octet-stream")
		So(ContentTypeByExt("noext"), ShouldEqual, "application/octet-stream")
	})
}
