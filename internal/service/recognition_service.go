package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"slpece/internal/pkg/id"
	"slpece/internal/pkg/inference"
	"slpece/internal/pkg/metrics"
	"slpece/internal/pkg/storage"
)

// ErrUpstream 外部服务（识别/故事生成）失败
var ErrUpstream = errors.New("upstream service error")

// Predictor 图片识别
type Predictor interface {
	Predict(ctx context.Context, filename, contentType string, image io.Reader) (*inference.Prediction, error)
}

// RecognitionService 动物识别代理服务
type RecognitionService struct {
	predictor Predictor
	storage   storage.Storage // 为 nil 时不保存上传的图片
}

// NewRecognitionService 创建识别服务
func NewRecognitionService(predictor Predictor, st storage.Storage) *RecognitionService {
	return &RecognitionService{predictor: predictor, storage: st}
}

// RecognitionResult 识别结果
type RecognitionResult struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	ImageKey   string  `json:"image_key,omitempty"`
}

// Recognize 转发图片到识别模型
// 配置存储时先保存图片，识别失败则删除已保存的图片
func (s *RecognitionService) Recognize(ctx context.Context, filename, contentType string, image []byte) (*RecognitionResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = storage.ContentTypeByExt(filename)
	}

	key := s.storeImage(ctx, filename, contentType, image)

	pred, err := s.predictor.Predict(ctx, filename, contentType, bytes.NewReader(image))
	if err != nil {
		metrics.UpstreamCalls.WithLabelValues("inference", "error").Inc()
		log.Error().Err(err).Str("filename", filename).Msg("inference request failed")
		s.removeImage(ctx, key)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	metrics.UpstreamCalls.WithLabelValues("inference", "ok").Inc()

	return &RecognitionResult{Prediction: pred.Prediction, Confidence: pred.Confidence, ImageKey: key}, nil
}

// storeImage 保存失败不影响识别，返回空 key
func (s *RecognitionService) storeImage(ctx context.Context, filename, contentType string, image []byte) string {
	if s.storage == nil {
		return ""
	}
	key := "recognitions/" + id.New() + imageExt(filename, contentType)
	if _, err := s.storage.Upload(ctx, key, bytes.NewReader(image), int64(len(image)), contentType); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to store recognition image")
		return ""
	}
	return key
}

func (s *RecognitionService) removeImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove recognition image")
	}
}

func imageExt(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
