package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"slpece/internal/pkg/id"
	"slpece/internal/pkg/metrics"
	"slpece/internal/pkg/storage"
	"slpece/internal/pkg/storygen"
)

// Illustrator 根据文字生成插图
type Illustrator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// StoryGenService 故事生成代理服务
type StoryGenService struct {
	generator   storygen.Generator
	illustrator Illustrator     // 可为 nil
	storage     storage.Storage // 插图写入位置，illustrator 非 nil 时必需
}

// NewStoryGenService 创建故事生成服务
func NewStoryGenService(generator storygen.Generator) *StoryGenService {
	return &StoryGenService{generator: generator}
}

// WithIllustrations 为缺少 image_url 的段落生成插图并写入存储
func (s *StoryGenService) WithIllustrations(illustrator Illustrator, st storage.Storage) *StoryGenService {
	s.illustrator = illustrator
	s.storage = st
	return s
}

// Generate 根据提示生成分段故事
func (s *StoryGenService) Generate(ctx context.Context, prompt string) ([]storygen.Part, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: story_prompt is required", ErrInvalidInput)
	}

	parts, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, storygen.ErrEmptyPrompt) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		metrics.UpstreamCalls.WithLabelValues("storygen", "error").Inc()
		log.Error().Err(err).Msg("story generation failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	metrics.UpstreamCalls.WithLabelValues("storygen", "ok").Inc()

	if s.illustrator != nil && s.storage != nil {
		s.illustrate(ctx, prompt, parts)
	}

	log.Info().Int("parts", len(parts)).Msg("story generated")
	return parts, nil
}

// illustrate 逐段生成插图，单段失败只记录日志
func (s *StoryGenService) illustrate(ctx context.Context, prompt string, parts []storygen.Part) {
	for i := range parts {
		if parts[i].ImageURL != "" {
			continue
		}
		image, err := s.illustrator.GenerateImage(ctx, illustrationPrompt(prompt, parts[i].Text))
		if err != nil {
			metrics.UpstreamCalls.WithLabelValues("illustration", "error").Inc()
			log.Warn().Err(err).Int("part", parts[i].Part).Msg("failed to illustrate story part")
			continue
		}
		metrics.UpstreamCalls.WithLabelValues("illustration", "ok").Inc()

		key := "illustrations/" + id.New() + ".png"
		url, err := s.storage.Upload(ctx, key, bytes.NewReader(image), int64(len(image)), "image/png")
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to store illustration")
			continue
		}
		parts[i].ImageURL = url
	}
}

func illustrationPrompt(topic, text string) string {
	return fmt.Sprintf("Children's picture book illustration, soft colors, no text. Story about %s. Scene: %s", topic, text)
}
