// Package ark 火山引擎 Ark 图片生成客户端，用于为生成的故事段落配图
package ark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/volcengine/volcengine-go-sdk/service/arkruntime"
	"github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"
)

const (
	DefaultBaseURL    = "https://ark.cn-beijing.volces.com/api/v3"
	DefaultImageModel = "doubao-seedream-3-0-t2i-250415"
	DefaultImageSize  = "1024x1024"
)

// ErrNoImage 响应中没有图片数据
var ErrNoImage = errors.New("no image data in response")

// ImageConfig Ark 图片生成配置
type ImageConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	Size      string // 如 1024x1024
	Watermark bool
}

func (c ImageConfig) withDefaults() ImageConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultImageModel
	}
	if c.Size == "" {
		c.Size = DefaultImageSize
	}
	return c
}

// ImageClient Ark 图片生成客户端
type ImageClient struct {
	client *arkruntime.Client
	cfg    ImageConfig
}

// NewImageClient 创建图片生成客户端
func NewImageClient(cfg ImageConfig) (*ImageClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ark api key is required")
	}
	cfg = cfg.withDefaults()

	return &ImageClient{
		client: arkruntime.NewClientWithApiKey(cfg.APIKey, arkruntime.WithBaseUrl(cfg.BaseURL)),
		cfg:    cfg,
	}, nil
}

// GenerateImage 同步生成一张图片，返回解码后的图片字节
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	size := c.cfg.Size
	watermark := c.cfg.Watermark
	responseFormat := "b64_json"

	output, err := c.client.GenerateImages(ctx, model.GenerateImagesRequest{
		Model:          c.cfg.Model,
		Prompt:         prompt,
		Size:           &size,
		ResponseFormat: &responseFormat,
		Watermark:      &watermark,
	})
	if err != nil {
		return nil, fmt.Errorf("ark generate images: %w", err)
	}

	if len(output.Data) == 0 || output.Data[0].B64Json == nil {
		return nil, ErrNoImage
	}

	image, err := base64.StdEncoding.DecodeString(*output.Data[0].B64Json)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return image, nil
}
