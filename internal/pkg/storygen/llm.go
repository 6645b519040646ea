package storygen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"slpece/internal/config"
	"slpece/internal/pkg/ark"
)

const systemPrompt = `You write short picture-book stories for children aged 3 to 6.
Split the story into 4 to 6 parts of one or two simple sentences each.
Reply with a JSON array only, for example: [{"text":"..."},{"text":"..."}]`

// chatGenerator eino ChatModel 的 Generate 能力
type chatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// LLMGenerator 使用大模型生成故事（不生成图片）
type LLMGenerator struct {
	chat chatGenerator
}

// NewLLMGenerator 根据 AI 配置创建生成器
func NewLLMGenerator(ctx context.Context, cfg *config.AIConfig) (*LLMGenerator, error) {
	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &LLMGenerator{chat: chatModel}, nil
}

// Generate 生成故事
func (g *LLMGenerator) Generate(ctx context.Context, prompt string) ([]Part, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	resp, err := g.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var parts []Part
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &parts); err != nil {
		return nil, fmt.Errorf("%w: model reply is not a JSON array: %v", ErrUpstream, err)
	}
	parts = normalize(parts)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: model returned no parts", ErrUpstream)
	}
	return parts, nil
}

// extractJSON 去掉 ```json 代码块包裹，截取第一个 [ 到最后一个 ]
func extractJSON(content string) string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return strings.TrimSpace(content)
	}
	return content[start : end+1]
}

// newChatModel 创建 ChatModel，支持 openai 与 ark
func newChatModel(ctx context.Context, cfg *config.AIConfig) (model.ChatModel, error) {
	var temperature, topP *float32
	if cfg.Options.Temperature > 0 {
		t := float32(cfg.Options.Temperature)
		temperature = &t
	}
	if cfg.Options.TopP > 0 {
		p := float32(cfg.Options.TopP)
		topP = &p
	}
	var maxTokens *int
	if cfg.Options.MaxTokens > 0 {
		maxTokens = &cfg.Options.MaxTokens
	}

	switch cfg.Provider {
	case "openai", "":
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Temperature: temperature,
			TopP:        topP,
			MaxTokens:   maxTokens,
		})
	case "ark":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = ark.DefaultBaseURL
		}
		return arkext.NewChatModel(ctx, &arkext.ChatModelConfig{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			BaseURL:     baseURL,
			Temperature: temperature,
			TopP:        topP,
			MaxTokens:   maxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
