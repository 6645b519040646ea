// Package storygen 根据一句提示生成分段故事
package storygen

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrEmptyPrompt 提示为空
	ErrEmptyPrompt = errors.New("story prompt is required")
	// ErrUpstream 故事生成服务错误
	ErrUpstream = errors.New("story generation service error")
)

// Part 故事片段
type Part struct {
	Part     int    `json:"part"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

// Generator 故事生成器
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]Part, error)
}

// normalize 去掉空片段并重新编号（从 1 开始）
func normalize(parts []Part) []Part {
	out := make([]Part, 0, len(parts))
	for _, p := range parts {
		p.Text = strings.TrimSpace(p.Text)
		p.ImageURL = strings.TrimSpace(p.ImageURL)
		if p.Text == "" {
			continue
		}
		p.Part = len(out) + 1
		out = append(out, p)
	}
	return out
}
