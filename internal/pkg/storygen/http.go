package storygen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPGenerator 调用外部故事生成服务
// 请求 {story_prompt}，响应中的片段可能位于 story_parts / parts / segments
type HTTPGenerator struct {
	url        string
	httpClient *http.Client
}

// NewHTTPGenerator 创建 HTTP 故事生成器
func NewHTTPGenerator(url string, timeout time.Duration) *HTTPGenerator {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPGenerator{url: url, httpClient: &http.Client{Timeout: timeout}}
}

type upstreamPart struct {
	Text      string `json:"text"`
	StoryText string `json:"story_text"`
	Content   string `json:"content"`
	ImageURL  string `json:"image_url"`
	ImageURL2 string `json:"imageUrl"`
	Image     string `json:"image"`
}

func (p upstreamPart) toPart() Part {
	return Part{
		Text:     firstNonEmpty(p.Text, p.StoryText, p.Content),
		ImageURL: firstNonEmpty(p.ImageURL, p.ImageURL2, p.Image),
	}
}

type upstreamResponse struct {
	StoryParts []upstreamPart `json:"story_parts"`
	Parts      []upstreamPart `json:"parts"`
	Segments   []upstreamPart `json:"segments"`
}

// Generate 生成故事
func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) ([]Part, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	payload, err := json.Marshal(map[string]string{"story_prompt": prompt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body upstreamResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	raw := body.StoryParts
	if len(raw) == 0 {
		raw = body.Parts
	}
	if len(raw) == 0 {
		raw = body.Segments
	}

	parts := make([]Part, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, p.toPart())
	}
	parts = normalize(parts)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no story parts in response", ErrUpstream)
	}
	return parts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
