package story

import (
	"slpece/internal/service"
)

// Handler 故事库处理器
type Handler struct {
	storyService service.StoryService
}

// NewHandler 创建故事库处理器
func NewHandler(storyService service.StoryService) *Handler {
	return &Handler{
		storyService: storyService,
	}
}
