package music

import (
	"slpece/internal/service"
)

// Handler 背景音乐处理器
type Handler struct {
	musicService service.MusicService
}

// NewHandler 创建背景音乐处理器
func NewHandler(musicService service.MusicService) *Handler {
	return &Handler{
		musicService: musicService,
	}
}
