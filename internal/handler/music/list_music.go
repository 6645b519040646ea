package music

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// ListMusic 全部背景音乐
// @Summary      背景音乐列表
// @Tags         背景音乐
// @Produce      json
// @Success      200  {object}  httpPkg.SuccessResponse
// @Router       /story-music/ [get]
func (h *Handler) ListMusic(c *gin.Context) {
	items, err := h.musicService.ListMusic(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", items)
}
