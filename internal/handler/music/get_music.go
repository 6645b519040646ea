package music

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// GetMusic 获取背景音乐
// @Summary      获取背景音乐
// @Tags         背景音乐
// @Produce      json
// @Param        id   path      string  true  "背景音乐ID"
// @Success      200  {object}  httpPkg.SuccessResponse
// @Failure      404  {object}  httpPkg.ErrorResponse
// @Router       /story-music/{id} [get]
func (h *Handler) GetMusic(c *gin.Context) {
	detail, err := h.musicService.GetMusic(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", detail)
}
