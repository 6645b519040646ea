package music

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// SearchMusicRequest 搜索参数
type SearchMusicRequest struct {
	MusicMood     string `form:"musicmood"`
	MusicCategory string `form:"musicCategory"`
	SubCategory   string `form:"subCategory"`
}

// SearchMusic 搜索背景音乐
// @Summary      搜索背景音乐
// @Description  musicmood 与 musicCategory 至少提供一个；subCategory 只保留该子分类
// @Tags         背景音乐
// @Produce      json
// @Param        musicmood      query     string  false  "情绪"
// @Param        musicCategory  query     string  false  "分类"
// @Param        subCategory    query     string  false  "子分类"
// @Success      200            {object}  httpPkg.SuccessResponse
// @Failure      400            {object}  httpPkg.ErrorResponse
// @Failure      404            {object}  httpPkg.ErrorResponse
// @Router       /story-music/search [get]
func (h *Handler) SearchMusic(c *gin.Context) {
	var req SearchMusicRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	items, err := h.musicService.SearchMusic(c.Request.Context(), req.MusicMood, req.MusicCategory, req.SubCategory)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", items)
}
