package music

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
	"slpece/internal/service"
)

// SubCategoryRequest 子分类
type SubCategoryRequest struct {
	SubCategory string   `json:"subCategory" binding:"required"` // 子分类名称
	MusicURLs   []string `json:"musicURLs"`                      // 音乐URL
}

// CreateMusicRequest 创建背景音乐请求
type CreateMusicRequest struct {
	MusicMood     string               `json:"musicmood" binding:"required"`     // 情绪（必填）
	MusicCategory string               `json:"musicCategory" binding:"required"` // 分类（必填）
	SubCategories []SubCategoryRequest `json:"subCategories" binding:"dive"`
}

// CreateMusic 创建背景音乐
// @Summary      创建背景音乐
// @Description  先写入子分类再写入背景音乐
// @Tags         背景音乐
// @Accept       json
// @Produce      json
// @Param        request  body      CreateMusicRequest  true  "背景音乐"
// @Success      201      {object}  httpPkg.SuccessResponse
// @Failure      400      {object}  httpPkg.ErrorResponse
// @Router       /story-music/ [post]
func (h *Handler) CreateMusic(c *gin.Context) {
	var req CreateMusicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	subs := make([]service.SubCategoryInput, 0, len(req.SubCategories))
	for _, sc := range req.SubCategories {
		subs = append(subs, service.SubCategoryInput{Name: sc.SubCategory, MusicURLs: sc.MusicURLs})
	}

	detail, err := h.musicService.CreateMusic(c.Request.Context(), &service.CreateMusicRequest{
		Mood:          req.MusicMood,
		Category:      req.MusicCategory,
		SubCategories: subs,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusCreated, "Background music created", detail)
}
