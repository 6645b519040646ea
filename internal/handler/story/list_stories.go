package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// ListStoriesRequest 分页参数
type ListStoriesRequest struct {
	Page     int64 `form:"page"`      // 页码，默认1
	PageSize int64 `form:"page_size"` // 每页数量，默认20，最大100
}

// ListStories 分页获取全部故事
// @Summary      故事列表
// @Tags         故事库
// @Produce      json
// @Param        page       query     int  false  "页码"
// @Param        page_size  query     int  false  "每页数量"
// @Success      200        {object}  httpPkg.SuccessResponse
// @Failure      400        {object}  httpPkg.ErrorResponse
// @Router       /story-liabrary/stories [get]
func (h *Handler) ListStories(c *gin.Context) {
	var req ListStoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	result, err := h.storyService.ListStories(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", result)
}

// ListUserStories 获取用户的全部故事
// @Summary      用户的故事
// @Description  最新的在前，段落已填充
// @Tags         故事库
// @Produce      json
// @Param        user_id  path      string  true  "用户ID"
// @Success      200      {object}  httpPkg.SuccessResponse
// @Router       /story-liabrary/stories/user/{user_id} [get]
func (h *Handler) ListUserStories(c *gin.Context) {
	stories, err := h.storyService.ListUserStories(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", stories)
}
