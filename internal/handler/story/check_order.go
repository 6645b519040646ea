package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// CheckOrderRequest 排序小游戏答案
type CheckOrderRequest struct {
	SectionIDs []string `json:"section_ids" binding:"required,min=1"` // 孩子给出的段落顺序
}

// CheckOrder 校验故事排序
// @Summary      校验故事排序
// @Description  提交的段落ID必须是故事段落的一个排列
// @Tags         故事库
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "故事ID"
// @Param        request  body      CheckOrderRequest  true  "提交的顺序"
// @Success      200      {object}  httpPkg.SuccessResponse
// @Failure      400      {object}  httpPkg.ErrorResponse
// @Failure      404      {object}  httpPkg.ErrorResponse
// @Router       /story-liabrary/stories/{id}/check-order [post]
func (h *Handler) CheckOrder(c *gin.Context) {
	var req CheckOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	result, err := h.storyService.CheckOrder(c.Request.Context(), c.Param("id"), req.SectionIDs)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", result)
}
