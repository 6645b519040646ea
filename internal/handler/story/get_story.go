package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// GetStory 获取故事详情
// @Summary      获取故事
// @Tags         故事库
// @Produce      json
// @Param        id   path      string  true  "故事ID"
// @Success      200  {object}  httpPkg.SuccessResponse
// @Failure      404  {object}  httpPkg.ErrorResponse
// @Router       /story-liabrary/stories/{id} [get]
func (h *Handler) GetStory(c *gin.Context) {
	detail, err := h.storyService.GetStory(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", detail)
}
