package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// DeleteStory 删除故事及其段落
// @Summary      删除故事
// @Tags         故事库
// @Produce      json
// @Param        id   path      string  true  "故事ID"
// @Success      200  {object}  httpPkg.SuccessResponse
// @Failure      404  {object}  httpPkg.ErrorResponse
// @Router       /delete-story/{id} [delete]
func (h *Handler) DeleteStory(c *gin.Context) {
	id := c.Param("id")
	if err := h.storyService.DeleteStory(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "Story deleted", gin.H{"id": id})
}
