package media

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// GenerateStoryRequest 故事生成请求
type GenerateStoryRequest struct {
	StoryPrompt string `json:"story_prompt" binding:"required"`
}

// GenerateStory 根据提示生成分段故事
// @Summary      生成故事
// @Tags         故事生成
// @Accept       json
// @Produce      json
// @Param        request  body      GenerateStoryRequest  true  "提示"
// @Success      200      {object}  httpPkg.SuccessResponse
// @Failure      400      {object}  httpPkg.ErrorResponse
// @Failure      502      {object}  httpPkg.ErrorResponse
// @Router       /generate-story [post]
func (h *Handler) GenerateStory(c *gin.Context) {
	var req GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	parts, err := h.storyGenService.Generate(c.Request.Context(), req.StoryPrompt)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", gin.H{"story_parts": parts})
}
