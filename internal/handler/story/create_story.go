package story

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
	"slpece/internal/service"
)

// SectionRequest 故事段落
type SectionRequest struct {
	StoryText  string `json:"storyText" binding:"required"` // 段落文本（必填）
	StoryImage string `json:"storyImage"`                   // 图片URL
	StoryAudio string `json:"storyAudio"`                   // 音频URL
}

// CreateStoryRequest 创建故事请求
type CreateStoryRequest struct {
	UserID             string           `json:"user_id" binding:"required"`             // 创建者（必填）
	StoryName          string           `json:"storyName" binding:"required"`           // 故事名称（必填）
	Story              string           `json:"story"`                                  // 故事全文
	StoryTextColor     string           `json:"storyTextColor"`                         // 文字颜色
	StoryTextSize      string           `json:"storyTextSize"`                          // 文字大小
	StoryTextStyle     string           `json:"storyTextStyle"`                         // 文字样式
	BackgroundMusicURL string           `json:"backgroundMusicURL"`                     // 背景音乐
	Sections           []SectionRequest `json:"sections" binding:"required,min=1,dive"` // 段落（至少一个）
}

// CreateStory 创建故事
// @Summary      创建故事
// @Description  先写入段落再写入故事，故事写入失败时回滚段落
// @Tags         故事库
// @Accept       json
// @Produce      json
// @Param        request  body      CreateStoryRequest  true  "故事"
// @Success      201      {object}  httpPkg.SuccessResponse
// @Failure      400      {object}  httpPkg.ErrorResponse
// @Failure      500      {object}  httpPkg.ErrorResponse
// @Router       /story-liabrary/stories [post]
func (h *Handler) CreateStory(c *gin.Context) {
	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	sections := make([]service.SectionInput, 0, len(req.Sections))
	for _, s := range req.Sections {
		sections = append(sections, service.SectionInput{
			Text:  s.StoryText,
			Image: s.StoryImage,
			Audio: s.StoryAudio,
		})
	}

	detail, err := h.storyService.CreateStory(c.Request.Context(), &service.CreateStoryRequest{
		UserID:             req.UserID,
		Name:               req.StoryName,
		Text:               req.Story,
		TextColor:          req.StoryTextColor,
		TextSize:           req.StoryTextSize,
		TextStyle:          req.StoryTextStyle,
		BackgroundMusicURL: req.BackgroundMusicURL,
		Sections:           sections,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	httpPkg.Success(c, http.StatusCreated, "Story created", detail)
}
