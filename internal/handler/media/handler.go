package media

import (
	"slpece/internal/service"
)

// maxImageSize 识别接口允许的图片大小
const maxImageSize = 10 << 20

// Handler 媒体相关处理器：预签名、识别、故事生成、画板
// 依赖的服务为 nil 时对应接口不注册
type Handler struct {
	presignService     *service.PresignService
	recognitionService *service.RecognitionService
	storyGenService    *service.StoryGenService
	drawingService     *service.DrawingService
}

// NewHandler 创建媒体处理器
func NewHandler(
	presignService *service.PresignService,
	recognitionService *service.RecognitionService,
	storyGenService *service.StoryGenService,
	drawingService *service.DrawingService,
) *Handler {
	return &Handler{
		presignService:     presignService,
		recognitionService: recognitionService,
		storyGenService:    storyGenService,
		drawingService:     drawingService,
	}
}
