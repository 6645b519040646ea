package media

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// PresignDownloadRequest 获取下载URL参数
type PresignDownloadRequest struct {
	S3URI     string `form:"s3Uri" binding:"required"` // s3://bucket/key
	ExpiresIn int    `form:"expires_in" binding:"omitempty,min=1"`
}

// PresignUploadRequest 获取上传URL参数
type PresignUploadRequest struct {
	Key         string `form:"key" binding:"required"`
	ContentType string `form:"content_type"`
	ExpiresIn   int    `form:"expires_in" binding:"omitempty,min=1"`
}

// GetPresignedURL 获取预签名下载URL
// @Summary      获取预签名下载URL
// @Description  expires_in 默认3600秒，不超过存储配置的上限
// @Tags         存储
// @Produce      json
// @Param        s3Uri       query     string  true   "s3://bucket/key"
// @Param        expires_in  query     int     false  "过期时间（秒）"
// @Success      200         {object}  httpPkg.SuccessResponse
// @Failure      400         {object}  httpPkg.ErrorResponse
// @Failure      404         {object}  httpPkg.ErrorResponse
// @Router       /s3/get-presigned-url [get]
func (h *Handler) GetPresignedURL(c *gin.Context) {
	var req PresignDownloadRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpPkg.Fail(c, http.StatusBadRequest, httpPkg.CodeBadRequest, "s3Uri is required", err.Error())
		return
	}

	result, err := h.presignService.GetDownloadURL(c.Request.Context(), req.S3URI, time.Duration(req.ExpiresIn)*time.Second)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", result)
}

// GetPresignedUploadURL 获取预签名上传URL
// @Summary      获取预签名上传URL
// @Tags         存储
// @Produce      json
// @Param        key           query     string  true   "对象key"
// @Param        content_type  query     string  false  "Content-Type"
// @Param        expires_in    query     int     false  "过期时间（秒）"
// @Success      200           {object}  httpPkg.SuccessResponse
// @Failure      400           {object}  httpPkg.ErrorResponse
// @Router       /s3/get-presigned-upload-url [get]
func (h *Handler) GetPresignedUploadURL(c *gin.Context) {
	var req PresignUploadRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	result, err := h.presignService.GetUploadURL(c.Request.Context(), req.Key, req.ContentType, time.Duration(req.ExpiresIn)*time.Second)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	httpPkg.Success(c, http.StatusOK, "success", result)
}
