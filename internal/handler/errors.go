package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httpPkg "slpece/internal/pkg/http"
	"slpece/internal/service"
)

// RespondError 将 service 层错误映射为 HTTP 响应
// 未识别的错误统一返回 500，细节只写日志
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpPkg.Fail(c, http.StatusBadRequest, httpPkg.CodeBadRequest, "Invalid request", err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists):
		httpPkg.Fail(c, http.StatusBadRequest, httpPkg.CodeDuplicate, "Username already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpPkg.Fail(c, http.StatusUnauthorized, httpPkg.CodeUnauthorized, "Invalid username or password")
	case errors.Is(err, service.ErrStoryNotFound):
		httpPkg.Fail(c, http.StatusNotFound, httpPkg.CodeNotFound, "Story not found")
	case errors.Is(err, service.ErrMusicNotFound):
		httpPkg.Fail(c, http.StatusNotFound, httpPkg.CodeNotFound, "Background music not found")
	case errors.Is(err, service.ErrObjectNotFound):
		httpPkg.Fail(c, http.StatusNotFound, httpPkg.CodeNotFound, "Object not found")
	case errors.Is(err, service.ErrDrawingNotFound):
		httpPkg.Fail(c, http.StatusNotFound, httpPkg.CodeNotFound, "Drawing not found")
	case errors.Is(err, service.ErrUserNotFound):
		httpPkg.Fail(c, http.StatusNotFound, httpPkg.CodeNotFound, "User not found")
	case errors.Is(err, service.ErrUpstream):
		httpPkg.Fail(c, http.StatusBadGateway, httpPkg.CodeUpstream, "Upstream service unavailable")
	default:
		_ = c.Error(err)
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		httpPkg.Fail(c, http.StatusInternalServerError, httpPkg.CodeInternal, "Internal server error")
	}
}

// BadRequest 请求参数绑定失败
func BadRequest(c *gin.Context, err error) {
	httpPkg.Fail(c, http.StatusBadRequest, httpPkg.CodeBadRequest, "Invalid request body", err.Error())
}
