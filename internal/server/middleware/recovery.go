package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	httpPkg "slpece/internal/pkg/http"
)

// Recovery 异常恢复中间件
// 堆栈只写日志，响应体中不返回内部细节
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Str("request_id", c.GetString(RequestIDKey)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				httpPkg.Abort(c, http.StatusInternalServerError, httpPkg.CodeInternal, "Internal Server Error")
			}
		}()
		c.Next()
	}
}
