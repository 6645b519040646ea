package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"slpece/internal/pkg/ctxutil"
	httpPkg "slpece/internal/pkg/http"
	"slpece/internal/pkg/jwt"
)

// RevocationChecker 查询 token（jti）是否已被吊销
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth JWT 认证中间件
// 从 Authorization header 中提取 Bearer token，验证后注入身份信息到 context
func Auth(jwtUtil *jwt.JWT, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpPkg.Abort(c, http.StatusUnauthorized, httpPkg.CodeUnauthorized, "未授权")
			return
		}

		// Bearer {token}
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httpPkg.Abort(c, http.StatusUnauthorized, httpPkg.CodeUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			msg := "Token无效"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Token已过期"
			}
			httpPkg.Abort(c, http.StatusUnauthorized, httpPkg.CodeTokenInvalid, msg)
			return
		}

		if revocations != nil {
			revoked, err := revocations.IsTokenRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis 不可用时放行，避免整个认证链路不可用
				log.Warn().Err(err).Str("jti", claims.ID).Msg("failed to check token revocation")
			} else if revoked {
				httpPkg.Abort(c, http.StatusUnauthorized, httpPkg.CodeTokenInvalid, "Token已失效")
				return
			}
		}

		info := ctxutil.AuthInfo{
			UserID:   claims.UserID,
			Username: claims.Username,
			TokenID:  claims.ID,
		}
		if claims.ExpiresAt != nil {
			info.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Set("user_id", claims.UserID)
		c.Request = c.Request.WithContext(ctxutil.WithAuth(c.Request.Context(), info))

		c.Next()
	}
}
