package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	"slpece/internal/pkg/ctxutil"
	httpPkg "slpece/internal/pkg/http"
)

// Logout 退出登录
// @Summary      退出登录
// @Description  吊销当前 Access Token，直到其过期
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httpPkg.SuccessResponse
// @Failure      401  {object}  httpPkg.ErrorResponse
// @Router       /logout [post]
func (h *Handler) Logout(c *gin.Context) {
	info, ok := ctxutil.GetAuth(c.Request.Context())
	if !ok {
		httpPkg.Fail(c, http.StatusUnauthorized, httpPkg.CodeUnauthorized, "未授权")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), info); err != nil {
		handler.RespondError(c, err)
		return
	}

	httpPkg.Success(c, http.StatusOK, "Logged out", nil)
}
