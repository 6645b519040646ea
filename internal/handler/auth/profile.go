package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	"slpece/internal/pkg/ctxutil"
	httpPkg "slpece/internal/pkg/http"
)

// Profile 获取当前用户信息
// @Summary      当前用户
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  httpPkg.SuccessResponse
// @Failure      401  {object}  httpPkg.ErrorResponse
// @Router       /profile [get]
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		httpPkg.Fail(c, http.StatusUnauthorized, httpPkg.CodeUnauthorized, "未授权")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	httpPkg.Success(c, http.StatusOK, "success", toUserInfo(user))
}
