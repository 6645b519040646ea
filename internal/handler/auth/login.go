package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// LoginRequest 用户登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // 用户名（必填）
	Password string `json:"password" binding:"required"` // 密码（必填）
}

// LoginResponseData 登录响应数据
type LoginResponseData struct {
	AccessToken string   `json:"access_token"` // Access Token
	TokenType   string   `json:"token_type"`   // Token类型：Bearer
	ExpiresIn   int      `json:"expires_in"`   // 过期时间（秒）
	User        UserInfo `json:"user"`         // 用户信息
}

// Login 用户登录
// @Summary      用户登录
// @Description  用户登录，返回Access Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "登录请求"
// @Success      200      {object}  httpPkg.SuccessResponse
// @Failure      400      {object}  httpPkg.ErrorResponse
// @Failure      401      {object}  httpPkg.ErrorResponse
// @Failure      429      {object}  httpPkg.ErrorResponse
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	httpPkg.Success(c, http.StatusOK, "Login successful", LoginResponseData{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
		User:        toUserInfo(resp.User),
	})
}
