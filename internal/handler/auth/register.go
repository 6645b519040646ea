package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slpece/internal/handler"
	httpPkg "slpece/internal/pkg/http"
)

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"` // 用户名（必填，3-50字符）
	Password string `json:"password" binding:"required,min=6,max=72"` // 密码（必填，6-72位，UTF-8 编码后不超过72字节）
}

// RegisterResponseData 注册响应数据
type RegisterResponseData struct {
	UserID   string `json:"user_id"`  // 用户ID
	Username string `json:"username"` // 用户名
}

// Register 用户注册
// @Summary      用户注册
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "注册请求"
// @Success      201      {object}  httpPkg.SuccessResponse
// @Failure      400      {object}  httpPkg.ErrorResponse
// @Failure      429      {object}  httpPkg.ErrorResponse
// @Failure      500      {object}  httpPkg.ErrorResponse
// @Router       /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	// 调用Service层（传递基本类型参数，不依赖Handler层的Request类型）
	resp, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	httpPkg.Success(c, http.StatusCreated, "User registered", RegisterResponseData{
		UserID:   resp.UserID,
		Username: resp.Username,
	})
}
