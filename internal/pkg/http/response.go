package http

import (
	"github.com/gin-gonic/gin"
)

// 业务错误码（5位：HTTP 状态码 + 序号）
const (
	CodeOK              = 0
	CodeBadRequest      = 40001
	CodeDuplicate       = 40002
	CodeUnauthorized    = 40101
	CodeTokenInvalid    = 40102
	CodeNotFound        = 40401
	CodeTooManyRequests = 42901
	CodeInternal        = 50001
	CodeUpstream        = 50201
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应（所有API共用）
type SuccessResponse struct {
	Code    int         `json:"code"`           // 状态码（0表示成功）
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据（可选）
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Code:    CodeOK,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// Success 写出成功响应
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, NewSuccessResponse(message, data))
}

// Fail 写出错误响应
func Fail(c *gin.Context, status, code int, message string, detail ...string) {
	c.JSON(status, NewErrorResponse(code, message, detail...))
}

// Abort 写出错误响应并终止后续中间件
func Abort(c *gin.Context, status, code int, message string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(code, message))
}
