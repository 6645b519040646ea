package ctxutil

import (
	"context"
	"time"
)

// authKeyType 使用私有类型避免与其他 context key 冲突
type authKeyType struct{}

var authKey = authKeyType{}

// AuthInfo 认证中间件解析出的身份信息
type AuthInfo struct {
	UserID    string
	Username  string
	TokenID   string    // jti
	ExpiresAt time.Time // token 过期时间
}

// WithAuth 将身份信息注入到 context 中
// 在认证中间件中解析 JWT 成功后调用：
//
//	ctx := ctxutil.WithAuth(c.Request.Context(), info)
//	c.Request = c.Request.WithContext(ctx)
func WithAuth(ctx context.Context, info AuthInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, authKey, info)
}

// GetAuth 从 context 中解析身份信息
func GetAuth(ctx context.Context) (AuthInfo, bool) {
	if ctx == nil {
		return AuthInfo{}, false
	}
	info, ok := ctx.Value(authKey).(AuthInfo)
	if !ok || info.UserID == "" {
		return AuthInfo{}, false
	}
	return info, true
}

// GetUserID 从 context 中解析 userID
func GetUserID(ctx context.Context) (string, bool) {
	info, ok := GetAuth(ctx)
	return info.UserID, ok
}
