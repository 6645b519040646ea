package password

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinLength 密码最小长度
	MinLength = 6
	// MaxBytes bcrypt 只接受 72 字节以内的输入
	MaxBytes = 72
)

// Hash 加密密码
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 验证密码
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
