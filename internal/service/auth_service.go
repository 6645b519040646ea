package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"slpece/internal/model/auth"
	"slpece/internal/pkg/cache"
	"slpece/internal/pkg/ctxutil"
	"slpece/internal/pkg/id"
	"slpece/internal/pkg/jwt"
	"slpece/internal/pkg/password"
	authRepo "slpece/internal/repository/auth"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserAlreadyExists  = errors.New("用户已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
)

// UserRepository 用户存储（mongo / file 两种实现）
type UserRepository interface {
	Create(ctx context.Context, user *auth.User) error
	FindByID(ctx context.Context, id string) (*auth.User, error)
	FindByUsername(ctx context.Context, username string) (*auth.User, error)
	UpdateLastLoginAt(ctx context.Context, id string) error
}

// RevocationStore 保存已吊销 token 的 jti
type RevocationStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// AuthService 认证服务
type AuthService struct {
	userRepo    UserRepository
	revocations RevocationStore // 可为 nil，此时退出登录不吊销 token
	jwt         *jwt.JWT
	now         func() time.Time
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo UserRepository,
	revocations RevocationStore,
	jwtSecret string,
	accessTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		revocations: revocations,
		jwt:         jwt.NewJWT(jwtSecret, accessTokenExpiry),
		now:         time.Now,
	}
}

// JWT 返回 JWT 工具（供认证中间件使用）
func (s *AuthService) JWT() *jwt.JWT {
	return s.jwt
}

// RegisterResult 注册结果
type RegisterResult struct {
	UserID   string
	Username string
}

// Register 用户注册
// 使用基本类型参数，不依赖Handler层的Request类型
func (s *AuthService) Register(ctx context.Context, username, pwd string) (*RegisterResult, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < UsernameMinLength || n > UsernameMaxLength {
		return nil, fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, UsernameMinLength, UsernameMaxLength)
	}
	if len(pwd) < password.MinLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, password.MinLength)
	}
	if len(pwd) > password.MaxBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, password.MaxBytes)
	}

	hashedPassword, err := password.Hash(pwd)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &auth.User{
		ID:       id.New(),
		Username: username,
		Password: hashedPassword,
	}

	// 用户名唯一性由存储层保证
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, authRepo.ErrUsernameTaken) {
			return nil, ErrUserAlreadyExists
		}
		log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return &RegisterResult{UserID: user.ID, Username: user.Username}, nil
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	TokenType   string
	User        *auth.User
}

// Login 用户登录，用户不存在与密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, username, pwd string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, authRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !password.Verify(pwd, user.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.userRepo.UpdateLastLoginAt(ctx, user.ID); err != nil {
		// 不影响登录流程，只记录警告
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login time")
	}

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwt.GetExpiration().Seconds()),
		TokenType:   "Bearer",
		User:        user,
	}, nil
}

// GetProfile 根据ID获取用户信息
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, authRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Logout 吊销当前 token，直到其自然过期
func (s *AuthService) Logout(ctx context.Context, info ctxutil.AuthInfo) error {
	if s.revocations == nil || info.TokenID == "" {
		return nil
	}

	ttl := info.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.revocations.Set(ctx, cache.RevokedTokenKey(info.TokenID), info.UserID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	log.Info().Str("user_id", info.UserID).Str("jti", info.TokenID).Msg("token revoked")
	return nil
}

// IsTokenRevoked 查询 jti 是否已吊销
func (s *AuthService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	if s.revocations == nil {
		return false, nil
	}
	return s.revocations.Exists(ctx, cache.RevokedTokenKey(jti))
}
