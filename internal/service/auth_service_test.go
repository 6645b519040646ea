package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"

	"slpece/internal/pkg/cache"
	"slpece/internal/pkg/ctxutil"
	authRepo "slpece/internal/repository/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *miniredis.Miniredis) {
	repo, err := authRepo.NewFileUserRepo(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatal(err)
	}
	mr := miniredis.RunT(t)
	rc := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return NewAuthService(repo, rc, "test-secret", time.Hour), mr
}

func TestAuthService_RegisterLogin(t *testing.T) {
	Convey("注册与登录", t, func() {
		ctx := context.Background()
		svc, _ := newTestAuthService(t)

		res, err := svc.Register(ctx, "alice", "secret123")
		So(err, ShouldBeNil)
		So(res.UserID, ShouldNotBeEmpty)
		So(res.Username, ShouldEqual, "alice")

		Convey("重复用户名", func() {
			_, err := svc.Register(ctx, "alice", "another123")
			So(err, ShouldEqual, ErrUserAlreadyExists)
		})

		Convey("用户名或密码不合法", func() {
			_, err := svc.Register(ctx, "al", "secret123")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			_, err = svc.Register(ctx, "bob", "123")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("密码超过 72 字节", func() {
			_, err := svc.Register(ctx, "bob", strings.Repeat("a", 80))
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

			// 按字节计算：25 个汉字为 75 字节
			_, err = svc.Register(ctx, "bob", strings.Repeat("密", 25))
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

			_, err = svc.Register(ctx, "bob", strings.Repeat("a", 72))
			So(err, ShouldBeNil)
		})

		Convey("登录成功返回 token", func() {
			login, err := svc.Login(ctx, "alice", "secret123")
			So(err, ShouldBeNil)
			So(login.TokenType, ShouldEqual, "Bearer")
			So(login.ExpiresIn, ShouldEqual, 3600)
			So(login.User.ID, ShouldEqual, res.UserID)

			claims, err := svc.JWT().ValidateToken(login.AccessToken)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, res.UserID)

			profile, err := svc.GetProfile(ctx, res.UserID)
			So(err, ShouldBeNil)
			So(profile.LastLoginAt, ShouldNotBeNil)
		})

		Convey("错误密码与未知用户返回同一错误", func() {
			_, err := svc.Login(ctx, "alice", "wrong-pass")
			So(err, ShouldEqual, ErrInvalidCredentials)
			_, err = svc.Login(ctx, "nobody", "secret123")
			So(err, ShouldEqual, ErrInvalidCredentials)
		})

		Convey("未知用户的 profile", func() {
			_, err := svc.GetProfile(ctx, "missing")
			So(err, ShouldEqual, ErrUserNotFound)
		})
	})
}

func TestAuthService_Logout(t *testing.T) {
	Convey("退出登录吊销 token", t, func() {
		ctx := context.Background()
		svc, mr := newTestAuthService(t)

		info := ctxutil.AuthInfo{
			UserID:    "u-1",
			TokenID:   "jti-1",
			ExpiresAt: time.Now().Add(30 * time.Minute),
		}

		revoked, err := svc.IsTokenRevoked(ctx, "jti-1")
		So(err, ShouldBeNil)
		So(revoked, ShouldBeFalse)

		So(svc.Logout(ctx, info), ShouldBeNil)

		revoked, err = svc.IsTokenRevoked(ctx, "jti-1")
		So(err, ShouldBeNil)
		So(revoked, ShouldBeTrue)
		So(mr.TTL(cache.RevokedTokenKey("jti-1")), ShouldBeGreaterThan, 29*time.Minute)

		Convey("吊销记录随 token 过期", func() {
			mr.FastForward(31 * time.Minute)
			revoked, err := svc.IsTokenRevoked(ctx, "jti-1")
			So(err, ShouldBeNil)
			So(revoked, ShouldBeFalse)
		})

		Convey("已过期的 token 无需吊销", func() {
			expired := ctxutil.AuthInfo{UserID: "u-1", TokenID: "jti-2", ExpiresAt: time.Now().Add(-time.Minute)}
			So(svc.Logout(ctx, expired), ShouldBeNil)
			So(mr.Exists(cache.RevokedTokenKey("jti-2")), ShouldBeFalse)
		})
	})

	Convey("未配置 Redis 时退出登录为空操作", t, func() {
		repo, _ := authRepo.NewFileUserRepo(filepath.Join(t.TempDir(), "users.json"))
		svc := NewAuthService(repo, nil, "s", time.Hour)
		So(svc.Logout(context.Background(), ctxutil.AuthInfo{UserID: "u", TokenID: "j", ExpiresAt: time.Now().Add(time.Hour)}), ShouldBeNil)
		revoked, err := svc.IsTokenRevoked(context.Background(), "j")
		So(err, ShouldBeNil)
		So(revoked, ShouldBeFalse)
	})
}
