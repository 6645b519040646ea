package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"slpece/internal/pkg/ctxutil"
	httpPkg "slpece/internal/pkg/http"
	"slpece/internal/pkg/jwt"
	"slpece/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

func decodeError(w *httptest.ResponseRecorder) httpPkg.ErrorResponse {
	var resp httpPkg.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func TestAuth(t *testing.T) {
	Convey("Auth 中间件", t, func() {
		j := jwt.NewJWT("secret", time.Hour)
		revocations := &fakeRevocations{revoked: map[string]bool{}}

		r := gin.New()
		r.GET("/me", Auth(j, revocations), func(c *gin.Context) {
			info, ok := ctxutil.GetAuth(c.Request.Context())
			if !ok {
				c.Status(http.StatusTeapot)
				return
			}
			c.JSON(http.StatusOK, gin.H{"user_id": info.UserID, "jti": info.TokenID})
		})

		do := func(header string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			return w
		}

		Convey("缺少 header 返回 40101", func() {
			w := do("")
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
			So(decodeError(w).Code, ShouldEqual, httpPkg.CodeUnauthorized)
		})

		Convey("格式错误", func() {
			So(do("Token abc").Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("无效 token 返回 40102", func() {
			w := do("Bearer garbage")
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
			So(decodeError(w).Code, ShouldEqual, httpPkg.CodeTokenInvalid)
		})

		Convey("合法 token 注入身份信息", func() {
			token, _ := j.GenerateToken("u-1", "alice")
			w := do("Bearer " + token)
			So(w.Code, ShouldEqual, http.StatusOK)

			var body map[string]string
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["user_id"], ShouldEqual, "u-1")
			So(body["jti"], ShouldNotBeEmpty)
		})

		Convey("已吊销的 token 被拒绝", func() {
			token, _ := j.GenerateToken("u-1", "alice")
			claims, _ := j.ValidateToken(token)
			revocations.revoked[claims.ID] = true

			w := do("Bearer " + token)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
			So(decodeError(w).Code, ShouldEqual, httpPkg.CodeTokenInvalid)
		})

		Convey("吊销检查失败时放行", func() {
			revocations.err = errors.New("redis down")
			token, _ := j.GenerateToken("u-1", "alice")
			So(do("Bearer "+token).Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestRecovery(t *testing.T) {
	Convey("Recovery 返回通用 500，不暴露 panic 内容", t, func() {
		r := gin.New()
		r.Use(Recovery())
		r.GET("/boom", func(c *gin.Context) { panic("secret internal state") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(decodeError(w).Code, ShouldEqual, httpPkg.CodeInternal)
		So(w.Body.String(), ShouldNotContainSubstring, "secret internal state")
	})
}

func TestRequestID(t *testing.T) {
	Convey("RequestID 透传或生成", t, func() {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

		Convey("透传客户端的请求 ID", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Header().Get(RequestIDHeader), ShouldEqual, "abc-123")
			So(w.Body.String(), ShouldEqual, "abc-123")
		})

		Convey("缺失时生成", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			So(w.Header().Get(RequestIDHeader), ShouldNotBeEmpty)
		})
	})
}

func TestRateLimiter(t *testing.T) {
	Convey("RateLimiter 按 IP 限流", t, func() {
		limiter := NewRateLimiter("test_login", 0.5, 1)
		r := gin.New()
		r.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

		do := func(ip string) int {
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			req.RemoteAddr = ip + ":1234"
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			return w.Code
		}

		rejectedBefore := testutil.ToFloat64(metrics.RateLimitRejected.WithLabelValues("test_login"))

		So(do("10.0.0.1"), ShouldEqual, http.StatusOK)
		So(do("10.0.0.1"), ShouldEqual, http.StatusTooManyRequests)
		So(do("10.0.0.2"), ShouldEqual, http.StatusOK)
		So(testutil.ToFloat64(metrics.RateLimitRejected.WithLabelValues("test_login")), ShouldEqual, rejectedBefore+1)
	})

	Convey("rps 为 0 时不限流", t, func() {
		limiter := NewRateLimiter("test_off", 0, 0)
		r := gin.New()
		r.GET("/", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
		}
	})
}

func TestMetrics(t *testing.T) {
	Convey("Metrics 按路由模板计数", t, func() {
		r := gin.New()
		r.Use(Metrics())
		r.GET("/stories/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

		counter := metrics.HTTPRequests.WithLabelValues("/stories/:id", http.MethodGet, "200")
		before := testutil.ToFloat64(counter)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stories/abc", nil))
		So(testutil.ToFloat64(counter), ShouldEqual, before+1)
	})
}
