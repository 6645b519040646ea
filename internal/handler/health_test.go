package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	httpPkg "slpece/internal/pkg/http"
	"slpece/internal/service"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("就绪检查", t, func() {
		var mongoErr error
		h := NewHealthHandler(map[string]Pinger{
			"mongo": pingFunc(func(ctx context.Context) error { return mongoErr }),
			"redis": nil,
		})
		r := gin.New()
		r.GET("/health", h.Health)
		r.GET("/ready", h.Ready)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		So(w.Code, ShouldEqual, http.StatusOK)

		Convey("依赖正常", func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Mongo 不可用时返回 503", func() {
			mongoErr = errors.New("no primary")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)

			var body map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["checks"].(map[string]any)["mongo"], ShouldEqual, "unavailable")
		})
	})
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("service 错误映射", t, func() {
		cases := []struct {
			err    error
			status int
			code   int
		}{
			{service.ErrInvalidInput, http.StatusBadRequest, httpPkg.CodeBadRequest},
			{service.ErrUserAlreadyExists, http.StatusBadRequest, httpPkg.CodeDuplicate},
			{service.ErrInvalidCredentials, http.StatusUnauthorized, httpPkg.CodeUnauthorized},
			{service.ErrStoryNotFound, http.StatusNotFound, httpPkg.CodeNotFound},
			{service.ErrMusicNotFound, http.StatusNotFound, httpPkg.CodeNotFound},
			{service.ErrUpstream, http.StatusBadGateway, httpPkg.CodeUpstream},
			{errors.New("mongo: connection reset"), http.StatusInternalServerError, httpPkg.CodeInternal},
		}
		for _, tc := range cases {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			RespondError(c, tc.err)

			var resp httpPkg.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(w.Code, ShouldEqual, tc.status)
			So(resp.Code, ShouldEqual, tc.code)
		}

		Convey("500 不返回内部错误细节", func() {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			RespondError(c, errors.New("mongo: secret host 10.0.0.5"))
			So(w.Body.String(), ShouldNotContainSubstring, "10.0.0.5")
		})
	})
}
