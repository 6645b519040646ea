package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	httpPkg "slpece/internal/pkg/http"
	"slpece/internal/pkg/metrics"
)

// RateLimiter 按客户端 IP 的令牌桶限流
type RateLimiter struct {
	scope    string
	rps      float64
	burst    int
	limiters sync.Map // map[string]*rate.Limiter
}

// NewRateLimiter 创建限流器，scope 用于区分指标
func NewRateLimiter(scope string, rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{scope: scope, rps: rps, burst: burst}
}

func (l *RateLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(l.rps), l.burst))
	return v.(*rate.Limiter)
}

// Middleware 返回 gin 中间件；rps <= 0 时不限流
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.rps <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		if !l.get(ip).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues(l.scope).Inc()
			httpPkg.Abort(c, http.StatusTooManyRequests, httpPkg.CodeTooManyRequests, "Too many requests")
			return
		}
		metrics.RateLimitAllowed.WithLabelValues(l.scope).Inc()
		c.Next()
	}
}
