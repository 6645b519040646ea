package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests 按路由/方法/状态码统计请求数
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "slpece", Name: "http_requests_total", Help: "Number of HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	// HTTPDuration 请求耗时
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "slpece", Name: "http_request_duration_seconds", Help: "HTTP request latency by route and method.", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "slpece", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter scope."},
		[]string{"scope"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "slpece", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter scope."},
		[]string{"scope"},
	)
	// StoryCacheLookups 故事缓存命中情况，result: hit / miss / error
	StoryCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "slpece", Name: "story_cache_lookups_total", Help: "Story cache lookups by result."},
		[]string{"result"},
	)
	// UpstreamCalls 外部服务调用，service: inference / storygen
	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "slpece", Name: "upstream_calls_total", Help: "Calls to external services by service and outcome."},
		[]string{"service", "outcome"},
	)
)

// RegisterCollectors 注册所有指标，重复注册时忽略
func RegisterCollectors(reg prometheus.Registerer) {
	for _, c := range []prometheus.Collector{
		HTTPRequests, HTTPDuration, RateLimitAllowed, RateLimitRejected, StoryCacheLookups, UpstreamCalls,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			panic(err)
		}
	}
}
