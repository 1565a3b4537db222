package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// 研究流程相关指标
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fund_radar",
			Name:      "search_queries_total",
			Help:      "Total number of provider search calls",
		},
		[]string{"provider", "status"}, // status: ok / error
	)

	SearchQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fund_radar",
			Name:      "search_query_duration_seconds",
			Help:      "Provider search call duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fund_radar",
			Name:      "stage_duration_seconds",
			Help:      "Research stage fan-out duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"},
	)

	LLMPassTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fund_radar",
			Name:      "llm_pass_total",
			Help:      "LLM pass outcomes",
		},
		[]string{"pass", "status"}, // pass: enhance / structure
	)

	ResearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fund_radar",
			Name:      "research_requests_total",
			Help:      "Research requests by terminal outcome",
		},
		[]string{"outcome"}, // cache / demo / fresh / fallback / not_found / unavailable / invalid / error
	)

	CacheOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fund_radar",
			Name:      "cache_operations_total",
			Help:      "Cache gateway operations",
		},
		[]string{"op", "result"}, // op: read / write; result: hit / miss / ok / error
	)
)

var registerOnce sync.Once

// Register 注册所有指标，可重复调用
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			SearchQueriesTotal,
			SearchQueryDuration,
			StageDuration,
			LLMPassTotal,
			ResearchRequestsTotal,
			CacheOperationsTotal,
		)
	})
}
