package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration 按路由模板统计，避免把 id 写进标签
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gazette_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	ViewEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_view_events_total",
			Help: "Post views by outcome of the ledger check",
		},
		[]string{"outcome"},
	)

	FeedRankDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gazette_feed_rank_duration_seconds",
			Help:    "Time spent snapshotting and ranking a candidate set",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)

	FeedCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gazette_feed_candidates",
			Help:    "Number of posts ranked per feed request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

// RecordHTTPRequest 记录一次请求
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// RecordView 记录阅读台账结果
func RecordView(wasNew bool) {
	if wasNew {
		ViewEvents.WithLabelValues("new").Inc()
		return
	}
	ViewEvents.WithLabelValues("repeat").Inc()
}

// ObserveRank 记录一次排序耗时与候选集大小
func ObserveRank(mode string, candidates int, start time.Time) {
	FeedRankDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	FeedCandidates.Observe(float64(candidates))
}
