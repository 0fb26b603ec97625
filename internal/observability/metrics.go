// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheRequests counts cache lookups by key prefix and outcome (hit or miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_cache_requests_total",
		Help: "Total cache lookups by key prefix and outcome",
	}, []string{"prefix", "outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreated counts published posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts published comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_comments_created_total",
		Help: "Total number of comments created",
	})

	// FollowChanges counts follow and unfollow operations.
	FollowChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_follow_changes_total",
		Help: "Total follow and unfollow operations",
	}, []string{"action"})
)

// RecordCacheHit increments the hit counter for the key prefix.
func RecordCacheHit(prefix string) {
	CacheRequests.WithLabelValues(prefix, "hit").Inc()
}

// RecordCacheMiss increments the miss counter for the key prefix.
func RecordCacheMiss(prefix string) {
	CacheRequests.WithLabelValues(prefix, "miss").Inc()
}

// TrackQuery returns a function that records query latency when called, for
// use with defer.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
