package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devswipe_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devswipe_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// MessagesSent counts chat messages persisted, by message type.
	MessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devswipe_messages_sent_total",
		Help: "Total number of chat messages sent",
	}, []string{"message_type"})

	// MessageSendRejected counts sends refused with a tagged failure.
	MessageSendRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devswipe_message_send_rejected_total",
		Help: "Total number of message sends rejected by reason",
	}, []string{"reason"})

	// PushDispatch counts push notification outcomes.
	PushDispatch = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devswipe_push_dispatch_total",
		Help: "Push notification dispatch results",
	}, []string{"gateway", "result"})

	// PushQueueDepth is the number of pushes waiting for a worker.
	PushQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devswipe_push_queue_depth",
		Help: "Pending push notifications in the dispatcher queue",
	})

	// RealtimeEvents counts realtime events published by type.
	RealtimeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devswipe_realtime_events_total",
		Help: "Realtime events published by type",
	}, []string{"event_type"})

	// Uploads counts stored files by backend and result.
	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devswipe_uploads_total",
		Help: "File uploads by storage backend and result",
	}, []string{"backend", "result"})

	// UploadBytes records the size of stored uploads.
	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "devswipe_upload_bytes",
		Help:    "Size of stored uploads in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// WebSocketConnectionsTotal is the gauge of total WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "devswipe_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devswipe_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})

	// RateLimitRejections counts requests refused by the rate limiter.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devswipe_rate_limit_rejections_total",
		Help: "Requests rejected by the rate limiter by resource and store",
	}, []string{"resource", "store"})
)
