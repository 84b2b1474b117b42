package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request handling time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP errors",
		},
		[]string{"method", "endpoint", "status"},
	)

	roomsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rooms_created_total",
			Help: "Total number of rooms created",
		},
	)

	roomsClosedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rooms_closed_total",
			Help: "Total number of rooms closed by their creator",
		},
	)

	roomJoinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "room_joins_total",
			Help: "Total number of successful room joins",
		},
	)

	roomExitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "room_exits_total",
			Help: "Total number of successful room exits",
		},
	)
)

// RecordHTTPMetrics records counters and latency for one HTTP request.
func RecordHTTPMetrics(method, endpoint string, status int, duration time.Duration) {
	strStatus := strconv.Itoa(status)

	httpRequestsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, strStatus).Observe(duration.Seconds())

	if status >= 400 {
		httpErrorsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	}
}

func RoomCreated() {
	roomsCreatedTotal.Inc()
}

func RoomClosed() {
	roomsClosedTotal.Inc()
}

func RoomJoined() {
	roomJoinsTotal.Inc()
}

func RoomExited() {
	roomExitsTotal.Inc()
}
