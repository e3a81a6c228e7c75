package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymgate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_checkins_total",
			Help: "Total number of successful check-ins",
		},
		[]string{"method"},
	)

	CheckOutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_checkouts_total",
			Help: "Total number of successful check-outs",
		},
		[]string{"method"},
	)

	AdmissionRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_admission_rejections_total",
			Help: "Check-in rejections by reason",
		},
		[]string{"reason"},
	)

	GymOccupancy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gymgate_gym_occupancy",
			Help: "Current number of open sessions per gym",
		},
		[]string{"gym_id"},
	)

	EntryTokensIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgate_entry_tokens_issued_total",
			Help: "Total number of entry tokens issued",
		},
	)

	StreakUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgate_streak_updates_total",
			Help: "Streak update jobs processed by outcome",
		},
		[]string{"status"},
	)

	StreakQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymgate_streak_queue_length",
			Help: "Current length of the streak update queue",
		},
	)

	OccupancyDrift = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gymgate_occupancy_drift",
			Help: "Last observed counter drift per gym (counter minus open records)",
		},
		[]string{"gym_id"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckIn(method string) {
	CheckInsTotal.WithLabelValues(method).Inc()
}

func RecordCheckOut(method string) {
	CheckOutsTotal.WithLabelValues(method).Inc()
}

func RecordRejection(reason string) {
	AdmissionRejectionsTotal.WithLabelValues(reason).Inc()
}

func SetGymOccupancy(gymID, current int) {
	GymOccupancy.WithLabelValues(strconv.Itoa(gymID)).Set(float64(current))
}

func RecordTokenIssued() {
	EntryTokensIssuedTotal.Inc()
}

func RecordStreakUpdate(status string) {
	StreakUpdatesTotal.WithLabelValues(status).Inc()
}

func SetOccupancyDrift(gymID, drift int) {
	OccupancyDrift.WithLabelValues(strconv.Itoa(gymID)).Set(float64(drift))
}
