package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kusgan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kusgan_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PaymentsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kusgan_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
		[]string{"product"},
	)

	PurchasesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kusgan_purchases_rejected_total",
			Help: "Total number of purchase attempts rejected",
		},
		[]string{"reason"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kusgan_checkins_total",
			Help: "Total number of check-in attempts",
		},
		[]string{"result"},
	)

	StatusQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kusgan_status_queries_total",
			Help: "Total number of membership status computations",
		},
		[]string{"gym_state"},
	)

	RemindersQueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kusgan_expiry_reminders_total",
			Help: "Total number of expiry reminders queued",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kusgan_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kusgan_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordPayment(product string) {
	PaymentsRecordedTotal.WithLabelValues(product).Inc()
}

func RecordRejectedPurchase(reason string) {
	PurchasesRejectedTotal.WithLabelValues(reason).Inc()
}

func RecordCheckIn(result string) {
	CheckInsTotal.WithLabelValues(result).Inc()
}

func RecordStatusQuery(gymState string) {
	StatusQueriesTotal.WithLabelValues(gymState).Inc()
}

func RecordReminder() {
	RemindersQueuedTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}
