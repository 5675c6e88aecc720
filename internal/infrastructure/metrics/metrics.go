// Package metrics khai báo các Prometheus collectors dùng chung và handler /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolsail_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "toolsail_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Notifications đếm kết quả gửi email theo kind (verification, approval, ...)
	// và outcome (sent, logged, queued, failed)
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolsail_notifications_total",
		Help: "Notification dispatch outcomes",
	}, []string{"kind", "outcome"})

	VerificationCodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolsail_verification_codes_total",
		Help: "Verification code issuance and checks",
	}, []string{"result"})

	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toolsail_moderation_decisions_total",
		Help: "Submission moderation decisions",
	}, []string{"decision"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}

// CounterValue đọc giá trị hiện tại của một counter
func CounterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
