package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service exports. A nil *Metrics is valid
// and records nothing, so components can run without instrumentation in tests.
type Metrics struct {
	ClaimTransitions *prometheus.CounterVec
	MessagesPosted   prometheus.Counter
	DispatchOutcomes *prometheus.CounterVec
	DispatchLatency  prometheus.Histogram
	OutboxBacklog    *prometheus.GaugeVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	RateLimited      prometheus.Counter
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// the server and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ClaimTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "charitybridge_claim_transitions_total",
			Help: "Claim lifecycle events by event and outcome",
		}, []string{"event", "outcome"}), // outcome: "ok", "forbidden", "invalid_state", "conflict", "error"

		MessagesPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "charitybridge_messages_posted_total",
			Help: "Messages appended to claim threads",
		}),

		DispatchOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "charitybridge_dispatch_deliveries_total",
			Help: "Outbox deliveries by channel and outcome",
		}, []string{"channel", "outcome"}),

		DispatchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "charitybridge_dispatch_batch_duration_seconds",
			Help:    "Duration of one outbox dispatch batch",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		OutboxBacklog: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "charitybridge_outbox_events",
			Help: "Outbox events by status at the last worker tick",
		}, []string{"status"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "charitybridge_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "charitybridge_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "charitybridge_rate_limited_total",
			Help: "Requests rejected by the per-user limiter",
		}),
	}
}

func (m *Metrics) IncClaimTransition(event, outcome string) {
	if m != nil {
		m.ClaimTransitions.WithLabelValues(event, outcome).Inc()
	}
}

func (m *Metrics) IncMessagesPosted() {
	if m != nil {
		m.MessagesPosted.Inc()
	}
}

func (m *Metrics) IncDispatch(channel, outcome string) {
	if m != nil {
		m.DispatchOutcomes.WithLabelValues(channel, outcome).Inc()
	}
}

func (m *Metrics) ObserveDispatchBatch(d time.Duration) {
	if m != nil {
		m.DispatchLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) SetOutboxBacklog(status string, n int64) {
	if m != nil {
		m.OutboxBacklog.WithLabelValues(status).Set(float64(n))
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, status).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
	}
}

func (m *Metrics) IncRateLimited() {
	if m != nil {
		m.RateLimited.Inc()
	}
}
