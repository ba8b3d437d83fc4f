package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Signup outcomes recorded by SignupsTotal.
const (
	SignupIssued     = "issued"
	SignupThrottled  = "throttled"
	SignupMailFailed = "mail_failed"
	SignupRejected   = "rejected"
)

// Metrics holds every collector the service exports. A nil *Metrics records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	RequestsTotal  *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec

	SignupsTotal   *prometheus.CounterVec
	TokensIssued   prometheus.Counter
	TokenFailures  prometheus.Counter
	ReviewsCreated prometheus.Counter
}

// New builds the collectors and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_requests_latency_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		SignupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yamdb_signups_total",
				Help: "Signup attempts by outcome",
			},
			[]string{"result"}, // issued|throttled|mail_failed|rejected
		),
		TokensIssued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "yamdb_tokens_issued_total",
				Help: "Access tokens issued for a valid confirmation code",
			},
		),
		TokenFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "yamdb_token_exchange_failures_total",
				Help: "Confirmation code exchanges rejected",
			},
		),
		ReviewsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "yamdb_reviews_created_total",
				Help: "Reviews created",
			},
		),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestLatency,
		m.SignupsTotal,
		m.TokensIssued,
		m.TokenFailures,
		m.ReviewsCreated,
	)
	return m
}

// Handler serves the registry for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) Signup(result string) {
	if m == nil {
		return
	}
	m.SignupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) TokenIssued() {
	if m == nil {
		return
	}
	m.TokensIssued.Inc()
}

func (m *Metrics) TokenRejected() {
	if m == nil {
		return
	}
	m.TokenFailures.Inc()
}

func (m *Metrics) ReviewCreated() {
	if m == nil {
		return
	}
	m.ReviewsCreated.Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, method, status).Inc()
	m.RequestLatency.WithLabelValues(method, route, status).Observe(seconds)
}
