package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by the counters below.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
	OutcomeShared   = "shared"
)

// Marketplace records the business events exposed on /metrics.
// A nil *Marketplace is valid and records nothing.
type Marketplace struct {
	logins           *prometheus.CounterVec
	bookings         *prometheus.CounterVec
	shopMutations    *prometheus.CounterVec
	insights         *prometheus.CounterVec
	insightsDuration prometheus.Histogram
}

// NewMarketplace registers the marketplace metrics on the provided registerer.
func NewMarketplace(reg prometheus.Registerer) *Marketplace {
	if reg == nil {
		return &Marketplace{}
	}
	m := &Marketplace{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yahipe_logins_total",
			Help: "Login attempts by role and outcome.",
		}, []string{"role", "outcome"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yahipe_appointments_captured_total",
			Help: "Appointments captured per shop.",
		}, []string{"shop"}),
		shopMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yahipe_shop_mutations_total",
			Help: "Shopkeeper dashboard mutations by operation.",
		}, []string{"operation"}),
		insights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yahipe_insights_requests_total",
			Help: "Insight generation requests by outcome.",
		}, []string{"outcome"}),
		insightsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "yahipe_insights_duration_seconds",
			Help:    "Latency of the upstream text-generation call.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
	}
	reg.MustRegister(m.logins, m.bookings, m.shopMutations, m.insights, m.insightsDuration)
	return m
}

func (m *Marketplace) ObserveLogin(role, outcome string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(role), normalizeLabel(outcome)).Inc()
}

func (m *Marketplace) IncBooking(shopID string) {
	if m == nil || m.bookings == nil {
		return
	}
	m.bookings.WithLabelValues(normalizeLabel(shopID)).Inc()
}

func (m *Marketplace) IncShopMutation(operation string) {
	if m == nil || m.shopMutations == nil {
		return
	}
	m.shopMutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// ObserveInsights records one insights request; duration is ignored for shared calls.
func (m *Marketplace) ObserveInsights(outcome string, duration time.Duration) {
	if m == nil || m.insights == nil {
		return
	}
	m.insights.WithLabelValues(normalizeLabel(outcome)).Inc()
	if outcome != OutcomeShared && m.insightsDuration != nil {
		m.insightsDuration.Observe(duration.Seconds())
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
