package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketplaceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMarketplace(reg)

	m.ObserveLogin("consumer", OutcomeSuccess)
	m.ObserveLogin("", OutcomeRejected)
	m.IncBooking("shop-1")
	m.IncBooking("shop-1")
	m.IncShopMutation("toggle_open")
	m.ObserveInsights(OutcomeFailure, 2*time.Second)
	m.ObserveInsights(OutcomeShared, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("consumer", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("unknown", OutcomeRejected)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues("shop-1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shopMutations.WithLabelValues("toggle_open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.insights.WithLabelValues(OutcomeShared)))

	count, err := testutil.GatherAndCount(reg, "yahipe_insights_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMarketplaceIsSafe(t *testing.T) {
	var m *Marketplace
	m.ObserveLogin("consumer", OutcomeSuccess)
	m.IncBooking("shop-1")
	m.IncShopMutation("add_service")
	m.ObserveInsights(OutcomeSuccess, time.Second)

	unregistered := NewMarketplace(nil)
	unregistered.IncBooking("shop-1")
}
