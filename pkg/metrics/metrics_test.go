package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry("scheduler", reg)

	m.ObserveBookingTransition("accept", "ok")
	m.ObserveBookingTransition("accept", "ok")
	m.ObserveBookingTransition("accept", "already_taken")
	m.ObserveCalendarFetch("cached")
	m.ObserveTeamAggregation(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingTransitionsTotal.WithLabelValues("scheduler", "accept", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingTransitionsTotal.WithLabelValues("scheduler", "accept", "already_taken")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalendarFetchesTotal.WithLabelValues("scheduler", "cached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TeamAggregationsTotal.WithLabelValues("scheduler", "true")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveBookingTransition("assign", "ok")
		m.ObserveCalendarFetch("failed")
		m.ObserveHTTPRequest("GET", "/x", "200", 0.1)
		m.ObserveDBQuery("select", false, 0.01)
		m.SetDBPoolStats(1, 1, 0)
		m.ObserveTeamAggregation(false)
	})
	assert.Equal(t, "", m.ServiceName())
}
