package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/victims", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/victims", "GET", 200, 12*time.Millisecond)
	m.RecordError("/users", "GET", "FORBIDDEN")
	m.RecordForcedLogout()
	m.RecordGuardDecision("elevated", "redirect")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("/victims", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorTotal.WithLabelValues("/users", "GET", "FORBIDDEN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.forcedLogouts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.guardDecisions.WithLabelValues("elevated", "redirect")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordForcedLogout()
		m.RecordGuardDecision("auth", "allow")
	})
}
