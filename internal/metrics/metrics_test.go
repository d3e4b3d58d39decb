package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncClaimTransition("approve", "ok")
		m.IncMessagesPosted()
		m.IncDispatch("mail", "ok")
		m.ObserveDispatchBatch(time.Millisecond)
		m.SetOutboxBacklog("pending", 3)
		m.ObserveHTTP("GET", "/health", "200", time.Millisecond)
		m.IncRateLimited()
	})
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncClaimTransition("approve", "ok")
	m.IncClaimTransition("approve", "ok")
	m.IncClaimTransition("approve", "invalid_state")
	m.SetOutboxBacklog("pending", 7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClaimTransitions.WithLabelValues("approve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClaimTransitions.WithLabelValues("approve", "invalid_state")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.OutboxBacklog.WithLabelValues("pending")))
}
