package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/farhxn/foodcourt-backend/pkg/enums"
)

func TestCheckoutMetricsCountsOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.ObserveAttempt(enums.CheckoutStateSucceeded, time.Second)
	m.ObserveAttempt(enums.CheckoutStateSucceeded, time.Second)
	m.ObserveAttempt(enums.CheckoutStateFailed, time.Second)
	m.IncRejected()

	if got := testutil.ToFloat64(m.outcomes.WithLabelValues("succeeded")); got != 2 {
		t.Fatalf("expected 2 succeeded, got %v", got)
	}
	if got := testutil.ToFloat64(m.outcomes.WithLabelValues("failed")); got != 1 {
		t.Fatalf("expected 1 failed, got %v", got)
	}
	if got := testutil.ToFloat64(m.rejected); got != 1 {
		t.Fatalf("expected 1 rejection, got %v", got)
	}
}

func TestCheckoutMetricsNonTerminalCountsAsUnknown(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.ObserveAttempt(enums.CheckoutStateSubmitting, time.Second)
	m.ObserveAttempt(enums.CheckoutState(""), time.Second)

	if got := testutil.ToFloat64(m.outcomes.WithLabelValues("unknown")); got != 2 {
		t.Fatalf("expected 2 unknown, got %v", got)
	}
}

func TestCheckoutMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *CheckoutMetrics
	m.ObserveAttempt(enums.CheckoutStateFailed, 0)
	m.IncRejected()

	empty := NewCheckoutMetrics(nil)
	empty.ObserveAttempt(enums.CheckoutStateSucceeded, 0)
	empty.IncRejected()
}
