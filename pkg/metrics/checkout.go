package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/farhxn/foodcourt-backend/pkg/enums"
)

// CheckoutMetrics records checkout attempt outcomes and durations.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	rejected prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Checkout attempts by terminal state.",
	}, []string{"outcome"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_reentrancy_rejections_total",
		Help: "Checkout invocations rejected because an attempt was in flight.",
	})
	reg.MustRegister(duration, outcomes, rejected)
	return &CheckoutMetrics{
		duration: duration,
		outcomes: outcomes,
		rejected: rejected,
	}
}

// ObserveAttempt records one finished attempt with its terminal state.
func (c *CheckoutMetrics) ObserveAttempt(state enums.CheckoutState, duration time.Duration) {
	if c == nil {
		return
	}
	label := state.String()
	if label == "" || !state.IsTerminal() {
		label = "unknown"
	}
	if c.outcomes != nil {
		c.outcomes.WithLabelValues(label).Inc()
	}
	if c.duration != nil {
		c.duration.WithLabelValues(label).Observe(duration.Seconds())
	}
}

// IncRejected counts a rejected concurrent invocation.
func (c *CheckoutMetrics) IncRejected() {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.Inc()
}
