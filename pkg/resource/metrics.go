package resource

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// InstrumentedFetcher counts and times the fetches of the wrapped fetcher.
type InstrumentedFetcher struct {
	next     Fetcher
	total    *prometheus.CounterVec
	duration prometheus.Histogram
	inFlight prometheus.Gauge
}

// NewInstrumentedFetcher wraps next and registers its collectors with reg.
// A nil reg leaves the collectors unregistered.
func NewInstrumentedFetcher(next Fetcher, reg prometheus.Registerer) (*InstrumentedFetcher, error) {
	f := &InstrumentedFetcher{
		next: next,
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparkle",
			Subsystem: "resource",
			Name:      "fetches_total",
			Help:      "Resource fetches by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sparkle",
			Subsystem: "resource",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching resources.",
			Buckets:   prometheus.DefBuckets,
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sparkle",
			Subsystem: "resource",
			Name:      "fetches_in_flight",
			Help:      "Resource fetches currently running.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{f.total, f.duration, f.inFlight} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// Fetch forwards to the wrapped fetcher and records the outcome.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	f.inFlight.Inc()
	defer f.inFlight.Dec()

	start := time.Now()
	body, err := f.next.Fetch(ctx, locator)
	f.duration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		f.total.WithLabelValues(OutcomeOK).Inc()
	case errors.Is(err, context.Canceled):
		f.total.WithLabelValues(OutcomeCancelled).Inc()
	default:
		f.total.WithLabelValues(OutcomeFailed).Inc()
	}
	return body, err
}

// Outcomes returns the counter vector, labelled by outcome.
func (f *InstrumentedFetcher) Outcomes() *prometheus.CounterVec {
	return f.total
}
