// Package metrics exposes simulation runs as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hybrid-sim/internal/hybrid"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector records simulation runs. It implements hybrid.Recorder.
type Collector struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	lcoe     prometheus.Gauge
	energy   prometheus.Gauge
}

var _ hybrid.Recorder = (*Collector)(nil)

// NewCollector registers the simulation metrics on reg. A nil registerer
// defaults to the global Prometheus registerer. Registering twice on the same
// registerer reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hybrid_simulations_total",
		Help: "Total number of hybrid plant simulations by outcome",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hybrid_simulation_duration_seconds",
		Help:    "Wall time of a simulation run, including aggregation",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	})
	lcoe := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hybrid_last_lcoe_real_cents_per_kwh",
		Help: "Real LCOE of the last successful simulation",
	})
	energy := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hybrid_last_annual_energy_kwh",
		Help: "Hybrid year-one energy of the last successful simulation",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(lcoe); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			lcoe = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(energy); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			energy = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	return &Collector{runs: runs, duration: duration, lcoe: lcoe, energy: energy}, nil
}

// ObserveRun counts the run and, on success, updates the last-run gauges.
func (c *Collector) ObserveRun(elapsed time.Duration, res *hybrid.Result, err error) {
	c.duration.Observe(elapsed.Seconds())
	if err != nil || res == nil {
		c.runs.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	c.runs.WithLabelValues(OutcomeSuccess).Inc()
	c.lcoe.Set(res.LCOEReal)
	c.energy.Set(res.AnnualEnergies.Hybrid)
}
