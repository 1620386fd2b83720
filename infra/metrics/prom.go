package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/mtakeda/annealsched/core/metrics"
)

// PromSink records solve events as Prometheus metrics.
type PromSink struct {
	solves     *prometheus.CounterVec
	bestEnergy prometheus.Gauge
	coverage   prometheus.Gauge
	duration   prometheus.Histogram
}

// NewPromSink registers solve metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. Collectors
// that are already registered are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anneal_solves_total",
		Help: "Total number of completed solve runs",
	}, []string{"covered"})
	bestEnergy := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "anneal_best_energy",
		Help: "Energy of the best sample of the last solve",
	})
	coverage := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "anneal_tasks_assigned",
		Help: "Number of tasks assigned in the last decoded schedule",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "anneal_solve_duration_seconds",
		Help:    "Wall time of encode, anneal and decode per solve",
		Buckets: prometheus.DefBuckets,
	})

	s := &PromSink{solves: solves, bestEnergy: bestEnergy, coverage: coverage, duration: duration}
	for _, c := range []prometheus.Collector{solves, bestEnergy, coverage, duration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordSolve updates the solve metrics.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.solves.WithLabelValues(strconv.FormatBool(ev.Covered())).Inc()
	s.bestEnergy.Set(ev.BestEnergy)
	s.coverage.Set(float64(ev.Assigned))
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}
