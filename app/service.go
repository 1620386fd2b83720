// Package app wires configuration, the optimization core, metrics sinks
// and the result publisher into a runnable service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mtakeda/annealsched/config"
	"github.com/mtakeda/annealsched/core/anneal"
	coremetrics "github.com/mtakeda/annealsched/core/metrics"
	"github.com/mtakeda/annealsched/core/qubo"
	"github.com/mtakeda/annealsched/core/schedule"
	"github.com/mtakeda/annealsched/infra/logger"
	"github.com/mtakeda/annealsched/infra/metrics"
	"github.com/mtakeda/annealsched/infra/notify"
)

// Variable counts above this get a slow-solve advisory in the logs.
const sizeWarnThreshold = 1000

// Service orchestrates one optimization request end to end.
type Service struct {
	cfg     *config.Config
	log     logger.Logger
	sink    coremetrics.Sink
	pub     notify.Publisher
	closers []func()

	promEnabled bool
	promPort    string
}

// Result bundles everything a solve produces, for presentation or
// inspection by the caller.
type Result struct {
	RunID    string
	Model    *qubo.Model
	Samples  anneal.SampleSet
	Schedule *schedule.Schedule
	Coverage schedule.Coverage
	Duration time.Duration
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	svc := &Service{
		cfg:         cfg,
		log:         logger.New("service"),
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			svc.closers = append(svc.closers, is.Close)
		}
		sinks = append(sinks, sink)
	}
	switch len(sinks) {
	case 0:
		svc.sink = coremetrics.NopSink{}
	case 1:
		svc.sink = sinks[0]
	default:
		svc.sink = metrics.NewMultiSink(sinks...)
	}

	if cfg.MQTT.Enabled {
		pub, err := notify.NewMQTTPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
		svc.closers = append(svc.closers, pub.Close)
	}
	return svc, nil
}

// Solve runs encode, anneal and decode for the configured problem and
// reports the outcome to the metrics sinks and the publisher.
func (s *Service) Solve(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	prob := s.cfg.Problem

	model := qubo.Encode(prob.Tasks, prob.People, prob.Slots, s.cfg.Weights.Weights())
	if n := model.NumVariables(); n > sizeWarnThreshold {
		s.log.Warnf("large problem: %d variables, solve may be slow", n)
	}

	solver := anneal.Solver{
		Reads:   s.cfg.Solver.NumReads,
		Sweeps:  s.cfg.Solver.NumSweeps,
		BetaMin: s.cfg.Solver.BetaMin,
		BetaMax: s.cfg.Solver.BetaMax,
		Seed:    s.cfg.Solver.Seed,
		Workers: s.cfg.Solver.Workers,
	}
	samples, err := solver.Solve(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("anneal: %w", err)
	}

	sched, cov := schedule.Decode(samples.Best(), prob.Tasks, prob.People, prob.Slots)
	dur := time.Since(start)
	stats := samples.Stats()

	s.log.Debugw("solve finished", map[string]any{
		"run_id":       runID,
		"variables":    model.NumVariables(),
		"interactions": model.NumInteractions(),
		"best_energy":  stats.Min,
		"mean_energy":  stats.Mean,
		"duration_ms":  dur.Milliseconds(),
	})
	if !cov.Full() {
		s.log.Warnf("only %d of %d tasks assigned; capacity is people*slots = %d",
			cov.Assigned, cov.Total, len(prob.People)*prob.Slots)
	}
	if sched.Conflicts > 0 {
		s.log.Warnf("best sample keeps %d overlap violations", sched.Conflicts)
	}

	ev := coremetrics.SolveEvent{
		RunID:        runID,
		Tasks:        len(prob.Tasks),
		People:       len(prob.People),
		Slots:        prob.Slots,
		Variables:    model.NumVariables(),
		Interactions: model.NumInteractions(),
		Reads:        s.cfg.Solver.NumReads,
		Sweeps:       s.cfg.Solver.NumSweeps,
		BestEnergy:   sched.Energy,
		MeanEnergy:   stats.Mean,
		Assigned:     cov.Assigned,
		Conflicts:    sched.Conflicts,
		Duration:     dur,
		Time:         start,
	}
	if err := s.sink.RecordSolve(ev); err != nil {
		s.log.Errorf("record solve: %v", err)
	}

	if s.pub != nil {
		res := notify.Result{
			RunID:     runID,
			Energy:    sched.Energy,
			Assigned:  cov.Assigned,
			Total:     cov.Total,
			Conflicts: sched.Conflicts,
			Slots:     sched.Slots,
			Schedule:  sched.Rows,
			Time:      start,
		}
		if err := s.pub.PublishResult(ctx, res); err != nil {
			s.log.Errorf("publish result: %v", err)
		}
	}

	return &Result{
		RunID:    runID,
		Model:    model,
		Samples:  samples,
		Schedule: sched,
		Coverage: cov,
		Duration: dur,
	}, nil
}

// Run starts the metrics endpoint when enabled, performs one solve, and
// logs the outcome.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	res, err := s.Solve(ctx)
	if err != nil {
		return err
	}
	s.log.Infof("run %s: energy %.4f, %d/%d tasks assigned in %s",
		res.RunID, res.Schedule.Energy, res.Coverage.Assigned, res.Coverage.Total, res.Duration)
	return nil
}

// Close releases the publisher and sink resources.
func (s *Service) Close() error {
	for _, c := range s.closers {
		c()
	}
	return nil
}
