// Package metrics defines the observability contract for solve runs.
// Concrete exporters live in infra/metrics.
package metrics

import "time"

// SolveEvent captures the outcome of one optimization request.
type SolveEvent struct {
	RunID        string
	Tasks        int
	People       int
	Slots        int
	Variables    int
	Interactions int
	Reads        int
	Sweeps       int
	BestEnergy   float64
	MeanEnergy   float64
	Assigned     int
	Conflicts    int
	Duration     time.Duration
	Time         time.Time
}

// Covered reports whether every task was assigned in the decoded schedule.
func (e SolveEvent) Covered() bool { return e.Assigned == e.Tasks }

// Sink records solve events for observability purposes.
type Sink interface {
	RecordSolve(ev SolveEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error { return nil }
