package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/mtakeda/annealsched/core/metrics"
)

func TestPromSink_RecordSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	ev := coremetrics.SolveEvent{
		RunID:      "run-1",
		Tasks:      2,
		Assigned:   2,
		BestEnergy: -9.8,
		Duration:   120 * time.Millisecond,
		Time:       time.Now(),
	}
	if err := sink.RecordSolve(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP anneal_solves_total Total number of completed solve runs
# TYPE anneal_solves_total counter
anneal_solves_total{covered="true"} 1
`
	if err := testutil.CollectAndCompare(sink.solves, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if got := testutil.ToFloat64(sink.bestEnergy); got != -9.8 {
		t.Errorf("best energy gauge = %v, want -9.8", got)
	}
	if got := testutil.ToFloat64(sink.coverage); got != 2 {
		t.Errorf("coverage gauge = %v, want 2", got)
	}
}

func TestPromSink_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
