package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	coremetrics "github.com/mtakeda/annealsched/core/metrics"
)

type recordingSink struct {
	events []coremetrics.SolveEvent
	err    error
}

func (r *recordingSink) RecordSolve(ev coremetrics.SolveEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	multi := NewMultiSink(a, b)
	assert.NoError(t, multi.RecordSolve(coremetrics.SolveEvent{RunID: "r"}))
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestMultiSink_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSink{err: boom}
	b := &recordingSink{}
	multi := NewMultiSink(a, b)
	assert.ErrorIs(t, multi.RecordSolve(coremetrics.SolveEvent{}), boom)
	assert.Empty(t, b.events)
}

func TestInfluxSink_FallbackOnFailedHealthCheck(t *testing.T) {
	sink := NewInfluxSinkWithFallback(coremetrics.Config{InfluxURL: "http://127.0.0.1:1"})
	_, isNop := sink.(coremetrics.NopSink)
	assert.True(t, isNop, "unreachable influx must fall back to NopSink")
}
