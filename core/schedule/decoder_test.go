package schedule

import (
	"reflect"
	"testing"

	"github.com/mtakeda/annealsched/core/anneal"
	"github.com/mtakeda/annealsched/core/qubo"
)

var (
	tasks  = []qubo.Task{{Name: "A", Type: "x"}, {Name: "B", Type: "y"}}
	people = []qubo.Person{{Name: "P1"}, {Name: "P2"}}
)

func sampleFor(vars qubo.Vars, active ...int) anneal.Sample {
	values := make([]uint8, vars.N())
	for _, id := range active {
		values[id] = 1
	}
	return anneal.Sample{Values: values, Energy: -1.5}
}

func TestDecode_BasicAssignment(t *testing.T) {
	vars := qubo.Vars{Tasks: 2, People: 2, Slots: 2}
	// A -> P1 slot 0, B -> P2 slot 1.
	best := sampleFor(vars, vars.ID(0, 0, 0), vars.ID(1, 1, 1))
	sched, cov := Decode(best, tasks, people, 2)

	if got := sched.Task("P1", 0); got != "A" {
		t.Errorf(`P1 slot 0 = %q, want "A"`, got)
	}
	if got := sched.Task("P2", 1); got != "B" {
		t.Errorf(`P2 slot 1 = %q, want "B"`, got)
	}
	if got := sched.Task("P1", 1); got != "" {
		t.Errorf("P1 slot 1 = %q, want unassigned", got)
	}
	if sched.Energy != -1.5 {
		t.Errorf("energy = %v, want -1.5", sched.Energy)
	}
	if cov.Assigned != 2 || cov.Total != 2 || !cov.Full() {
		t.Errorf("coverage = %+v, want 2/2", cov)
	}
	if sched.Conflicts != 0 {
		t.Errorf("conflicts = %d, want 0", sched.Conflicts)
	}
}

func TestDecode_Idempotent(t *testing.T) {
	vars := qubo.Vars{Tasks: 2, People: 2, Slots: 2}
	best := sampleFor(vars, vars.ID(0, 1, 0), vars.ID(1, 0, 1))
	s1, c1 := Decode(best, tasks, people, 2)
	s2, c2 := Decode(best, tasks, people, 2)
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("repeated decode produced different schedules")
	}
	if c1 != c2 {
		t.Errorf("repeated decode produced different coverage: %+v vs %+v", c1, c2)
	}
}

// Overlap violations left in the best sample resolve by last write in
// variable-id order and are surfaced as a conflict count.
func TestDecode_ConflictLastWriteWins(t *testing.T) {
	vars := qubo.Vars{Tasks: 2, People: 1, Slots: 1}
	best := sampleFor(vars, vars.ID(0, 0, 0), vars.ID(1, 0, 0))
	sched, cov := Decode(best, tasks, people[:1], 1)

	if got := sched.Task("P1", 0); got != "B" {
		t.Errorf(`conflicted cell = %q, want "B" (higher task index wins)`, got)
	}
	if sched.Conflicts != 1 {
		t.Errorf("conflicts = %d, want 1", sched.Conflicts)
	}
	if cov.Assigned != 1 || cov.Total != 2 {
		t.Errorf("coverage = %+v, want 1/2", cov)
	}
}

func TestDecode_UnderCoverage(t *testing.T) {
	three := []qubo.Task{{Name: "A", Type: "x"}, {Name: "B", Type: "y"}, {Name: "C", Type: "z"}}
	vars := qubo.Vars{Tasks: 3, People: 1, Slots: 1}
	best := sampleFor(vars, vars.ID(1, 0, 0))
	sched, cov := Decode(best, three, people[:1], 1)

	if cov.Assigned != 1 || cov.Total != 3 || cov.Full() {
		t.Errorf("coverage = %+v, want 1/3", cov)
	}
	if got := sched.Task("P1", 0); got != "B" {
		t.Errorf("assigned task = %q, want B", got)
	}
}

func TestDecode_EmptyTasks(t *testing.T) {
	best := anneal.Sample{Values: []uint8{}, Energy: 0}
	sched, cov := Decode(best, nil, people, 3)

	if cov.Assigned != 0 || cov.Total != 0 {
		t.Errorf("coverage = %+v, want 0/0", cov)
	}
	for _, p := range people {
		for k := 0; k < 3; k++ {
			if got := sched.Task(p.Name, k); got != "" {
				t.Errorf("%s slot %d = %q, want unassigned", p.Name, k, got)
			}
		}
	}
}
