package qubo

import "testing"

var testTasks = []Task{{Name: "A", Type: "x"}, {Name: "B", Type: "y"}}

var testPeople = []Person{{Name: "P1"}, {Name: "P2"}}

func TestEncode_VariableCount(t *testing.T) {
	m := Encode(testTasks, testPeople, 2, DefaultWeights())
	if got := m.NumVariables(); got != 8 {
		t.Fatalf("variables = %d, want 8", got)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	w := DefaultWeights()
	m1 := Encode(testTasks, testPeople, 3, w)
	m2 := Encode(testTasks, testPeople, 3, w)
	if m1.Offset() != m2.Offset() {
		t.Fatalf("offsets differ: %v vs %v", m1.Offset(), m2.Offset())
	}
	n := m1.NumVariables()
	for id := 0; id < n; id++ {
		if m1.Linear(id) != m2.Linear(id) {
			t.Fatalf("linear(%d) differs: %v vs %v", id, m1.Linear(id), m2.Linear(id))
		}
	}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if m1.Quadratic(u, v) != m2.Quadratic(u, v) {
				t.Fatalf("quadratic(%d,%d) differs", u, v)
			}
		}
	}
}

func TestEncode_EmptyTasks(t *testing.T) {
	m := Encode(nil, testPeople, 3, DefaultWeights())
	if m.NumVariables() != 0 {
		t.Errorf("variables = %d, want 0", m.NumVariables())
	}
	if m.NumInteractions() != 0 {
		t.Errorf("interactions = %d, want 0", m.NumInteractions())
	}
	if m.Offset() != 0 {
		t.Errorf("offset = %v, want 0", m.Offset())
	}
}

// The coverage term alone must be zero at exactly one active variable and
// strictly positive at zero or two.
func TestEncode_TaskTermEnergy(t *testing.T) {
	w := Weights{PenaltyTask: 5}
	m := Encode(testTasks[:1], testPeople, 2, w)

	x := make([]uint8, m.NumVariables())
	if got := m.Energy(x); got <= 0 {
		t.Errorf("no assignment: energy = %v, want > 0", got)
	}
	for id := range x {
		x = make([]uint8, m.NumVariables())
		x[id] = 1
		if got := m.Energy(x); got != 0 {
			t.Errorf("single assignment at %d: energy = %v, want 0", id, got)
		}
	}
	x = make([]uint8, m.NumVariables())
	x[0], x[1] = 1, 1
	if got := m.Energy(x); got <= 0 {
		t.Errorf("double assignment: energy = %v, want > 0", got)
	}
}

// Overlap term: one task in a (person, slot) cell is cheaper than two,
// and an empty cell costs nothing.
func TestEncode_OverlapTermEnergy(t *testing.T) {
	w := Weights{PenaltyOverlap: 5}
	m := Encode(testTasks, testPeople[:1], 1, w)

	empty := m.Energy([]uint8{0, 0})
	if empty != 0 {
		t.Fatalf("empty cell: energy = %v, want 0", empty)
	}
	single := m.Energy([]uint8{1, 0})
	double := m.Energy([]uint8{1, 1})
	if single >= empty {
		t.Errorf("single assignment (%v) should beat empty (%v)", single, empty)
	}
	if double <= single {
		t.Errorf("double assignment (%v) must cost more than single (%v)", double, single)
	}
}

func TestEncode_SwitchTerm(t *testing.T) {
	w := Weights{PenaltySwitch: 1}
	m := Encode(testTasks, testPeople[:1], 2, w)
	vars := m.Vars()

	// Different types across consecutive slots, both directions.
	if got := m.Quadratic(vars.ID(0, 0, 0), vars.ID(1, 0, 1)); got != 1 {
		t.Errorf("switch A->B = %v, want 1", got)
	}
	if got := m.Quadratic(vars.ID(1, 0, 0), vars.ID(0, 0, 1)); got != 1 {
		t.Errorf("switch B->A = %v, want 1", got)
	}

	// Same type never pays the switch cost.
	same := []Task{{Name: "A", Type: "x"}, {Name: "B", Type: "x"}}
	m2 := Encode(same, testPeople[:1], 2, w)
	if got := m2.Quadratic(vars.ID(0, 0, 0), vars.ID(1, 0, 1)); got != 0 {
		t.Errorf("same-type switch = %v, want 0", got)
	}
}

func TestEncode_SkillMatch(t *testing.T) {
	w := Weights{RewardSkillMatch: 2}
	tasks := []Task{{Name: "T", Type: "design"}}
	people := []Person{{Name: "design_Taro"}, {Name: "Hanako"}}
	m := Encode(tasks, people, 3, w)
	vars := m.Vars()

	for k := 0; k < 3; k++ {
		matched := m.Linear(vars.ID(0, 0, k))
		other := m.Linear(vars.ID(0, 1, k))
		if diff := other - matched; diff != w.RewardSkillMatch {
			t.Errorf("slot %d: linear gap = %v, want %v", k, diff, w.RewardSkillMatch)
		}
	}
}

func TestEncode_SkillMatchKeywordSeparators(t *testing.T) {
	w := Weights{RewardSkillMatch: 2}
	people := []Person{{Name: "qa_Jiro"}}
	for _, typ := range []string{"design,qa", "design、qa", "design，qa", " design , qa "} {
		m := Encode([]Task{{Name: "T", Type: typ}}, people, 1, w)
		if got := m.Linear(0); got != -w.RewardSkillMatch {
			t.Errorf("type %q: linear = %v, want %v", typ, got, -w.RewardSkillMatch)
		}
	}
}

func TestEncode_BaseCostBreaksTies(t *testing.T) {
	w := Weights{BaseCost: 0.1}
	m := Encode(testTasks, testPeople, 2, w)
	for id := 0; id < m.NumVariables(); id++ {
		if got := m.Linear(id); got != 0.1 {
			t.Fatalf("linear(%d) = %v, want 0.1", id, got)
		}
	}
}
