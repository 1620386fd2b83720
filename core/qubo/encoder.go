package qubo

import "strings"

// Weights tunes the penalty and reward terms of the encoding. All weights
// are expected to be positive; each one scales an independent energy term.
type Weights struct {
	// PenaltyTask weighs the "each task runs exactly once" constraint.
	PenaltyTask float64 `json:"penalty_task"`
	// PenaltyOverlap weighs the "one task per person per slot" constraint.
	PenaltyOverlap float64 `json:"penalty_overlap"`
	// PenaltySwitch is the cost of a person switching task types between
	// consecutive slots.
	PenaltySwitch float64 `json:"penalty_switch"`
	// RewardSkillMatch lowers the energy of assigning a task to a person
	// whose name contains one of the task's type keywords.
	RewardSkillMatch float64 `json:"reward_skill_match"`
	// BaseCost is a small uniform linear bias breaking ties between
	// otherwise identical degenerate assignments.
	BaseCost float64 `json:"base_cost"`
}

// DefaultWeights returns the reference weight set.
func DefaultWeights() Weights {
	return Weights{
		PenaltyTask:      5.0,
		PenaltyOverlap:   5.0,
		PenaltySwitch:    1.0,
		RewardSkillMatch: 2.0,
		BaseCost:         0.1,
	}
}

// Encode builds the QUBO for the task assignment problem. Constraints are
// encoded with the penalty method, so the resulting model is soft: a
// minimum-energy assignment is not guaranteed to satisfy every
// constraint, and callers must treat violations as reportable outcomes.
//
// slots must be at least 1; empty task or people lists yield a valid
// zero-variable model. Encode is pure and deterministic: identical inputs
// produce identical models.
func Encode(tasks []Task, people []Person, slots int, w Weights) *Model {
	vars := Vars{Tasks: len(tasks), People: len(people), Slots: slots}
	b := NewBuilder(vars)

	// Uniform base cost on every variable.
	for id := 0; id < vars.N(); id++ {
		b.AddLinear(id, w.BaseCost)
	}

	// Each task runs exactly once: PenaltyTask * (sum_{j,k} x - 1)^2.
	for i := range tasks {
		ids := make([]int, 0, vars.People*vars.Slots)
		for j := 0; j < vars.People; j++ {
			for k := 0; k < vars.Slots; k++ {
				ids = append(ids, vars.ID(i, j, k))
			}
		}
		for _, id := range ids {
			b.AddLinear(id, -w.PenaltyTask)
		}
		for a := 0; a < len(ids); a++ {
			for c := a + 1; c < len(ids); c++ {
				b.AddQuadratic(ids[a], ids[c], 2*w.PenaltyTask)
			}
		}
		b.AddOffset(w.PenaltyTask)
	}

	// At most one task per person per slot:
	// PenaltyOverlap * (sum_i x)^2 - PenaltyOverlap * sum_i x.
	// No offset here: the all-zero column is a legal state.
	for j := 0; j < vars.People; j++ {
		for k := 0; k < vars.Slots; k++ {
			for i := 0; i < vars.Tasks; i++ {
				b.AddLinear(vars.ID(i, j, k), -w.PenaltyOverlap)
			}
			for i1 := 0; i1 < vars.Tasks; i1++ {
				for i2 := i1 + 1; i2 < vars.Tasks; i2++ {
					b.AddQuadratic(vars.ID(i1, j, k), vars.ID(i2, j, k), 2*w.PenaltyOverlap)
				}
			}
		}
	}

	// Context switch cost between consecutive slots when task types differ.
	for j := 0; j < vars.People; j++ {
		for k := 0; k+1 < vars.Slots; k++ {
			for i1 := 0; i1 < vars.Tasks; i1++ {
				for i2 := 0; i2 < vars.Tasks; i2++ {
					if i1 == i2 || tasks[i1].Type == tasks[i2].Type {
						continue
					}
					b.AddQuadratic(vars.ID(i1, j, k), vars.ID(i2, j, k+1), w.PenaltySwitch)
				}
			}
		}
	}

	// Skill match: favor assigning a task to a person whose name contains
	// one of the task's type keywords, across all slots.
	for i, task := range tasks {
		keywords := typeKeywords(task.Type)
		for j, person := range people {
			if !matchesAny(person.Name, keywords) {
				continue
			}
			for k := 0; k < vars.Slots; k++ {
				b.AddLinear(vars.ID(i, j, k), -w.RewardSkillMatch)
			}
		}
	}

	return b.Freeze()
}

var commaNormalizer = strings.NewReplacer("、", ",", "，", ",")

// typeKeywords splits a task type on ASCII and full-width commas into
// trimmed, non-empty keyword tokens.
func typeKeywords(taskType string) []string {
	parts := strings.Split(commaNormalizer.Replace(taskType), ",")
	keywords := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
