package config

import (
	"fmt"

	"github.com/mtakeda/annealsched/core/qubo"
)

// ProblemConfig carries the typed problem instance: the core trusts these
// shapes, so all contract checks happen here.
type ProblemConfig struct {
	Tasks  []qubo.Task   `json:"tasks"`
	People []qubo.Person `json:"people"`
	Slots  int           `json:"slots"`
}

// SetDefaults applies sane defaults.
func (c *ProblemConfig) SetDefaults() {
	if c.Slots == 0 {
		c.Slots = 5
	}
}

// Validate rejects contract violations before they reach the encoder.
// Empty task or people lists are legal degenerate instances.
func (c ProblemConfig) Validate() error {
	if c.Slots < 1 {
		return fmt.Errorf("slots must be at least 1, got %d", c.Slots)
	}
	taskNames := make(map[string]struct{}, len(c.Tasks))
	for _, t := range c.Tasks {
		if t.Name == "" {
			return fmt.Errorf("task name must not be empty")
		}
		if _, dup := taskNames[t.Name]; dup {
			return fmt.Errorf("duplicate task name %q", t.Name)
		}
		taskNames[t.Name] = struct{}{}
	}
	peopleNames := make(map[string]struct{}, len(c.People))
	for _, p := range c.People {
		if p.Name == "" {
			return fmt.Errorf("person name must not be empty")
		}
		if _, dup := peopleNames[p.Name]; dup {
			return fmt.Errorf("duplicate person name %q", p.Name)
		}
		peopleNames[p.Name] = struct{}{}
	}
	return nil
}

// WeightsConfig wraps the encoder weights with defaulting and validation.
type WeightsConfig qubo.Weights

// Weights converts the section into the encoder's weight set.
func (c WeightsConfig) Weights() qubo.Weights { return qubo.Weights(c) }

// SetDefaults fills unset weights with the reference values.
func (c *WeightsConfig) SetDefaults() {
	def := qubo.DefaultWeights()
	if c.PenaltyTask == 0 {
		c.PenaltyTask = def.PenaltyTask
	}
	if c.PenaltyOverlap == 0 {
		c.PenaltyOverlap = def.PenaltyOverlap
	}
	if c.PenaltySwitch == 0 {
		c.PenaltySwitch = def.PenaltySwitch
	}
	if c.RewardSkillMatch == 0 {
		c.RewardSkillMatch = def.RewardSkillMatch
	}
	if c.BaseCost == 0 {
		c.BaseCost = def.BaseCost
	}
}

// Validate checks the weights are usable by the penalty formulation.
func (c WeightsConfig) Validate() error {
	for name, w := range map[string]float64{
		"penalty_task":       c.PenaltyTask,
		"penalty_overlap":    c.PenaltyOverlap,
		"penalty_switch":     c.PenaltySwitch,
		"reward_skill_match": c.RewardSkillMatch,
		"base_cost":          c.BaseCost,
	} {
		if w < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, w)
		}
	}
	return nil
}

// SolverConfig defines annealing parameters.
type SolverConfig struct {
	NumReads  int     `json:"num_reads"`
	NumSweeps int     `json:"num_sweeps"`
	BetaMin   float64 `json:"beta_min"`
	BetaMax   float64 `json:"beta_max"`
	Seed      int64   `json:"seed"`
	Workers   int     `json:"workers"`
}

// SetDefaults applies the reference solver parameters.
func (c *SolverConfig) SetDefaults() {
	if c.NumReads == 0 {
		c.NumReads = 100
	}
	if c.NumSweeps == 0 {
		c.NumSweeps = 1000
	}
}

// Validate checks mandatory solver bounds. A beta range with
// beta_min >= beta_max is not an error: the solver falls back to its
// default schedule.
func (c SolverConfig) Validate() error {
	if c.NumReads < 1 {
		return fmt.Errorf("num_reads must be at least 1, got %d", c.NumReads)
	}
	if c.NumSweeps < 1 {
		return fmt.Errorf("num_sweeps must be at least 1, got %d", c.NumSweeps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
