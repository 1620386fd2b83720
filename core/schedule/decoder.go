// Package schedule projects a solved binary assignment back onto the
// task/person/slot domain.
package schedule

import (
	"github.com/mtakeda/annealsched/core/anneal"
	"github.com/mtakeda/annealsched/core/qubo"
)

// Schedule maps every person to a slot-indexed row of task names. An
// empty string marks an unassigned slot. Energy is the objective value of
// the sample the schedule was derived from.
type Schedule struct {
	Slots  int
	People []string
	// Rows holds one task-name slice of length Slots per person.
	Rows map[string][]string
	// Energy of the decoded sample.
	Energy float64
	// Conflicts counts (person, slot) cells that more than one active
	// variable wrote to. The penalty formulation is soft, so the solver
	// may leave such overlap violations in its best sample; the last
	// write in variable-id order wins and the collision is surfaced here
	// instead of being hidden.
	Conflicts int
}

// Task returns the task name at (person, slot), empty if unassigned.
func (s *Schedule) Task(person string, slot int) string {
	return s.Rows[person][slot]
}

// Coverage reports how many of the problem's tasks appear in a schedule.
type Coverage struct {
	Assigned int
	Total    int
}

// Full reports whether every task was assigned somewhere.
func (c Coverage) Full() bool { return c.Assigned == c.Total }

// Decode builds a Schedule from the best sample of a solve. Variables are
// scanned in ascending id order, which fixes the winner when simultaneous
// assignments collide on one (person, slot) cell. Decode is pure:
// repeated calls on the same sample yield identical schedules.
func Decode(best anneal.Sample, tasks []qubo.Task, people []qubo.Person, slots int) (*Schedule, Coverage) {
	sched := &Schedule{
		Slots:  slots,
		People: make([]string, len(people)),
		Rows:   make(map[string][]string, len(people)),
		Energy: best.Energy,
	}
	for j, p := range people {
		sched.People[j] = p.Name
		sched.Rows[p.Name] = make([]string, slots)
	}

	vars := qubo.Vars{Tasks: len(tasks), People: len(people), Slots: slots}
	for id, val := range best.Values {
		if val != 1 {
			continue
		}
		i, j, k := vars.Unpack(id)
		row := sched.Rows[people[j].Name]
		if row[k] != "" {
			sched.Conflicts++
		}
		row[k] = tasks[i].Name
	}

	assigned := make(map[string]struct{})
	for _, row := range sched.Rows {
		for _, name := range row {
			if name != "" {
				assigned[name] = struct{}{}
			}
		}
	}
	return sched, Coverage{Assigned: len(assigned), Total: len(tasks)}
}
