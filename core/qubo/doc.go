// Package qubo encodes the task/person/slot assignment problem as a
// quadratic binary model.
//
// Every binary variable (i, j, k) states that task i is performed by
// person j in time slot k. Constraints are expressed with the penalty
// method as energy terms that are zero when satisfied:
//   - each task is executed exactly once (one-hot penalty),
//   - a person performs at most one task per slot,
//   - switching task types between consecutive slots costs energy,
//   - a skill match between a task's type keywords and a person's name
//     is rewarded with negative energy,
//   - a small uniform base cost breaks ties between degenerate states.
//
// Because constraints are soft, the minimum-energy assignment of the
// encoded model may still violate them: under-coverage and overlaps are
// reportable outcomes, not encoding bugs.
//
// Construction is purely additive and deterministic. The Builder
// accumulates coefficients and freezes into an immutable Model that the
// solver can read concurrently.
package qubo
