// Package anneal searches a quadratic binary model's solution space with
// independent-restart simulated annealing. Each read owns its state
// vector and random generator, so reads parallelize without locking and
// remain reproducible under a fixed master seed.
package anneal
