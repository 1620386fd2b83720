package anneal

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/mtakeda/annealsched/core/qubo"
)

const (
	// Models above this variable count get the large-model sweep floor:
	// bigger variable spaces need more mixing per run to reach comparable
	// solution quality.
	scaleGuardVars = 500
	// Minimum effective sweeps applied past the guard threshold. This is
	// a floor, never a reduction of the caller's request.
	scaleGuardSweeps = 2000

	// Fallback inverse-temperature range for models whose coefficients
	// give no usable magnitude (all zero).
	flatBetaMin = 0.1
	flatBetaMax = 10.0
)

// ErrCanceled is returned when the context is canceled before a single
// annealing run completed.
var ErrCanceled = errors.New("anneal: canceled before any run completed")

// Solver runs independent-restart simulated annealing over a frozen
// quadratic binary model. The zero value is not usable; construct with
// New and override fields as needed.
type Solver struct {
	// Reads is the number of independent annealing runs.
	Reads int
	// Sweeps is the number of full variable passes per run.
	Sweeps int
	// BetaMin and BetaMax bound the geometric inverse-temperature
	// schedule. When unset, or when BetaMin >= BetaMax, a default range
	// is derived from the model's coefficient magnitudes.
	BetaMin float64
	BetaMax float64
	// Seed fixes the master random seed. Each run derives its own
	// generator from Seed and the run index, so results are reproducible
	// regardless of worker scheduling.
	Seed int64
	// Workers bounds the number of concurrent runs. Zero means NumCPU.
	Workers int
}

// New returns a Solver with the reference defaults.
func New() Solver {
	return Solver{Reads: 100, Sweeps: 1000}
}

// Solve performs Reads independent annealing runs over m and returns the
// final states ranked by energy. The model is only read; each run owns
// its own state vector and generator. On cancellation the samples of all
// completed runs are returned; ErrCanceled is returned only if no run
// finished.
func (s Solver) Solve(ctx context.Context, m *qubo.Model) (SampleSet, error) {
	n := m.NumVariables()
	if n == 0 {
		// Degenerate model: a single trivial sample at the offset energy.
		return newSampleSet([]Sample{{Values: []uint8{}, Energy: m.Offset()}}), nil
	}

	reads := s.Reads
	if reads < 1 {
		reads = 1
	}
	betaMin, betaMax := s.betaRange(m)
	betas := betaSchedule(betaMin, betaMax, s.effectiveSweeps(n))

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > reads {
		workers = reads
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		samples []Sample
	)
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for read := range jobs {
				smp, ok := s.runRead(ctx, m, betas, read)
				if !ok {
					continue
				}
				mu.Lock()
				samples = append(samples, smp)
				mu.Unlock()
			}
		}()
	}

feed:
	for read := 0; read < reads; read++ {
		select {
		case jobs <- read:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if len(samples) == 0 {
		return SampleSet{}, ErrCanceled
	}
	// Runs finish in scheduler order; restore run order before the
	// stable energy sort so ties are deterministic.
	sortByRead(samples)
	return newSampleSet(samples), nil
}

// runRead executes one annealing run. It reports ok=false when the
// context was canceled before the final sweep finished, so partial states
// never leak into the result set.
func (s Solver) runRead(ctx context.Context, m *qubo.Model, betas []float64, read int) (Sample, bool) {
	rng := rand.New(rand.NewSource(s.Seed + int64(read)))
	n := m.NumVariables()
	x := make([]uint8, n)
	for id := range x {
		x[id] = uint8(rng.Intn(2))
	}

	for _, beta := range betas {
		if ctx.Err() != nil {
			return Sample{}, false
		}
		for _, id := range rng.Perm(n) {
			delta := m.FlipDelta(x, id)
			if delta <= 0 || rng.Float64() < math.Exp(-beta*delta) {
				x[id] ^= 1
			}
		}
	}
	return Sample{Values: x, Energy: m.Energy(x), Read: read}, true
}

// effectiveSweeps applies the large-model floor to the requested sweep
// count.
func (s Solver) effectiveSweeps(numVars int) int {
	sweeps := s.Sweeps
	if sweeps < 1 {
		sweeps = 1
	}
	if numVars > scaleGuardVars && sweeps < scaleGuardSweeps {
		sweeps = scaleGuardSweeps
	}
	return sweeps
}

// betaRange picks the inverse-temperature bounds. A custom range is
// honored only when 0 < BetaMin < BetaMax; anything else falls back to a
// range derived from the model, never to an error.
func (s Solver) betaRange(m *qubo.Model) (float64, float64) {
	if s.BetaMin > 0 && s.BetaMin < s.BetaMax {
		return s.BetaMin, s.BetaMax
	}
	return defaultBetaRange(m)
}

// defaultBetaRange derives the schedule bounds from coefficient
// magnitudes: hot enough that the worst single flip is accepted with
// probability 1/2, cold enough that the smallest linear bias is frozen
// out at acceptance 1/100.
func defaultBetaRange(m *qubo.Model) (float64, float64) {
	hot := m.MaxAbsField()
	if hot == 0 {
		return flatBetaMin, flatBetaMax
	}
	cold := m.MinAbsNonzeroLinear()
	if cold == 0 {
		cold = hot
	}
	betaMin := math.Ln2 / hot
	betaMax := math.Log(100) / cold
	if betaMax <= betaMin {
		betaMax = betaMin * 100
	}
	return betaMin, betaMax
}

// betaSchedule builds a geometric schedule of the given length spanning
// [betaMin, betaMax]. A single-sweep schedule runs at betaMax.
func betaSchedule(betaMin, betaMax float64, sweeps int) []float64 {
	betas := make([]float64, sweeps)
	if sweeps == 1 {
		betas[0] = betaMax
		return betas
	}
	ratio := math.Pow(betaMax/betaMin, 1/float64(sweeps-1))
	beta := betaMin
	for t := range betas {
		betas[t] = beta
		beta *= ratio
	}
	return betas
}

func sortByRead(samples []Sample) {
	for i := 1; i < len(samples); i++ {
		for j := i; j > 0 && samples[j].Read < samples[j-1].Read; j-- {
			samples[j], samples[j-1] = samples[j-1], samples[j]
		}
	}
}
