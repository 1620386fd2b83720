package anneal

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one visited point of the binary variable space together with
// its energy. Read identifies the annealing run that produced it.
type Sample struct {
	Values []uint8
	Energy float64
	Read   int
}

// SampleSet holds the final states of all annealing runs, ascending by
// energy. Ties keep run order, so the set is reproducible under a fixed
// seed.
type SampleSet struct {
	Samples []Sample
}

func newSampleSet(samples []Sample) SampleSet {
	sort.SliceStable(samples, func(a, b int) bool {
		return samples[a].Energy < samples[b].Energy
	})
	return SampleSet{Samples: samples}
}

// Len returns the number of samples.
func (s SampleSet) Len() int { return len(s.Samples) }

// Best returns the lowest-energy sample. The set must be non-empty.
func (s SampleSet) Best() Sample { return s.Samples[0] }

// Energies returns the energies of all samples in set order.
func (s SampleSet) Energies() []float64 {
	es := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		es[i] = smp.Energy
	}
	return es
}

// EnergyStats summarizes the energy distribution of a SampleSet.
type EnergyStats struct {
	Min    float64
	Mean   float64
	StdDev float64
}

// Stats computes summary statistics over the sample energies. The set
// must be non-empty.
func (s SampleSet) Stats() EnergyStats {
	es := s.Energies()
	mean, std := stat.MeanStdDev(es, nil)
	if len(es) < 2 {
		std = 0
	}
	return EnergyStats{Min: floats.Min(es), Mean: mean, StdDev: std}
}
