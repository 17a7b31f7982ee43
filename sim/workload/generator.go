// Distribution-based task generation. Lengths are sampled from a seeded
// gonum distribution so a scenario regenerated with the same seed is
// identical task for task.

package workload

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// GeneratorConfig describes a synthetic workload.
type GeneratorConfig struct {
	Count         int     // number of tasks
	LengthDist    string  // "uniform" (default), "normal", "exponential"
	LengthMean    float64 // normal/exponential mean
	LengthStdDev  float64 // normal standard deviation
	LengthMin     float64 // uniform lower bound; clamp floor for the others
	LengthMax     float64 // uniform upper bound; clamp ceiling for the others
	PERequirement int
	FileSize      float64
	OutputSize    float64
	Seed          int64
}

// GenerateTasks samples Count task specs from the configured length
// distribution. Sampled lengths are clamped to [LengthMin, LengthMax] and
// never below one instruction.
func GenerateTasks(cfg GeneratorConfig) ([]TaskSpec, error) {
	src := rand.NewSource(uint64(cfg.Seed))

	var sample func() float64
	switch cfg.LengthDist {
	case "", "uniform":
		d := distuv.Uniform{Min: cfg.LengthMin, Max: cfg.LengthMax, Src: src}
		sample = d.Rand
	case "normal", "gaussian":
		d := distuv.Normal{Mu: cfg.LengthMean, Sigma: cfg.LengthStdDev, Src: src}
		sample = d.Rand
	case "exponential":
		if cfg.LengthMean <= 0 {
			return nil, fmt.Errorf("workload generator: exponential distribution needs a positive mean, got %f", cfg.LengthMean)
		}
		d := distuv.Exponential{Rate: 1 / cfg.LengthMean, Src: src}
		sample = d.Rand
	default:
		return nil, fmt.Errorf("workload generator: unknown length distribution %q", cfg.LengthDist)
	}

	tasks := make([]TaskSpec, cfg.Count)
	for i := range tasks {
		length := clamp(sample(), cfg.LengthMin, cfg.LengthMax)
		if length < 1 {
			length = 1
		}
		tasks[i] = TaskSpec{
			Length:        length,
			PERequirement: cfg.PERequirement,
			FileSize:      cfg.FileSize,
			OutputSize:    cfg.OutputSize,
		}
	}
	return tasks, nil
}

func clamp(v, lo, hi float64) float64 {
	if hi > lo {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
	}
	return v
}
