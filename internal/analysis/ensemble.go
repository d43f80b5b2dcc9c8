package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/stosim/internal/sde"
	"github.com/san-kum/stosim/internal/solve"
)

// FinalMoments returns mean and standard deviation of component k of
// the final states across an ensemble.
func FinalMoments(sols []*solve.Solution, k int) (mean, std float64) {
	values := make([]float64, 0, len(sols))
	for _, s := range sols {
		if k < len(s.U) {
			values = append(values, s.U[k])
		}
	}
	if len(values) == 0 {
		return 0, 0
	}
	mean, std = stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

// MeanPath averages component k of the retained trajectories pointwise.
// Runs must share a fixed step and retention stride so points line up;
// the average is truncated to the shortest run.
func MeanPath(sols []*solve.Solution, k int) []float64 {
	if len(sols) == 0 {
		return nil
	}
	n := len(sols[0].Timeseries)
	for _, s := range sols[1:] {
		if len(s.Timeseries) < n {
			n = len(s.Timeseries)
		}
	}
	if n == 0 {
		return nil
	}

	mean := make([]float64, n)
	for _, s := range sols {
		for i := 0; i < n; i++ {
			if k < len(s.Timeseries[i].U) {
				mean[i] += s.Timeseries[i].U[k]
			}
		}
	}
	for i := range mean {
		mean[i] /= float64(len(sols))
	}
	return mean
}

// StrongError is the root-mean-square of the pathwise final-time errors.
// Solutions without an exact counterpart contribute nothing.
func StrongError(sols []*solve.Solution, sys sde.System) float64 {
	sum := 0.0
	n := 0
	for _, s := range sols {
		e := s.FinalError(sys)
		if e < 0 {
			continue
		}
		sum += e * e
		n++
	}
	if n == 0 {
		return -1
	}
	return math.Sqrt(sum / float64(n))
}

// WeakError compares the ensemble mean of the final state against the
// mean of the exact solutions driven by the same noise.
func WeakError(sols []*solve.Solution, sys sde.System, k int) float64 {
	an, ok := sys.(sde.Analytic)
	if !ok {
		return -1
	}

	var num, exact float64
	n := 0
	for _, s := range sols {
		ex := an.Analytic(s.T-s.T0, s.U0, s.W)
		if k >= len(s.U) || k >= len(ex) {
			continue
		}
		num += s.U[k]
		exact += ex[k]
		n++
	}
	if n == 0 {
		return -1
	}
	return math.Abs(num/float64(n) - exact/float64(n))
}
