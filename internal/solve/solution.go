package solve

import "github.com/san-kum/stosim/internal/sde"

// Point is one saved step of a run: time, state, and the Wiener value
// accumulated up to that time.
type Point struct {
	T float64
	U sde.State
	W sde.State
}

// Solution is the output record of a run. Not mutated after Solve
// returns; on a fatal error it holds the partial run up to the failure.
type Solution struct {
	Algorithm Algorithm

	// Initial state, start and final time, final state, and final
	// Wiener value.
	U0 sde.State
	T0 float64
	T  float64
	U  sde.State
	W  sde.State

	// Timeseries holds every TimeseriesSteps-th accepted step, starting
	// with the initial point. Empty when SaveTimeseries is off.
	Timeseries []Point

	// Analytic mirrors Timeseries with the exact solution when the
	// system provides one.
	Analytic []sde.State

	AcceptedSteps int
	RejectedSteps int

	// MaxBufferLen is the high-water mark of the noise buffer.
	MaxBufferLen int
}

// FinalError is the distance between the final state and the analytic
// solution at the final time, or -1 when no analytic solution exists.
// The analytic solution takes time elapsed since the start of the run.
func (s *Solution) FinalError(sys sde.System) float64 {
	an, ok := sys.(sde.Analytic)
	if !ok {
		return -1
	}
	exact := an.Analytic(s.T-s.T0, s.U0, s.W)
	return s.U.Sub(exact).Norm()
}
