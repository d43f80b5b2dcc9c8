// Package solve runs the stochastic integration loop: it wires a step
// kernel, a noise source, the error norm and the step-size controller
// together and drives them from t0 to T.
package solve

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
	"github.com/san-kum/stosim/internal/steppers"
)

// Algorithm names a stepping scheme. The kernel is resolved once before
// the loop starts; the loop itself never branches on the algorithm.
type Algorithm string

const (
	EM             Algorithm = "EM"
	RKMil          Algorithm = "RKMil"
	SRA            Algorithm = "SRA"
	SRI            Algorithm = "SRI"
	SRA1Optimized  Algorithm = "SRA1Optimized"
	SRIW1Optimized Algorithm = "SRIW1Optimized"
	SRAVectorized  Algorithm = "SRAVectorized"
	SRIVectorized  Algorithm = "SRIVectorized"
	TauLeaping     Algorithm = "TauLeaping"
)

// Controller names a step-size control strategy. Only the rejection
// sampling with memory variant is implemented; the knob exists so a run
// records which controller produced it.
type Controller string

const RSwM3 Controller = "RSwM3"

type Options struct {
	// Dt is the (initial) step size; 0 means estimate it from the problem.
	Dt float64

	Algorithm Algorithm

	// Adaptive enables error-controlled step sizing. Off by default; the
	// fixed-step path is the reference behavior.
	Adaptive bool

	// AdaptiveController selects the step-size control strategy. Empty
	// means RSwM3, the only implemented controller.
	AdaptiveController Controller

	// SaveTimeseries retains every TimeseriesSteps-th accepted point.
	// TimeseriesSteps values below 1 behave as 1.
	SaveTimeseries  bool
	TimeseriesSteps int

	Abstol float64
	Reltol float64

	Gamma         float64 // controller risk factor
	Qmax          float64
	Delta         float64 // embedded drift-error weight
	InternalNorm  float64 // norm order for error reduction, 0 = max norm
	DiscardLength float64

	Maxiters int
	Dtmax    float64 // 0 means half the time span
	Dtmin    float64

	// Tableau overrides the scheme table chosen by the algorithm family.
	Tableau *steppers.Tableau

	Seed uint64

	// Progress, when set, is called every ProgressSteps accepted steps.
	// Purely observational.
	Progress      func(step int, t float64, u sde.State)
	ProgressSteps int
}

func DefaultOptions() *Options {
	return &Options{
		Algorithm:          SRIW1Optimized,
		Adaptive:           false,
		AdaptiveController: RSwM3,
		SaveTimeseries:     true,
		TimeseriesSteps:    1,
		Abstol:             1e-3,
		Reltol:             1e-6,
		Gamma:              2.0,
		Qmax:               1.125,
		Delta:              1.0 / 6.0,
		InternalNorm:       2,
		DiscardLength:      1e-15,
		Maxiters:           1e9,
		Dtmin:              1e-10,
		ProgressSteps:      1000,
		Seed:               1,
	}
}

// dtmaxFor resolves the effective maximum step for a span.
func (o *Options) dtmaxFor(t0, tEnd float64) float64 {
	if o.Dtmax > 0 {
		return o.Dtmax
	}
	return (tEnd - t0) / 2
}

func (o *Options) normOrder() float64 {
	if o.InternalNorm < 0 {
		return math.Inf(1)
	}
	return o.InternalNorm
}
