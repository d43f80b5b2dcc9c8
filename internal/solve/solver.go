package solve

import (
	"fmt"
	"math"

	"github.com/san-kum/stosim/internal/adapt"
	"github.com/san-kum/stosim/internal/noise"
	"github.com/san-kum/stosim/internal/sde"
	"github.com/san-kum/stosim/internal/steppers"
)

// newKernel resolves the stepping strategy for a run. All algorithm
// dispatch happens here, once; the loop holds the returned kernel as a
// fixed strategy object.
func newKernel(sys sde.System, opts *Options) (steppers.Kernel, error) {
	tab := opts.Tableau

	sraTab := func() (*steppers.Tableau, error) {
		if tab == nil {
			return steppers.SRA1(), nil
		}
		if tab.B0 == nil {
			return nil, fmt.Errorf("%w: tableau %s lacks additive-noise stages", sde.ErrUnsupportedScheme, tab.Name)
		}
		return tab, nil
	}
	sriTab := func() (*steppers.Tableau, error) {
		if tab == nil {
			return steppers.SRIW1(), nil
		}
		if tab.A1 == nil || tab.B1 == nil {
			return nil, fmt.Errorf("%w: tableau %s lacks diffusion stages", sde.ErrUnsupportedScheme, tab.Name)
		}
		return tab, nil
	}

	switch opts.Algorithm {
	case EM:
		return steppers.NewEulerMaruyama(), nil
	case RKMil:
		return steppers.NewMilstein(), nil
	case SRA, SRA1Optimized:
		if sys.Noise() != sde.NoiseAdditive {
			return nil, fmt.Errorf("%w: %s requires additive noise, problem has %s",
				sde.ErrUnsupportedScheme, opts.Algorithm, sys.Noise())
		}
		t, err := sraTab()
		if err != nil {
			return nil, err
		}
		return steppers.NewSRA(t, opts.Delta), nil
	case SRAVectorized:
		if sys.Noise() != sde.NoiseAdditive {
			return nil, fmt.Errorf("%w: %s requires additive noise, problem has %s",
				sde.ErrUnsupportedScheme, opts.Algorithm, sys.Noise())
		}
		t, err := sraTab()
		if err != nil {
			return nil, err
		}
		return steppers.NewSRAVec(t, opts.Delta), nil
	case SRI, SRIW1Optimized:
		t, err := sriTab()
		if err != nil {
			return nil, err
		}
		return steppers.NewSRI(t, opts.Delta), nil
	case SRIVectorized:
		t, err := sriTab()
		if err != nil {
			return nil, err
		}
		return steppers.NewSRIVec(t, opts.Delta), nil
	case TauLeaping:
		if _, ok := sys.(sde.JumpSystem); !ok {
			return nil, fmt.Errorf("%w: TauLeaping requires a jump system", sde.ErrUnsupportedScheme)
		}
		return steppers.NewTauLeap(opts.Seed + 1), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", sde.ErrUnsupportedScheme, opts.Algorithm)
	}
}

// Solve integrates sys from tspan[0] to tspan[1] starting at u0.
// On a fatal mid-run error the partial Solution accumulated so far is
// returned alongside the error.
func Solve(sys sde.System, u0 sde.State, tspan []float64, opts *Options) (*Solution, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(tspan) != 2 || !(tspan[1] > tspan[0]) {
		return nil, sde.ErrBadTimeSpan
	}
	if len(u0) != sys.Dim() {
		return nil, sde.ErrDimensionMismatch
	}

	kernel, err := newKernel(sys, opts)
	if err != nil {
		return nil, err
	}
	embedded, hasErr := kernel.(steppers.Embedded)
	if opts.Adaptive && !hasErr {
		return nil, fmt.Errorf("%w: %s has no embedded error estimate for adaptive stepping",
			sde.ErrUnsupportedScheme, opts.Algorithm)
	}
	if opts.Adaptive && opts.AdaptiveController != "" && opts.AdaptiveController != RSwM3 {
		return nil, fmt.Errorf("%w: unknown step size controller %q",
			sde.ErrUnsupportedScheme, opts.AdaptiveController)
	}

	stride := opts.TimeseriesSteps
	if stride < 1 {
		stride = 1
	}

	t0, tEnd := tspan[0], tspan[1]
	dtmax := opts.dtmaxFor(t0, tEnd)
	dtmin := opts.Dtmin

	dt := opts.Dt
	if dt == 0 {
		dt = adapt.InitialDt(sys, u0, t0, tEnd, opts.Abstol, opts.Reltol, opts.normOrder(), kernel.StrongOrder())
	}
	dt = math.Min(dt, dtmax)

	dim := sys.Dim()
	src := noise.NewWiener(dim, opts.Seed)
	buf := noise.NewBuffer(dim)
	ctrl := adapt.NewController(kernel.StrongOrder(), opts.Gamma, opts.Qmax, opts.DiscardLength)

	u := u0.Clone()
	t := t0

	sol := &Solution{
		Algorithm: opts.Algorithm,
		U0:        u0.Clone(),
		T0:        t0,
	}
	analytic, hasAnalytic := sys.(sde.Analytic)
	savePoint := func() {
		sol.Timeseries = append(sol.Timeseries, Point{T: t, U: u.Clone(), W: buf.W()})
		if hasAnalytic {
			sol.Analytic = append(sol.Analytic, analytic.Analytic(t-t0, sol.U0, buf.W()))
		}
	}
	if opts.SaveTimeseries {
		savePoint()
	}

	fail := func(cause error) (*Solution, error) {
		sol.T, sol.U, sol.W = t, u, buf.W()
		sol.MaxBufferLen = buf.Peak()
		return sol, &sde.RunError{Step: sol.AcceptedSteps, Time: t, State: u.Clone(), Wrapped: cause}
	}

	for t < tEnd {
		if sol.AcceptedSteps >= opts.Maxiters {
			return fail(sde.ErrMaxIters)
		}

		finalStep := false
		if t+dt >= tEnd {
			dt = tEnd - t
			finalStep = true
		}

		var inc steppers.Increments
		if kernel.NeedsAux() {
			inc.DW, inc.DZ = src.SamplePair(dt)
		} else {
			inc.DW = src.Sample(dt)
		}

		var candidate, errEst sde.State
		if hasErr {
			candidate, errEst = embedded.StepError(sys, u, t, dt, inc)
		} else {
			candidate = kernel.Step(sys, u, t, dt, inc)
		}

		if !candidate.IsValid() {
			// Forced rejection: shrink and redraw. Fatal once the step
			// size has nowhere left to go.
			if dt <= dtmin {
				return fail(sde.ErrNonFiniteState)
			}
			sol.RejectedSteps++
			dt = math.Max(dtmin, dt/2)
			continue
		}

		dtNext := dt
		if opts.Adaptive {
			e := adapt.ErrorNorm(errEst, u, candidate, opts.Abstol, opts.Reltol, opts.normOrder())
			d := ctrl.Propose(e, dt)
			if !d.Accept {
				// The increment drawn for this attempt is discarded; the
				// retry samples fresh noise over the shorter interval.
				sol.RejectedSteps++
				if d.DtNext < dtmin {
					return fail(sde.ErrStepSizeCollapse)
				}
				dt = d.DtNext
				continue
			}
			dtNext = math.Min(dtmax, math.Max(dtmin, d.DtNext))
		}

		// Commit.
		u = candidate
		if finalStep {
			t = tEnd
		} else {
			t += dt
		}
		buf.Push(t, inc.DW)
		sol.AcceptedSteps++

		if opts.SaveTimeseries && sol.AcceptedSteps%stride == 0 {
			savePoint()
		}
		if opts.Progress != nil && opts.ProgressSteps > 0 && sol.AcceptedSteps%opts.ProgressSteps == 0 {
			opts.Progress(sol.AcceptedSteps, t, u)
		}

		dt = dtNext
	}

	sol.T, sol.U, sol.W = t, u, buf.W()
	sol.MaxBufferLen = buf.Peak()
	return sol, nil
}
