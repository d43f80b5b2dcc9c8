package adapt

import (
	"math"
	"testing"

	"github.com/san-kum/stosim/internal/sde"
)

func TestErrorNorm_RMS(t *testing.T) {
	errEst := sde.State{0.1, 0.2}
	u := sde.State{0, 0}

	// denom = abstol = 1 for both components: RMS of (0.1, 0.2).
	got := ErrorNorm(errEst, u, u, 1.0, 0, 2)
	want := math.Sqrt((0.01 + 0.04) / 2)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ErrorNorm = %v, want %v", got, want)
	}
}

func TestErrorNorm_MaxNorm(t *testing.T) {
	errEst := sde.State{0.1, 0.5, 0.2}
	u := sde.State{0, 0, 0}

	got := ErrorNorm(errEst, u, u, 1.0, 0, 0)
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("max norm = %v, want 0.5", got)
	}
}

func TestErrorNorm_UsesLargerStateForScale(t *testing.T) {
	errEst := sde.State{1.0}
	uprev := sde.State{0}
	unext := sde.State{100}

	// denom = abstol + 100*reltol = 1 + 10 = 11.
	got := ErrorNorm(errEst, uprev, unext, 1.0, 0.1, 2)
	if math.Abs(got-1.0/11.0) > 1e-12 {
		t.Errorf("ErrorNorm = %v, want %v", got, 1.0/11.0)
	}
}

func TestErrorNorm_ZeroDenominatorIsFinite(t *testing.T) {
	errEst := sde.State{1.0}
	u := sde.State{0}

	got := ErrorNorm(errEst, u, u, 0, 0, 2)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("expected finite norm with zero tolerances, got %v", got)
	}
	if got <= 0 {
		t.Error("expected positive norm for nonzero error")
	}
}

func TestController_AcceptWithinTolerance(t *testing.T) {
	c := NewController(0.5, 2.0, 1.125, 1e-15)

	d := c.Propose(0.5, 0.1)
	if !d.Accept {
		t.Error("e = 0.5 should be accepted")
	}
	if d.DtNext < 0.1 {
		t.Errorf("accepted step should not shrink: dtNext = %v", d.DtNext)
	}
	if d.DtNext > 0.1*1.125+1e-15 {
		t.Errorf("growth must respect qmax: dtNext = %v", d.DtNext)
	}
}

func TestController_RejectShrinks(t *testing.T) {
	c := NewController(0.5, 2.0, 1.125, 1e-15)

	for _, e := range []float64{1.01, 1.5, 4, 100} {
		d := c.Propose(e, 0.1)
		if d.Accept {
			t.Errorf("e = %v should be rejected", e)
		}
		if d.DtNext >= 0.1 {
			t.Errorf("e = %v: rejected step must shrink, dtNext = %v", e, d.DtNext)
		}
		if d.DtNext < 0.1*c.Qmin-1e-15 {
			t.Errorf("shrink must respect qmin: dtNext = %v", d.DtNext)
		}
	}
}

func TestController_QminFloorsLargeErrors(t *testing.T) {
	c := NewController(0.5, 2.0, 1.125, 1e-15)
	if c.Qmin != 0.2 {
		t.Fatalf("Qmin = %v, want 0.2", c.Qmin)
	}

	// An enormous error shrinks at most by the floor, never to zero.
	d := c.Propose(1e12, 0.1)
	if d.Accept {
		t.Error("e = 1e12 should be rejected")
	}
	if math.Abs(d.DtNext-0.1*0.2) > 1e-15 {
		t.Errorf("dtNext = %v, want the qmin floor 0.02", d.DtNext)
	}
}

func TestController_ZeroErrorGrowsAtQmax(t *testing.T) {
	c := NewController(1.5, 2.0, 1.125, 1e-15)

	d := c.Propose(0, 0.2)
	if !d.Accept {
		t.Error("zero error should be accepted")
	}
	if math.Abs(d.DtNext-0.2*1.125) > 1e-12 {
		t.Errorf("dtNext = %v, want qmax growth", d.DtNext)
	}
}

func TestController_DiscardLengthBand(t *testing.T) {
	c := NewController(0.5, 2.0, 1.125, 0.5)

	// Proposal changes dt by less than the discard band: treated as no-op.
	d := c.Propose(0.9, 0.1)
	if d.DtNext != 0.1 {
		t.Errorf("dtNext = %v, want unchanged 0.1", d.DtNext)
	}
}

func TestController_CarriesHistory(t *testing.T) {
	c := NewController(0.5, 2.0, 1.125, 1e-15)

	c.Propose(0.4, 0.05)
	if c.PrevErr() != 0.4 || c.PrevDt() != 0.05 {
		t.Error("accepted step should update carried history")
	}

	c.Propose(3.0, 0.08)
	if c.PrevErr() != 0.4 || c.PrevDt() != 0.05 {
		t.Error("rejected step must not update carried history")
	}
}

// flatSDE has zero drift and diffusion everywhere: both probe scales
// vanish, exercising the degenerate fallback.
type flatSDE struct{}

func (flatSDE) Dim() int                                   { return 1 }
func (flatSDE) Noise() sde.NoiseKind                       { return sde.NoiseDiagonal }
func (flatSDE) Drift(t float64, u sde.State) sde.State     { return sde.State{0} }
func (flatSDE) Diffusion(t float64, u sde.State) sde.State { return sde.State{0} }

type decaySDE struct{}

func (decaySDE) Dim() int             { return 1 }
func (decaySDE) Noise() sde.NoiseKind { return sde.NoiseDiagonal }
func (decaySDE) Drift(t float64, u sde.State) sde.State {
	return sde.State{-u[0]}
}
func (decaySDE) Diffusion(t float64, u sde.State) sde.State {
	return sde.State{0.1 * u[0]}
}

func TestInitialDt_DegenerateFallback(t *testing.T) {
	got := InitialDt(flatSDE{}, sde.State{1}, 0, 1, 1e-3, 1e-6, 2, 0.5)

	// d1 and d2 are both below 1e-15, so the fallback applies exactly.
	want := math.Max(1e-6, 1e-6*1e-3)
	if got != want {
		t.Errorf("InitialDt = %v, want exactly %v", got, want)
	}
}

func TestInitialDt_PositiveAndBounded(t *testing.T) {
	got := InitialDt(decaySDE{}, sde.State{2}, 0, 1, 1e-3, 1e-6, 2, 0.5)

	if got <= 0 || math.IsNaN(got) {
		t.Fatalf("InitialDt = %v, want positive finite", got)
	}
	if got > 0.5 {
		t.Errorf("InitialDt = %v exceeds dtmax", got)
	}
	if got < 1e-6 {
		t.Errorf("InitialDt = %v below floor", got)
	}
}
