package steppers

import (
	"math"
	"testing"

	"github.com/san-kum/stosim/internal/sde"
)

// geometricSDE: du = a*u dt + b*u dW, diagonal noise.
type geometricSDE struct {
	a, b float64
	dim  int
}

func (s *geometricSDE) Dim() int             { return s.dim }
func (s *geometricSDE) Noise() sde.NoiseKind { return sde.NoiseDiagonal }

func (s *geometricSDE) Drift(t float64, u sde.State) sde.State {
	du := make(sde.State, len(u))
	for i := range u {
		du[i] = s.a * u[i]
	}
	return du
}

func (s *geometricSDE) Diffusion(t float64, u sde.State) sde.State {
	du := make(sde.State, len(u))
	for i := range u {
		du[i] = s.b * u[i]
	}
	return du
}

// additiveSDE: du = a*u dt + b dW, additive noise.
type additiveSDE struct {
	a, b float64
}

func (s *additiveSDE) Dim() int             { return 1 }
func (s *additiveSDE) Noise() sde.NoiseKind { return sde.NoiseAdditive }

func (s *additiveSDE) Drift(t float64, u sde.State) sde.State {
	return sde.State{s.a * u[0]}
}

func (s *additiveSDE) Diffusion(t float64, u sde.State) sde.State {
	return sde.State{s.b}
}

// constDrift: du = c dt, no noise.
type constDrift struct{ c float64 }

func (s *constDrift) Dim() int             { return 1 }
func (s *constDrift) Noise() sde.NoiseKind { return sde.NoiseDiagonal }
func (s *constDrift) Drift(t float64, u sde.State) sde.State {
	return sde.State{s.c}
}
func (s *constDrift) Diffusion(t float64, u sde.State) sde.State {
	return sde.State{0}
}

func TestEulerMaruyama_Formula(t *testing.T) {
	sys := &geometricSDE{a: 0.5, b: 0.3, dim: 1}
	em := NewEulerMaruyama()

	u := sde.State{2.0}
	dt := 0.1
	inc := Increments{DW: sde.State{0.2}}

	next, errEst := em.StepError(sys, u, 0, dt, inc)

	// u + a*u*dt + b*u*dW = 2 + 0.1 + 0.12
	if math.Abs(next[0]-2.22) > 1e-12 {
		t.Errorf("next = %v, want 2.22", next[0])
	}
	// max(|0.1+0.12|, |0.1-0.12|)
	if math.Abs(errEst[0]-0.22) > 1e-12 {
		t.Errorf("errEst = %v, want 0.22", errEst[0])
	}
}

func TestMilstein_ReducesToEMForConstantDiffusion(t *testing.T) {
	sys := &additiveSDE{a: -1.0, b: 0.4}
	em := NewEulerMaruyama()
	mil := NewMilstein()

	u := sde.State{1.5}
	inc := Increments{DW: sde.State{-0.3}}

	a := em.Step(sys, u, 0, 0.05, inc)
	b := mil.Step(sys, u, 0, 0.05, inc)

	if math.Abs(a[0]-b[0]) > 1e-12 {
		t.Errorf("Milstein correction should vanish for additive noise: %v vs %v", a[0], b[0])
	}
}

func TestMilstein_CorrectionSign(t *testing.T) {
	// With multiplicative noise the correction ~ b^2*u*(dW^2-dt)/2 is
	// positive when dW^2 > dt.
	sys := &geometricSDE{a: 0, b: 0.5, dim: 1}
	em := NewEulerMaruyama()
	mil := NewMilstein()

	u := sde.State{1.0}
	dt := 0.01
	inc := Increments{DW: sde.State{0.5}} // dW^2 >> dt

	a := em.Step(sys, u, 0, dt, inc)
	b := mil.Step(sys, u, 0, dt, inc)

	if b[0] <= a[0] {
		t.Errorf("expected positive Milstein correction: em=%v mil=%v", a[0], b[0])
	}
}

func TestSRA_AdditivePureNoiseIsExact(t *testing.T) {
	// With zero drift and constant diffusion the SRA1 update collapses to
	// u + b*dW and the embedded error vanishes.
	sys := &additiveSDE{a: 0, b: 0.7}
	kernel := NewSRA(SRA1(), 1.0/6.0)

	u := sde.State{3.0}
	inc := Increments{DW: sde.State{0.25}, DZ: sde.State{-0.1}}

	next, errEst := kernel.StepError(sys, u, 0, 0.1, inc)

	want := 3.0 + 0.7*0.25
	if math.Abs(next[0]-want) > 1e-12 {
		t.Errorf("next = %v, want %v", next[0], want)
	}
	if math.Abs(errEst[0]) > 1e-12 {
		t.Errorf("errEst = %v, want 0", errEst[0])
	}
}

func TestSRI_DeterministicDriftIsExactForConstantF(t *testing.T) {
	sys := &constDrift{c: 2.0}
	kernel := NewSRI(SRIW1(), 1.0/6.0)

	u := sde.State{1.0}
	dt := 0.25
	inc := Increments{DW: sde.State{0}, DZ: sde.State{0}}

	next, errEst := kernel.StepError(sys, u, 0, dt, inc)

	if math.Abs(next[0]-(1.0+2.0*dt)) > 1e-12 {
		t.Errorf("next = %v, want %v", next[0], 1.0+2.0*dt)
	}
	// Drift error proxy: delta * dt * sum over the four stage evaluations.
	want := (1.0 / 6.0) * dt * 4 * 2.0
	if math.Abs(errEst[0]-want) > 1e-12 {
		t.Errorf("errEst = %v, want %v", errEst[0], want)
	}
}

func TestVectorizedKernelsMatchPlain(t *testing.T) {
	delta := 1.0 / 6.0
	dt := 0.05
	t0 := 0.3

	t.Run("sri", func(t *testing.T) {
		sys := &geometricSDE{a: 0.4, b: 0.2, dim: 3}
		plain := NewSRI(SRIW1(), delta)
		vec := NewSRIVec(SRIW1(), delta)

		u := sde.State{1.0, 2.0, -0.5}
		inc := Increments{
			DW: sde.State{0.1, -0.2, 0.05},
			DZ: sde.State{-0.05, 0.15, 0.2},
		}

		a, ae := plain.StepError(sys, u, t0, dt, inc)
		b, be := vec.StepError(sys, u, t0, dt, inc)

		for i := range a {
			if math.Abs(a[i]-b[i]) > 1e-12 {
				t.Errorf("state[%d]: %v vs %v", i, a[i], b[i])
			}
			if math.Abs(ae[i]-be[i]) > 1e-12 {
				t.Errorf("errEst[%d]: %v vs %v", i, ae[i], be[i])
			}
		}
	})

	t.Run("sra", func(t *testing.T) {
		sys := &additiveSDE{a: -0.8, b: 0.6}
		plain := NewSRA(SRA1(), delta)
		vec := NewSRAVec(SRA1(), delta)

		u := sde.State{2.5}
		inc := Increments{DW: sde.State{0.3}, DZ: sde.State{-0.2}}

		a, ae := plain.StepError(sys, u, t0, dt, inc)
		b, be := vec.StepError(sys, u, t0, dt, inc)

		if math.Abs(a[0]-b[0]) > 1e-12 || math.Abs(ae[0]-be[0]) > 1e-12 {
			t.Errorf("sra mismatch: %v/%v vs %v/%v", a[0], ae[0], b[0], be[0])
		}
	})
}

func TestTableauShapes(t *testing.T) {
	for _, tab := range []*Tableau{SRA1(), SRIW1()} {
		if len(tab.Alpha) != tab.Stages || len(tab.C0) != tab.Stages {
			t.Errorf("%s: weight/node length != stages", tab.Name)
		}
		sum := 0.0
		for _, a := range tab.Alpha {
			sum += a
		}
		// Drift weights must be a partition of unity for consistency.
		if math.Abs(sum-1.0) > 1e-12 {
			t.Errorf("%s: alpha sums to %v", tab.Name, sum)
		}
	}
}
