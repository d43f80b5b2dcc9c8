package models

import (
	"math"
	"testing"

	"github.com/san-kum/stosim/internal/sde"
)

func TestGeometricBrownian_AnalyticAtZero(t *testing.T) {
	g := NewGeometricBrownian(1.0, 0.5)
	u0 := sde.State{2.0}

	u := g.Analytic(0, u0, sde.State{0})
	if math.Abs(u[0]-2.0) > 1e-12 {
		t.Errorf("analytic at t=0 should return u0, got %v", u[0])
	}
}

func TestGeometricBrownian_AnalyticDeterministicLimit(t *testing.T) {
	// With sigma = 0 the analytic solution is plain exponential growth.
	g := NewGeometricBrownian(0.7, 0)
	u := g.Analytic(1.0, sde.State{1.0}, sde.State{0})

	want := math.Exp(0.7)
	if math.Abs(u[0]-want) > 1e-12 {
		t.Errorf("got %v, want %v", u[0], want)
	}
}

func TestAdditiveLinear_Analytic(t *testing.T) {
	s := NewAdditiveLinear(2.0, 0.5)
	u := s.Analytic(3.0, sde.State{1.0}, sde.State{4.0})

	// u0 + a*t + b*W = 1 + 6 + 2.
	if math.Abs(u[0]-9.0) > 1e-12 {
		t.Errorf("got %v, want 9", u[0])
	}
}

func TestOrnsteinUhlenbeck_MeanReversion(t *testing.T) {
	s := NewOrnsteinUhlenbeck(2.0, 1.0, 0.1)

	above := s.Drift(0, sde.State{3.0})
	below := s.Drift(0, sde.State{-1.0})

	if above[0] >= 0 {
		t.Error("drift above the mean should be negative")
	}
	if below[0] <= 0 {
		t.Error("drift below the mean should be positive")
	}
}

func TestBirthDeath_RatesNonNegative(t *testing.T) {
	b := NewBirthDeath(5, 0.5)

	rates := b.Rates(0, sde.State{-2})
	for i, r := range rates {
		if r < 0 {
			t.Errorf("rate %d negative: %v", i, r)
		}
	}
}

func TestBirthDeath_Stoichiometry(t *testing.T) {
	b := NewBirthDeath(5, 0.5)

	if b.Stoichiometry(0)[0] != 1 {
		t.Error("birth channel should add one")
	}
	if b.Stoichiometry(1)[0] != -1 {
		t.Error("death channel should remove one")
	}
}

func TestBirthDeath_LangevinDiffusionFinite(t *testing.T) {
	b := NewBirthDeath(5, 0.5)

	g := b.Diffusion(0, sde.State{-10})
	if math.IsNaN(g[0]) {
		t.Error("diffusion must stay finite for negative populations")
	}
}
