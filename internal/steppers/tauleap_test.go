package steppers

import (
	"testing"

	"github.com/san-kum/stosim/internal/sde"
)

// birthDeath: two channels, birth at rate kb and death at rate kd*u.
type birthDeath struct {
	kb, kd float64
}

func (b *birthDeath) Dim() int             { return 1 }
func (b *birthDeath) Channels() int        { return 2 }
func (b *birthDeath) Noise() sde.NoiseKind { return sde.NoiseDiagonal }

func (b *birthDeath) Drift(t float64, u sde.State) sde.State     { return sde.State{0} }
func (b *birthDeath) Diffusion(t float64, u sde.State) sde.State { return sde.State{0} }

func (b *birthDeath) Rates(t float64, u sde.State) []float64 {
	return []float64{b.kb, b.kd * u[0]}
}

func (b *birthDeath) Stoichiometry(c int) sde.State {
	if c == 0 {
		return sde.State{1}
	}
	return sde.State{-1}
}

func TestTauLeap_ZeroRatesLeaveStateUnchanged(t *testing.T) {
	sys := &birthDeath{kb: 0, kd: 0}
	k := NewTauLeap(1)

	u := sde.State{5}
	next := k.Step(sys, u, 0, 0.5, Increments{})

	if next[0] != 5 {
		t.Errorf("zero-rate channels must not change state: got %v", next[0])
	}
}

func TestTauLeap_PureBirthOnlyIncreases(t *testing.T) {
	sys := &birthDeath{kb: 10, kd: 0}
	k := NewTauLeap(7)

	u := sde.State{0}
	for i := 0; i < 50; i++ {
		next := k.Step(sys, u, 0, 0.1, Increments{})
		if next[0] < u[0] {
			t.Fatalf("pure birth process decreased: %v -> %v", u[0], next[0])
		}
		u = next
	}
	if u[0] == 0 {
		t.Error("expected some births over 50 leaps at rate 10")
	}
}

func TestTauLeap_Reproducible(t *testing.T) {
	sys := &birthDeath{kb: 4, kd: 0.5}

	run := func(seed uint64) float64 {
		k := NewTauLeap(seed)
		u := sde.State{10}
		for i := 0; i < 20; i++ {
			u = k.Step(sys, u, float64(i)*0.1, 0.1, Increments{})
		}
		return u[0]
	}

	if run(42) != run(42) {
		t.Error("same seed should reproduce the same trajectory")
	}
}

func TestTauLeap_NonJumpSystemIsIdentity(t *testing.T) {
	sys := &constDrift{c: 1}
	k := NewTauLeap(1)

	u := sde.State{2}
	next := k.Step(sys, u, 0, 0.1, Increments{})

	if next[0] != 2 {
		t.Errorf("non-jump system should pass through unchanged, got %v", next[0])
	}
}
