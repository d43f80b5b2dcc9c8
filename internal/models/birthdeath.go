package models

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
)

// BirthDeath is a population with birth rate kb and per-capita death rate
// kd. As a jump process it exposes two reaction channels for tau-leaping;
// as a diffusion it uses the chemical Langevin approximation
// du = (kb - kd*u) dt + sqrt(kb + kd*u) dW, so the same model runs under
// both kernel families.
type BirthDeath struct {
	Birth float64
	Death float64
}

func NewBirthDeath(birth, death float64) *BirthDeath {
	return &BirthDeath{Birth: birth, Death: death}
}

func (b *BirthDeath) Dim() int             { return 1 }
func (b *BirthDeath) Channels() int        { return 2 }
func (b *BirthDeath) Noise() sde.NoiseKind { return sde.NoiseDiagonal }

func (b *BirthDeath) Drift(t float64, u sde.State) sde.State {
	return sde.State{b.Birth - b.Death*u[0]}
}

func (b *BirthDeath) Diffusion(t float64, u sde.State) sde.State {
	v := b.Birth + b.Death*math.Max(u[0], 0)
	return sde.State{math.Sqrt(v)}
}

func (b *BirthDeath) Rates(t float64, u sde.State) []float64 {
	return []float64{b.Birth, b.Death * math.Max(u[0], 0)}
}

func (b *BirthDeath) Stoichiometry(c int) sde.State {
	if c == 0 {
		return sde.State{1}
	}
	return sde.State{-1}
}
