package sde

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// NoiseKind describes the structure of the driving Wiener process.
type NoiseKind int

const (
	// NoiseDiagonal: one independent Wiener component per state component,
	// diffusion acts componentwise.
	NoiseDiagonal NoiseKind = iota
	// NoiseAdditive: diffusion independent of state (g = g(t)).
	NoiseAdditive
	// NoiseScalar: a single Wiener component drives every state component.
	NoiseScalar
)

func (k NoiseKind) String() string {
	switch k {
	case NoiseAdditive:
		return "additive"
	case NoiseScalar:
		return "scalar"
	default:
		return "diagonal"
	}
}

// System is an SDE du = f(t,u)dt + g(t,u)dW. Drift and Diffusion must
// return fresh slices of length Dim and must not retain u.
type System interface {
	Drift(t float64, u State) State
	Diffusion(t float64, u State) State
	Dim() int
	Noise() NoiseKind
}

// Analytic is implemented by systems with a known pathwise solution
// u(t) as a function of the initial state and the Wiener value W(t).
type Analytic interface {
	Analytic(t float64, u0 State, w State) State
}

// JumpSystem is a jump process advanced by tau-leaping: each reaction
// channel fires a Poisson-distributed number of times per step and shifts
// the state by its stoichiometry row.
type JumpSystem interface {
	// Rates returns the per-channel propensities at (t, u); all entries
	// must be >= 0.
	Rates(t float64, u State) []float64
	// Stoichiometry returns the state change for one firing of channel c.
	Stoichiometry(c int) State
	Channels() int
	Dim() int
}

// RunError wraps an error with integration context. The state is the last
// accepted state before the failure.
type RunError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
