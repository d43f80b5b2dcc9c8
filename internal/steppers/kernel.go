// Package steppers implements the single-step advancement kernels for
// stochastic integration: Euler-Maruyama, derivative-free Milstein,
// the tableau-driven SRA and SRI stochastic Runge-Kutta families, and
// tau-leaping for jump processes.
package steppers

import "github.com/san-kum/stosim/internal/sde"

// Increments carries the noise drawn for one attempted step. DW is the
// Wiener increment; DZ is the auxiliary increment consumed by the
// order-1.5 tableau schemes and nil otherwise.
type Increments struct {
	DW sde.State
	DZ sde.State
}

// Kernel advances the state by one step. Implementations must not retain
// u or the increments past the call.
type Kernel interface {
	Step(sys sde.System, u sde.State, t, dt float64, inc Increments) sde.State

	// StrongOrder is the strong convergence order, used by the step-size
	// controller exponent.
	StrongOrder() float64

	// NeedsAux reports whether the kernel consumes the auxiliary
	// increment DZ.
	NeedsAux() bool
}

// Embedded is implemented by kernels that produce a per-component local
// error estimate alongside the candidate state. Kernels without an
// embedded estimate cannot drive adaptive stepping.
type Embedded interface {
	Kernel
	StepError(sys sde.System, u sde.State, t, dt float64, inc Increments) (next, errEst sde.State)
}
