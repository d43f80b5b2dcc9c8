package steppers

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
)

// EulerMaruyama is the basic strong order 0.5 scheme
// u_next = u + f(t,u)dt + g(t,u)dW.
type EulerMaruyama struct{}

func NewEulerMaruyama() *EulerMaruyama { return &EulerMaruyama{} }

func (e *EulerMaruyama) StrongOrder() float64 { return 0.5 }
func (e *EulerMaruyama) NeedsAux() bool       { return false }

func (e *EulerMaruyama) Step(sys sde.System, u sde.State, t, dt float64, inc Increments) sde.State {
	next, _ := e.StepError(sys, u, t, dt, inc)
	return next
}

// StepError estimates the local error by comparing the drift and diffusion
// contributions constructively and destructively: the larger of
// |f dt + g dW| and |f dt - g dW| per component.
func (e *EulerMaruyama) StepError(sys sde.System, u sde.State, t, dt float64, inc Increments) (next, errEst sde.State) {
	f := sys.Drift(t, u)
	g := sys.Diffusion(t, u)

	n := len(u)
	next = make(sde.State, n)
	errEst = make(sde.State, n)
	for i := 0; i < n; i++ {
		drift := dt * f[i]
		diff := g[i] * inc.DW[i]
		next[i] = u[i] + drift + diff
		errEst[i] = math.Max(math.Abs(drift+diff), math.Abs(drift-diff))
	}
	return next, errEst
}

// Milstein is the derivative-free Milstein scheme (RKMil): the
// g'(u)g(u)(dW^2 - dt)/2 correction is approximated by a Runge-Kutta
// style perturbation of the diffusion, so no explicit derivative of g is
// required. Strong order 1.0 for diagonal noise.
type Milstein struct{}

func NewMilstein() *Milstein { return &Milstein{} }

func (m *Milstein) StrongOrder() float64 { return 1.0 }
func (m *Milstein) NeedsAux() bool       { return false }

func (m *Milstein) Step(sys sde.System, u sde.State, t, dt float64, inc Increments) sde.State {
	next, _ := m.StepError(sys, u, t, dt, inc)
	return next
}

func (m *Milstein) StepError(sys sde.System, u sde.State, t, dt float64, inc Increments) (next, errEst sde.State) {
	f := sys.Drift(t, u)
	g := sys.Diffusion(t, u)

	n := len(u)
	sqdt := math.Sqrt(dt)

	utilde := make(sde.State, n)
	for i := 0; i < n; i++ {
		utilde[i] = u[i] + dt*f[i] + sqdt*g[i]
	}
	gtilde := sys.Diffusion(t, utilde)

	next = make(sde.State, n)
	errEst = make(sde.State, n)
	for i := 0; i < n; i++ {
		drift := dt * f[i]
		diff := g[i] * inc.DW[i]
		correction := (gtilde[i] - g[i]) / (2 * sqdt) * (inc.DW[i]*inc.DW[i] - dt)
		next[i] = u[i] + drift + diff + correction
		errEst[i] = math.Max(math.Abs(drift+diff), math.Abs(drift-diff))
	}
	return next, errEst
}
