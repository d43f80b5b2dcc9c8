package steppers

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
)

// SRI is the tableau-driven stochastic Runge-Kutta family for diagonal or
// scalar noise. Each stage maintains two intermediate states: H0 feeding
// the drift evaluations and H1 feeding the diffusion evaluations. The
// noise functionals I(1,1), I(1,0) and I(1,1,1) are formed from the
// increment pair (dW, dZ) per component.
type SRI struct {
	tab   *Tableau
	delta float64
}

func NewSRI(tab *Tableau, delta float64) *SRI {
	return &SRI{tab: tab, delta: delta}
}

func (s *SRI) StrongOrder() float64 { return s.tab.Order }
func (s *SRI) NeedsAux() bool       { return true }
func (s *SRI) Tableau() *Tableau    { return s.tab }

func (s *SRI) Step(sys sde.System, u sde.State, t, dt float64, inc Increments) sde.State {
	next, _ := s.StepError(sys, u, t, dt, inc)
	return next
}

func (s *SRI) StepError(sys sde.System, u sde.State, t, dt float64, inc Increments) (next, errEst sde.State) {
	tab := s.tab
	n := len(u)
	stages := tab.Stages
	sqdt := math.Sqrt(dt)

	chi1 := make(sde.State, n) // I(1,1)/sqrt(dt)
	chi2 := make(sde.State, n) // I(1,0)/dt
	chi3 := make(sde.State, n) // I(1,1,1)/dt
	for i := 0; i < n; i++ {
		dW := inc.DW[i]
		chi1[i] = 0.5 * (dW*dW - dt) / sqdt
		chi2[i] = 0.5 * (dW + inc.DZ[i]/math.Sqrt(3))
		chi3[i] = (dW*dW*dW - 3*dW*dt) / (6 * dt)
	}

	ft := make([]sde.State, stages)
	gt := make([]sde.State, stages)
	h0 := make(sde.State, n)
	h1 := make(sde.State, n)
	for i := 0; i < stages; i++ {
		copy(h0, u)
		copy(h1, u)
		for j := 0; j < i; j++ {
			if a := tab.A0[i][j]; a != 0 {
				for c := 0; c < n; c++ {
					h0[c] += dt * a * ft[j][c]
				}
			}
			if b := tab.B0[i][j]; b != 0 {
				for c := 0; c < n; c++ {
					h0[c] += b * gt[j][c] * chi2[c]
				}
			}
			if a := tab.A1[i][j]; a != 0 {
				for c := 0; c < n; c++ {
					h1[c] += dt * a * ft[j][c]
				}
			}
			if b := tab.B1[i][j]; b != 0 {
				for c := 0; c < n; c++ {
					h1[c] += sqdt * b * gt[j][c]
				}
			}
		}
		ft[i] = sys.Drift(t+tab.C0[i]*dt, h0)
		gt[i] = sys.Diffusion(t+tab.C1[i]*dt, h1)
	}

	next = u.Clone()
	errEst = make(sde.State, n)
	for c := 0; c < n; c++ {
		e1 := 0.0
		for i := 0; i < stages; i++ {
			next[c] += dt * tab.Alpha[i] * ft[i][c]
			e1 += dt * ft[i][c]
		}
		e2 := 0.0
		for i := 0; i < stages; i++ {
			g := gt[i][c]
			next[c] += (tab.Beta1[i]*inc.DW[c] + tab.Beta2[i]*chi1[c]) * g
			e2 += (tab.Beta3[i]*chi2[c] + tab.Beta4[i]*chi3[c]) * g
		}
		next[c] += e2
		errEst[c] = math.Abs(s.delta*e1 + e2)
	}
	return next, errEst
}
