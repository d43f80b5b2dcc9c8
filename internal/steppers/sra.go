package steppers

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
)

// SRA is the tableau-driven stochastic Runge-Kutta family for additive
// noise. The diffusion depends only on time, so the diffusion stages are
// evaluated at the current state and only the drift stages branch.
type SRA struct {
	tab   *Tableau
	delta float64
}

// NewSRA builds an additive-noise kernel from the given tableau. delta
// weights the drift part of the embedded error estimate.
func NewSRA(tab *Tableau, delta float64) *SRA {
	return &SRA{tab: tab, delta: delta}
}

func (s *SRA) StrongOrder() float64 { return s.tab.Order }
func (s *SRA) NeedsAux() bool       { return true }
func (s *SRA) Tableau() *Tableau    { return s.tab }

func (s *SRA) Step(sys sde.System, u sde.State, t, dt float64, inc Increments) sde.State {
	next, _ := s.StepError(sys, u, t, dt, inc)
	return next
}

func (s *SRA) StepError(sys sde.System, u sde.State, t, dt float64, inc Increments) (next, errEst sde.State) {
	tab := s.tab
	n := len(u)
	stages := tab.Stages

	// chi2 approximates I(1,0)/dt from the increment pair.
	chi2 := make(sde.State, n)
	for i := 0; i < n; i++ {
		chi2[i] = 0.5 * (inc.DW[i] + inc.DZ[i]/math.Sqrt(3))
	}

	// Additive noise: diffusion stages depend on time only.
	gt := make([]sde.State, stages)
	for i := 0; i < stages; i++ {
		gt[i] = sys.Diffusion(t+tab.C1[i]*dt, u)
	}

	ft := make([]sde.State, stages)
	h := make(sde.State, n)
	for i := 0; i < stages; i++ {
		copy(h, u)
		for j := 0; j < i; j++ {
			if a := tab.A0[i][j]; a != 0 {
				for c := 0; c < n; c++ {
					h[c] += dt * a * ft[j][c]
				}
			}
			if b := tab.B0[i][j]; b != 0 {
				for c := 0; c < n; c++ {
					h[c] += b * gt[j][c] * chi2[c]
				}
			}
		}
		ft[i] = sys.Drift(t+tab.C0[i]*dt, h)
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
			next[c] += tab.Beta1[i] * gt[i][c] * inc.DW[c]
			e2 += tab.Beta2[i] * gt[i][c] * chi2[c]
		}
		next[c] += e2
		errEst[c] = math.Abs(s.delta*e1 + e2)
	}
	return next, errEst
}
