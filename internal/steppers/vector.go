package steppers

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
)

// SRAVec and SRIVec compute the same stages as SRA and SRI but keep the
// stage buffers preallocated and update them with whole-array passes.
// Performance variants only: the math is identical to the plain kernels.

type SRAVec struct {
	tab   *Tableau
	delta float64

	chi2 sde.State
	h    sde.State
	ft   []sde.State
	gt   []sde.State
}

func NewSRAVec(tab *Tableau, delta float64) *SRAVec {
	return &SRAVec{tab: tab, delta: delta}
}

func (s *SRAVec) StrongOrder() float64 { return s.tab.Order }
func (s *SRAVec) NeedsAux() bool       { return true }
func (s *SRAVec) Tableau() *Tableau    { return s.tab }

func (s *SRAVec) ensureScratch(n int) {
	if len(s.h) == n {
		return
	}
	s.chi2 = make(sde.State, n)
	s.h = make(sde.State, n)
	s.ft = make([]sde.State, s.tab.Stages)
	s.gt = make([]sde.State, s.tab.Stages)
}

func (s *SRAVec) Step(sys sde.System, u sde.State, t, dt float64, inc Increments) sde.State {
	next, _ := s.StepError(sys, u, t, dt, inc)
	return next
}

func (s *SRAVec) StepError(sys sde.System, u sde.State, t, dt float64, inc Increments) (next, errEst sde.State) {
	tab := s.tab
	n := len(u)
	stages := tab.Stages
	s.ensureScratch(n)

	invSqrt3 := 1 / math.Sqrt(3)
	for i := 0; i < n; i++ {
		s.chi2[i] = 0.5 * (inc.DW[i] + inc.DZ[i]*invSqrt3)
	}

	for i := 0; i < stages; i++ {
		s.gt[i] = sys.Diffusion(t+tab.C1[i]*dt, u)
	}
	for i := 0; i < stages; i++ {
		copy(s.h, u)
		for j := 0; j < i; j++ {
			axpy(s.h, dt*tab.A0[i][j], s.ft[j])
			axpyMul(s.h, tab.B0[i][j], s.gt[j], s.chi2)
		}
		s.ft[i] = sys.Drift(t+tab.C0[i]*dt, s.h)
	}

	next = u.Clone()
	errEst = make(sde.State, n)
	e1 := make(sde.State, n)
	e2 := make(sde.State, n)
	for i := 0; i < stages; i++ {
		axpy(next, dt*tab.Alpha[i], s.ft[i])
		axpy(e1, dt, s.ft[i])
		axpyMul(next, tab.Beta1[i], s.gt[i], inc.DW)
		axpyMul(e2, tab.Beta2[i], s.gt[i], s.chi2)
	}
	for c := 0; c < n; c++ {
		next[c] += e2[c]
		errEst[c] = math.Abs(s.delta*e1[c] + e2[c])
	}
	return next, errEst
}

type SRIVec struct {
	tab   *Tableau
	delta float64

	chi1, chi2, chi3 sde.State
	h0, h1           sde.State
	ft, gt           []sde.State
}

func NewSRIVec(tab *Tableau, delta float64) *SRIVec {
	return &SRIVec{tab: tab, delta: delta}
}

func (s *SRIVec) StrongOrder() float64 { return s.tab.Order }
func (s *SRIVec) NeedsAux() bool       { return true }
func (s *SRIVec) Tableau() *Tableau    { return s.tab }

func (s *SRIVec) ensureScratch(n int) {
	if len(s.h0) == n {
		return
	}
	s.chi1 = make(sde.State, n)
	s.chi2 = make(sde.State, n)
	s.chi3 = make(sde.State, n)
	s.h0 = make(sde.State, n)
	s.h1 = make(sde.State, n)
	s.ft = make([]sde.State, s.tab.Stages)
	s.gt = make([]sde.State, s.tab.Stages)
}

func (s *SRIVec) Step(sys sde.System, u sde.State, t, dt float64, inc Increments) sde.State {
	next, _ := s.StepError(sys, u, t, dt, inc)
	return next
}

func (s *SRIVec) StepError(sys sde.System, u sde.State, t, dt float64, inc Increments) (next, errEst sde.State) {
	tab := s.tab
	n := len(u)
	stages := tab.Stages
	s.ensureScratch(n)

	sqdt := math.Sqrt(dt)
	invSqrt3 := 1 / math.Sqrt(3)
	for i := 0; i < n; i++ {
		dW := inc.DW[i]
		s.chi1[i] = 0.5 * (dW*dW - dt) / sqdt
		s.chi2[i] = 0.5 * (dW + inc.DZ[i]*invSqrt3)
		s.chi3[i] = (dW*dW*dW - 3*dW*dt) / (6 * dt)
	}

	for i := 0; i < stages; i++ {
		copy(s.h0, u)
		copy(s.h1, u)
		for j := 0; j < i; j++ {
			axpy(s.h0, dt*tab.A0[i][j], s.ft[j])
			axpyMul(s.h0, tab.B0[i][j], s.gt[j], s.chi2)
			axpy(s.h1, dt*tab.A1[i][j], s.ft[j])
			axpy(s.h1, sqdt*tab.B1[i][j], s.gt[j])
		}
		s.ft[i] = sys.Drift(t+tab.C0[i]*dt, s.h0)
		s.gt[i] = sys.Diffusion(t+tab.C1[i]*dt, s.h1)
	}

	next = u.Clone()
	errEst = make(sde.State, n)
	e1 := make(sde.State, n)
	e2 := make(sde.State, n)
	for i := 0; i < stages; i++ {
		axpy(next, dt*tab.Alpha[i], s.ft[i])
		axpy(e1, dt, s.ft[i])
		axpyMul(next, tab.Beta1[i], s.gt[i], inc.DW)
		axpyMul(next, tab.Beta2[i], s.gt[i], s.chi1)
		axpyMul(e2, tab.Beta3[i], s.gt[i], s.chi2)
		axpyMul(e2, tab.Beta4[i], s.gt[i], s.chi3)
	}
	for c := 0; c < n; c++ {
		next[c] += e2[c]
		errEst[c] = math.Abs(s.delta*e1[c] + e2[c])
	}
	return next, errEst
}

// axpy: dst += a*x, skipping the pass entirely when a is zero.
func axpy(dst sde.State, a float64, x sde.State) {
	if a == 0 {
		return
	}
	for i := range dst {
		dst[i] += a * x[i]
	}
}

// axpyMul: dst += a * x .* y elementwise.
func axpyMul(dst sde.State, a float64, x, y sde.State) {
	if a == 0 {
		return
	}
	for i := range dst {
		dst[i] += a * x[i] * y[i]
	}
}
