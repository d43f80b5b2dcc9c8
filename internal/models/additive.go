package models

import "github.com/san-kum/stosim/internal/sde"

// AdditiveLinear is du = a dt + b dW: constant drift and constant
// (additive) diffusion. Solved exactly by every scheme here, which makes
// it the smoke test for noise bookkeeping: u(t) = u0 + a t + b W(t).
type AdditiveLinear struct {
	A float64
	B float64
}

func NewAdditiveLinear(a, b float64) *AdditiveLinear {
	return &AdditiveLinear{A: a, B: b}
}

func (s *AdditiveLinear) Dim() int             { return 1 }
func (s *AdditiveLinear) Noise() sde.NoiseKind { return sde.NoiseAdditive }

func (s *AdditiveLinear) Drift(t float64, u sde.State) sde.State {
	return sde.State{s.A}
}

func (s *AdditiveLinear) Diffusion(t float64, u sde.State) sde.State {
	return sde.State{s.B}
}

func (s *AdditiveLinear) Analytic(t float64, u0 sde.State, w sde.State) sde.State {
	return sde.State{u0[0] + s.A*t + s.B*w[0]}
}

// OrnsteinUhlenbeck is du = theta*(mu - u) dt + sigma dW, mean-reverting
// with additive noise. No pathwise closed form in terms of W(t) alone, so
// it carries no Analytic method.
type OrnsteinUhlenbeck struct {
	Theta float64
	Mu    float64
	Sigma float64
}

func NewOrnsteinUhlenbeck(theta, mu, sigma float64) *OrnsteinUhlenbeck {
	return &OrnsteinUhlenbeck{Theta: theta, Mu: mu, Sigma: sigma}
}

func (s *OrnsteinUhlenbeck) Dim() int             { return 1 }
func (s *OrnsteinUhlenbeck) Noise() sde.NoiseKind { return sde.NoiseAdditive }

func (s *OrnsteinUhlenbeck) Drift(t float64, u sde.State) sde.State {
	return sde.State{s.Theta * (s.Mu - u[0])}
}

func (s *OrnsteinUhlenbeck) Diffusion(t float64, u sde.State) sde.State {
	return sde.State{s.Sigma}
}
