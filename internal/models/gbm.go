// Package models provides stochastic systems with known behavior, used by
// the CLI and as convergence references in tests.
package models

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
)

// GeometricBrownian is du = mu*u dt + sigma*u dW, the standard
// multiplicative-noise test problem. Its pathwise solution
// u(t) = u0 * exp((mu - sigma^2/2) t + sigma W(t)) makes it the reference
// for strong-convergence measurements.
type GeometricBrownian struct {
	Mu    float64
	Sigma float64
	N     int
}

func NewGeometricBrownian(mu, sigma float64) *GeometricBrownian {
	return &GeometricBrownian{Mu: mu, Sigma: sigma, N: 1}
}

func (g *GeometricBrownian) Dim() int             { return g.N }
func (g *GeometricBrownian) Noise() sde.NoiseKind { return sde.NoiseDiagonal }

func (g *GeometricBrownian) Drift(t float64, u sde.State) sde.State {
	du := make(sde.State, len(u))
	for i := range u {
		du[i] = g.Mu * u[i]
	}
	return du
}

func (g *GeometricBrownian) Diffusion(t float64, u sde.State) sde.State {
	du := make(sde.State, len(u))
	for i := range u {
		du[i] = g.Sigma * u[i]
	}
	return du
}

func (g *GeometricBrownian) Analytic(t float64, u0 sde.State, w sde.State) sde.State {
	u := make(sde.State, len(u0))
	for i := range u0 {
		u[i] = u0[i] * math.Exp((g.Mu-0.5*g.Sigma*g.Sigma)*t+g.Sigma*w[i])
	}
	return u
}
