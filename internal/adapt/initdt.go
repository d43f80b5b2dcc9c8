package adapt

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
)

// InitialDt estimates a starting step size when the caller supplies none.
// It probes the drift and a three-sigma envelope of the diffusion at t0
// and at a trial point one Euler step away, forms the scale d0 of the
// state, d1 of the first-order increment and d2 of the curvature, and
// combines them with the scheme order. Runs once, outside the loop.
func InitialDt(sys sde.System, u0 sde.State, t0, tEnd float64, abstol, reltol, normOrder, order float64) float64 {
	n := len(u0)
	dtmax := (tEnd - t0) / 2

	f0 := sys.Drift(t0, u0)
	g0 := sys.Diffusion(t0, u0)

	d0 := ErrorNorm(u0, u0, u0, abstol, reltol, normOrder)

	env := make(sde.State, n)
	for i := 0; i < n; i++ {
		// Worst case of drift plus or minus the 3-sigma diffusion scale.
		env[i] = math.Max(math.Abs(f0[i]+3*g0[i]), math.Abs(f0[i]-3*g0[i]))
	}
	d1 := ErrorNorm(env, u0, u0, abstol, reltol, normOrder)

	var dt0 float64
	if d0 < 1e-5 || d1 < 1e-5 {
		dt0 = 1e-6
	} else {
		dt0 = 0.01 * (d0 / d1)
	}
	dt0 = math.Min(dt0, dtmax)

	// Trial Euler step to probe curvature.
	u1 := make(sde.State, n)
	for i := 0; i < n; i++ {
		u1[i] = u0[i] + dt0*f0[i]
	}
	f1 := sys.Drift(t0+dt0, u1)
	g1 := sys.Diffusion(t0+dt0, u1)

	curv := make(sde.State, n)
	for i := 0; i < n; i++ {
		dg := math.Max(math.Abs(3*g0[i]-3*g1[i]), math.Abs(3*g0[i]+3*g1[i]))
		curv[i] = math.Max(math.Abs(f1[i]-f0[i]+dg), math.Abs(f1[i]-f0[i]-dg))
	}
	d2 := ErrorNorm(curv, u0, u0, abstol, reltol, normOrder) / dt0

	dMax := math.Max(d1, d2)
	if dMax <= 1e-15 {
		return math.Max(1e-6, dt0*1e-3)
	}

	dt1 := math.Pow(10, -(2+math.Log10(dMax))/(order+0.5))
	return math.Max(1e-6, math.Min(math.Min(100*dt0, dt1), dtmax))
}
