// Package adapt implements the adaptive machinery around a step kernel:
// the normalized error norm, the RSwM3-style step-size controller, and the
// initial step-size heuristic.
package adapt

import (
	"math"

	"github.com/san-kum/stosim/internal/sde"
)

// denomFloor keeps the tolerance denominator away from zero so a zero
// state with zero abstol cannot produce NaN.
const denomFloor = 1e-14

// ErrorNorm reduces a per-component local error estimate to a scalar.
// Each component is scaled by abstol + max(|uprev|,|unext|)*reltol and the
// result is reduced with the order-p norm: p <= 0 means max norm, p == 2
// the root mean square, other p the generalized mean.
func ErrorNorm(errEst, uprev, unext sde.State, abstol, reltol, p float64) float64 {
	n := len(errEst)
	if n == 0 {
		return 0
	}

	if p <= 0 || math.IsInf(p, 1) {
		worst := 0.0
		for i := 0; i < n; i++ {
			if w := scaled(errEst[i], uprev[i], unext[i], abstol, reltol); w > worst {
				worst = w
			}
		}
		return worst
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		w := scaled(errEst[i], uprev[i], unext[i], abstol, reltol)
		sum += math.Pow(w, p)
	}
	return math.Pow(sum/float64(n), 1/p)
}

func scaled(e, uprev, unext, abstol, reltol float64) float64 {
	denom := abstol + math.Max(math.Abs(uprev), math.Abs(unext))*reltol
	if denom < denomFloor {
		denom = denomFloor
	}
	return math.Abs(e) / denom
}
