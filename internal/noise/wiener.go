// Package noise provides Wiener-process sampling and path bookkeeping for
// stochastic integration.
package noise

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/stosim/internal/sde"
)

// Wiener samples Brownian increments for a fixed state dimension. Each
// component of an increment is drawn independently as N(0, dt). A Wiener
// source is not safe for concurrent use; give each run its own.
type Wiener struct {
	dim    int
	normal distuv.Normal
}

// NewWiener builds a source for dim-dimensional increments. The shape comes
// from the problem's dimension descriptor, never from state arithmetic.
func NewWiener(dim int, seed uint64) *Wiener {
	return &Wiener{
		dim: dim,
		normal: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewSource(seed),
		},
	}
}

func (w *Wiener) Dim() int { return w.dim }

// Sample draws dW with dW_i ~ N(0, dt).
func (w *Wiener) Sample(dt float64) sde.State {
	sq := math.Sqrt(dt)
	dW := make(sde.State, w.dim)
	for i := range dW {
		dW[i] = sq * w.normal.Rand()
	}
	return dW
}

// SamplePair draws dW and the auxiliary increment dZ used by the
// order-1.5 tableau schemes. dZ is an independent N(0, dt) draw; the
// schemes form the correlated iterated integral from the pair.
func (w *Wiener) SamplePair(dt float64) (dW, dZ sde.State) {
	return w.Sample(dt), w.Sample(dt)
}
