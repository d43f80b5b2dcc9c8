package noise

import "github.com/san-kum/stosim/internal/sde"

// Buffer records the increments of accepted steps in time order and keeps
// the running Wiener value. Speculative increments drawn for rejected steps
// are never pushed; Truncate undoes recorded entries when a committed
// interval has to be re-stepped. Behaves as a resettable stack over the
// sampled path.
type Buffer struct {
	times []float64
	incs  []sde.State
	w     sde.State
	peak  int
}

func NewBuffer(dim int) *Buffer {
	return &Buffer{w: make(sde.State, dim)}
}

// Push records the increment of an accepted step ending at time t.
func (b *Buffer) Push(t float64, dW sde.State) {
	b.times = append(b.times, t)
	b.incs = append(b.incs, dW.Clone())
	for i := range b.w {
		b.w[i] += dW[i]
	}
	if len(b.incs) > b.peak {
		b.peak = len(b.incs)
	}
}

// Truncate drops every entry from index n upward and rolls the running
// Wiener value back accordingly.
func (b *Buffer) Truncate(n int) {
	for i := len(b.incs) - 1; i >= n; i-- {
		for j := range b.w {
			b.w[j] -= b.incs[i][j]
		}
	}
	b.times = b.times[:n]
	b.incs = b.incs[:n]
}

func (b *Buffer) Len() int { return len(b.incs) }

// Peak reports the high-water mark of recorded increments, a diagnostic
// for memory use across a run.
func (b *Buffer) Peak() int { return b.peak }

// W returns a copy of the current Wiener value, the cumulative sum of all
// recorded increments.
func (b *Buffer) W() sde.State { return b.w.Clone() }

// At returns the i-th recorded increment and its end time.
func (b *Buffer) At(i int) (float64, sde.State) {
	return b.times[i], b.incs[i]
}

// Path reconstructs the Wiener value after each recorded increment.
func (b *Buffer) Path() []sde.State {
	path := make([]sde.State, len(b.incs))
	acc := make(sde.State, len(b.w))
	for i, inc := range b.incs {
		for j := range acc {
			acc[j] += inc[j]
		}
		path[i] = acc.Clone()
	}
	return path
}
