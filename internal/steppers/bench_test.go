package steppers

import (
	"testing"

	"github.com/san-kum/stosim/internal/sde"
)

func benchIncrements(n int) Increments {
	dW := make(sde.State, n)
	dZ := make(sde.State, n)
	for i := range dW {
		dW[i] = 0.01
		dZ[i] = -0.005
	}
	return Increments{DW: dW, DZ: dZ}
}

func BenchmarkEulerMaruyama(b *testing.B) {
	sys := &geometricSDE{a: 0.5, b: 0.2, dim: 4}
	k := NewEulerMaruyama()
	u := sde.State{1, 1, 1, 1}
	inc := benchIncrements(4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u = k.Step(sys, u, 0, 0.001, inc)
	}
}

func BenchmarkMilstein(b *testing.B) {
	sys := &geometricSDE{a: 0.5, b: 0.2, dim: 4}
	k := NewMilstein()
	u := sde.State{1, 1, 1, 1}
	inc := benchIncrements(4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u = k.Step(sys, u, 0, 0.001, inc)
	}
}

func BenchmarkSRI(b *testing.B) {
	sys := &geometricSDE{a: 0.5, b: 0.2, dim: 4}
	k := NewSRI(SRIW1(), 1.0/6.0)
	u := sde.State{1, 1, 1, 1}
	inc := benchIncrements(4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u = k.Step(sys, u, 0, 0.001, inc)
	}
}

func BenchmarkSRIVec(b *testing.B) {
	sys := &geometricSDE{a: 0.5, b: 0.2, dim: 4}
	k := NewSRIVec(SRIW1(), 1.0/6.0)
	u := sde.State{1, 1, 1, 1}
	inc := benchIncrements(4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u = k.Step(sys, u, 0, 0.001, inc)
	}
}

func BenchmarkSRAVec(b *testing.B) {
	sys := &additiveSDE{a: -0.5, b: 0.2}
	k := NewSRAVec(SRA1(), 1.0/6.0)
	u := sde.State{1}
	inc := benchIncrements(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u = k.Step(sys, u, 0, 0.001, inc)
	}
}

func BenchmarkTauLeap(b *testing.B) {
	sys := &birthDeath{kb: 5, kd: 0.1}
	k := NewTauLeap(1)
	u := sde.State{50}
	inc := Increments{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u = k.Step(sys, u, 0, 0.001, inc)
	}
}
