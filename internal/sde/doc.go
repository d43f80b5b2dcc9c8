// Package sde provides core primitives for stochastic differential
// equation simulation.
//
// The package defines the fundamental interfaces and types for numerical
// integration of SDEs of the form du = f(t,u)dt + g(t,u)dW:
//
//   - [State]: vector representing system state
//   - [System]: interface for SDE systems (drift f and diffusion g)
//   - [JumpSystem]: interface for jump processes advanced by tau-leaping
//   - [NoiseKind]: structure of the driving noise (additive, diagonal, scalar)
//
// # Example
//
//	sys := models.NewGeometricBrownian(1.0, 0.5)
//	sol, _ := solve.Solve(sys, u0, [2]float64{0, 1}, solve.DefaultOptions())
//
// # Thread Safety
//
// A single integration run is strictly single-threaded. For repeated runs
// across goroutines, give each run its own state, noise source, and
// options; see solve.Ensemble.
package sde
