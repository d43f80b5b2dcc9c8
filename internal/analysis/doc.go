// Package analysis provides statistics over ensembles of sample paths.
//
// The package characterizes a solved ensemble rather than a single
// trajectory:
//
//   - [FinalMoments]: mean and standard deviation of the final state
//   - [MeanPath]: pointwise ensemble average of retained trajectories
//   - [StrongError]: root-mean-square pathwise error against the exact solution
//   - [WeakError]: error of the ensemble mean against the exact expectation
package analysis
