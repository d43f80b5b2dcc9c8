package sde

import "errors"

// Domain errors for integration runs.
var (
	// ErrBadTimeSpan indicates a malformed time span (wrong length or
	// non-increasing endpoints). Reported before any stepping.
	ErrBadTimeSpan = errors.New("sde: time span must be [t0, T] with T > t0")

	// ErrNonFiniteState indicates a step produced NaN or Inf.
	ErrNonFiniteState = errors.New("sde: non-finite state (NaN or Inf detected)")

	// ErrStepSizeCollapse indicates rejections drove dt below dtmin.
	ErrStepSizeCollapse = errors.New("sde: step size collapsed below dtmin")

	// ErrMaxIters indicates the accepted-step budget was exhausted before
	// reaching the final time.
	ErrMaxIters = errors.New("sde: max iterations reached before final time")

	// ErrUnsupportedScheme indicates the requested algorithm has no kernel
	// for the problem's noise structure. Reported at configuration time.
	ErrUnsupportedScheme = errors.New("sde: unsupported algorithm for this noise structure")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("sde: dimension mismatch between state and system")
)
