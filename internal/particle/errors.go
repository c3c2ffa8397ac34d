package particle

import "errors"

// Structural precondition failures. These indicate caller programming
// errors, not recoverable runtime conditions; silent recovery would
// corrupt momentum and energy conservation.
var (
	// ErrSizeMismatch indicates per-particle arrays of inconsistent length.
	ErrSizeMismatch = errors.New("particle: array size mismatch")

	// ErrVirialPitch indicates a virial buffer pitch too small for its particle count.
	ErrVirialPitch = errors.New("particle: virial pitch smaller than particle count")
)
