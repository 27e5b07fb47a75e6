package debris

import "errors"

// Domain errors for particle construction and kind parsing.
var (
	// ErrNonPositiveSize indicates a particle constructed with size <= 0,
	// which would make the derived mass zero or negative.
	ErrNonPositiveSize = errors.New("debris: particle size must be positive")

	// ErrUnknownMaterial indicates a material name that is not one of the
	// closed set of kinds.
	ErrUnknownMaterial = errors.New("debris: unknown material kind")
)
