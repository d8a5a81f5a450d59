package poly

import "github.com/san-kum/polysim/internal/ring"

// Error categories, shared with package ring.
const (
	ErrType       = ring.ErrType
	ErrDomain     = ring.ErrDomain
	ErrMisuse     = ring.ErrMisuse
	ErrIncomplete = ring.ErrIncomplete
)
