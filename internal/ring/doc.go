// Package ring defines the commutative rings that polynomial coefficients
// live in.
//
// A [Ring] bundles a value type with its zero, one and the four operations
// the polynomial engine needs:
//
//   - [Integers]: unbounded integers (*big.Int)
//   - [Modulus]: integers modulo a fixed positive m (*big.Int in [0, m))
//   - [Rationals]: exact fractions (*big.Rat)
//
// Values handed to a ring are never mutated; every operation allocates its
// result, so values may be shared freely between goroutines.
//
// # Errors
//
// Failures carry an [ErrorCategory] readable with errcat.Category:
//
//	if errcat.Category(err) == ring.ErrDomain { ... }
package ring
