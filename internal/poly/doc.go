// Package poly implements immutable multivariate polynomials over a
// pluggable commutative ring.
//
// A [Polynomial] is always kept in canonical form: like terms are combined,
// zero terms are dropped and the remaining terms are ordered by their
// exponent tuples over the alphabetically sorted variable names. Two
// polynomials are equal exactly when their canonical strings are equal.
//
// # Example
//
//	r := ring.Integers{}
//	x := poly.MustVar[*big.Int](r, "x")
//	p := x.AddScalar(ring.Int(1)).Mul(x.SubScalar(ring.Int(1)))
//	fmt.Println(p) // (x**2)+(-1)
//
// # Rings
//
// Every polynomial carries the ring it was built over. Combining polynomials
// from different rings is a programming error and panics, the way math/big
// panics on division by zero. Use [Project] to move a polynomial into another
// ring.
//
// # Thread Safety
//
// Polynomials are immutable values and may be shared between goroutines
// without locking.
package poly
