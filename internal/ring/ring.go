package ring

import (
	"math/big"
)

// Ring is a commutative ring over values of type T.
//
// Add and Mul are commutative and associative, Zero is the additive identity,
// One the multiplicative identity, and Mul distributes over Add. Power(x, 0)
// is One for every x, Zero included.
type Ring[T any] interface {
	Name() string
	Zero() T
	One() T
	Add(a, b T) T
	Mul(a, b T) T
	Negate(a T) T
	Power(base T, exp uint) T
	Equal(a, b T) bool
	// Check reports whether v may enter this ring.
	Check(v T) error
	Format(v T) string
	// Clone returns a copy of v that shares no memory with it.
	Clone(v T) T
}

// Int is shorthand for big.NewInt.
func Int(n int64) *big.Int { return big.NewInt(n) }

// Rat returns the fraction a/b. It panics when b is zero, like big.NewRat.
func Rat(a, b int64) *big.Rat { return big.NewRat(a, b) }

// IsZero reports whether v is the additive identity of r.
func IsZero[T any](r Ring[T], v T) bool { return r.Equal(v, r.Zero()) }

// IsOne reports whether v is the multiplicative identity of r.
func IsOne[T any](r Ring[T], v T) bool { return r.Equal(v, r.One()) }

// Sub returns a - b.
func Sub[T any](r Ring[T], a, b T) T { return r.Add(a, r.Negate(b)) }

// Sum folds Add over vs, starting at Zero.
func Sum[T any](r Ring[T], vs ...T) T {
	acc := r.Zero()
	for _, v := range vs {
		acc = r.Add(acc, v)
	}
	return acc
}
