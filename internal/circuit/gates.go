package circuit

import (
	"github.com/san-kum/polysim/internal/poly"
	"github.com/san-kum/polysim/internal/ring"
)

// Gate combinators encode boolean functions as polynomials. On inputs that
// evaluate to 0 or 1 every gate evaluates to 0 or 1 in any nonzero ring.

func Not[T any](x poly.Polynomial[T]) poly.Polynomial[T] {
	return poly.One(x.Ring()).Sub(x)
}

func And[T any](x, y poly.Polynomial[T]) poly.Polynomial[T] {
	return x.Mul(y)
}

func Or[T any](x, y poly.Polynomial[T]) poly.Polynomial[T] {
	return x.Add(y).Sub(x.Mul(y))
}

func Or3[T any](x, y, z poly.Polynomial[T]) poly.Polynomial[T] {
	return Or(Or(x, y), z)
}

// Xor is x + y - 2xy.
func Xor[T any](x, y poly.Polynomial[T]) poly.Polynomial[T] {
	xy := x.Mul(y)
	return x.Add(y).Sub(xy).Sub(xy)
}

// AndAll folds And over xs; the empty conjunction is 1.
func AndAll[T any](r ring.Ring[T], xs ...poly.Polynomial[T]) poly.Polynomial[T] {
	acc := poly.One(r)
	for _, x := range xs {
		acc = And(acc, x)
	}
	return acc
}

// OrAll folds Or over xs; the empty disjunction is 0.
func OrAll[T any](r ring.Ring[T], xs ...poly.Polynomial[T]) poly.Polynomial[T] {
	acc := poly.Zero(r)
	for _, x := range xs {
		acc = Or(acc, x)
	}
	return acc
}
