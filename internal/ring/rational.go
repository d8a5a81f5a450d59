package ring

import (
	"math/big"

	"github.com/warpfork/go-errcat"
)

// Rationals is the field Q of exact fractions.
type Rationals struct{}

var _ Ring[*big.Rat] = Rationals{}

func (Rationals) Name() string               { return "Q" }
func (Rationals) Zero() *big.Rat             { return new(big.Rat) }
func (Rationals) One() *big.Rat              { return big.NewRat(1, 1) }
func (Rationals) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (Rationals) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (Rationals) Negate(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }
func (Rationals) Equal(a, b *big.Rat) bool   { return a.Cmp(b) == 0 }

// Format prints integers without a denominator and everything else as p/q.
func (Rationals) Format(v *big.Rat) string { return v.RatString() }

func (Rationals) Clone(v *big.Rat) *big.Rat { return new(big.Rat).Set(v) }

func (Rationals) Power(base *big.Rat, exp uint) *big.Rat {
	e := new(big.Int).SetUint64(uint64(exp))
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Denom(), e, nil)
	return new(big.Rat).SetFrac(num, den)
}

func (Rationals) Check(v *big.Rat) error {
	if v == nil {
		return errcat.Errorf(ErrType, "ring Q: nil rational")
	}
	return nil
}
