package ring

import (
	"math/big"

	"github.com/warpfork/go-errcat"
)

// Integers is the ring Z of unbounded integers.
type Integers struct{}

var _ Ring[*big.Int] = Integers{}

func (Integers) Name() string               { return "Z" }
func (Integers) Zero() *big.Int             { return new(big.Int) }
func (Integers) One() *big.Int              { return big.NewInt(1) }
func (Integers) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func (Integers) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }
func (Integers) Negate(a *big.Int) *big.Int { return new(big.Int).Neg(a) }
func (Integers) Equal(a, b *big.Int) bool   { return a.Cmp(b) == 0 }
func (Integers) Format(v *big.Int) string   { return v.String() }
func (Integers) Clone(v *big.Int) *big.Int  { return new(big.Int).Set(v) }

func (Integers) Power(base *big.Int, exp uint) *big.Int {
	return new(big.Int).Exp(base, new(big.Int).SetUint64(uint64(exp)), nil)
}

func (Integers) Check(v *big.Int) error {
	if v == nil {
		return errcat.Errorf(ErrType, "ring Z: nil integer")
	}
	return nil
}
