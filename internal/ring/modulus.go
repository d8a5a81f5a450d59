package ring

import (
	"fmt"
	"math/big"

	"github.com/warpfork/go-errcat"
)

// Modulus is the ring Z/mZ. Values are residues in [0, m).
type Modulus struct {
	m *big.Int
}

var _ Ring[*big.Int] = (*Modulus)(nil)

// NewModulus returns the ring of integers modulo m.
func NewModulus(m int64) (*Modulus, error) {
	if m <= 0 {
		return nil, errcat.Errorf(ErrDomain, "ring: modulus must be positive, got %d", m)
	}
	return &Modulus{m: big.NewInt(m)}, nil
}

// MustModulus is like NewModulus but panics on error.
func MustModulus(m int64) *Modulus {
	r, err := NewModulus(m)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Modulus) Name() string { return fmt.Sprintf("Z/%s", r.m) }

// M returns a copy of the modulus.
func (r *Modulus) M() *big.Int { return new(big.Int).Set(r.m) }

// Zero is 0 mod m. For m == 1 it is also One.
func (r *Modulus) Zero() *big.Int { return new(big.Int) }

func (r *Modulus) One() *big.Int { return r.Reduce(big.NewInt(1)) }

func (r *Modulus) Add(a, b *big.Int) *big.Int {
	s := new(big.Int).Add(a, b)
	return s.Mod(s, r.m)
}

func (r *Modulus) Mul(a, b *big.Int) *big.Int {
	p := new(big.Int).Mul(a, b)
	return p.Mod(p, r.m)
}

// Negate returns m - a, except that the negation of 0 is 0 rather than m.
func (r *Modulus) Negate(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(r.m, a)
}

func (r *Modulus) Power(base *big.Int, exp uint) *big.Int {
	p := new(big.Int).Exp(base, new(big.Int).SetUint64(uint64(exp)), r.m)
	return p.Mod(p, r.m)
}

func (r *Modulus) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }

func (r *Modulus) Format(v *big.Int) string { return v.String() }

func (r *Modulus) Clone(v *big.Int) *big.Int { return new(big.Int).Set(v) }

func (r *Modulus) Check(v *big.Int) error {
	if v == nil {
		return errcat.Errorf(ErrType, "ring %s: nil residue", r.Name())
	}
	if v.Sign() < 0 || v.Cmp(r.m) >= 0 {
		return errcat.Errorf(ErrDomain, "ring %s: %s is not in [0, %s)", r.Name(), v, r.m)
	}
	return nil
}

// Reduce maps any integer onto its residue in [0, m).
func (r *Modulus) Reduce(n *big.Int) *big.Int {
	return new(big.Int).Mod(n, r.m)
}
