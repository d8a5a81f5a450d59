package poly

import (
	"fmt"
	"strings"

	"github.com/san-kum/polysim/internal/ring"
	"github.com/warpfork/go-errcat"
)

// reservedChars collide with the canonical string grammar.
const reservedChars = ",*+/-() \t\n"

// VarPower is a single factor name**exp with exp >= 1.
type VarPower struct {
	name string
	exp  int
}

// NewVarPower validates name and exponent.
func NewVarPower(name string, exp int) (VarPower, error) {
	if name == "" {
		return VarPower{}, errcat.Errorf(ErrDomain, "poly: empty variable name")
	}
	if strings.ContainsAny(name, reservedChars) {
		return VarPower{}, errcat.Errorf(ErrDomain, "poly: variable name %q contains one of %q", name, strings.TrimSpace(reservedChars))
	}
	if exp < 1 {
		return VarPower{}, errcat.Errorf(ErrDomain, "poly: exponent of %s must be positive, got %d", name, exp)
	}
	return VarPower{name: name, exp: exp}, nil
}

func (v VarPower) Name() string { return v.name }
func (v VarPower) Exp() int     { return v.exp }

// Raise multiplies the exponent by k. It panics with a domain error when
// k < 1.
func (v VarPower) Raise(k int) VarPower {
	switch {
	case k < 1:
		panic(errcat.Errorf(ErrDomain, "poly: cannot raise %s to %d", v, k))
	case k == 1:
		return v
	}
	return VarPower{name: v.name, exp: v.exp * k}
}

func (v VarPower) String() string {
	if v.exp == 1 {
		return v.name
	}
	return fmt.Sprintf("(%s**%d)", v.name, v.exp)
}

// evaluate computes x**exp in r.
func evaluate[T any](r ring.Ring[T], v VarPower, x T) T {
	return r.Power(x, uint(v.exp))
}
