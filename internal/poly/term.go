package poly

import (
	"strings"

	"github.com/san-kum/polysim/internal/ring"
	"github.com/warpfork/go-errcat"
)

// term is coeff * f1 * f2 * ... with factors strictly sorted by name.
type term[T any] struct {
	coeff   T
	factors []VarPower
	sig     string
	powers  map[string]int
}

// newTerm validates caller-supplied input and copies the coefficient so
// later changes to the caller's value cannot reach the term.
func newTerm[T any](r ring.Ring[T], coeff T, factors []VarPower) (term[T], error) {
	if err := r.Check(coeff); err != nil {
		return term[T]{}, err
	}
	for i, f := range factors {
		if f.exp < 1 || f.name == "" {
			return term[T]{}, errcat.Errorf(ErrDomain, "poly: invalid factor %v", f)
		}
		if i > 0 && factors[i-1].name >= f.name {
			return term[T]{}, errcat.Errorf(ErrDomain, "poly: factors must be sorted by name without duplicates, got %s before %s", factors[i-1].name, f.name)
		}
	}
	return makeTerm(r.Clone(coeff), factors), nil
}

// makeTerm trusts its input.
func makeTerm[T any](coeff T, factors []VarPower) term[T] {
	parts := make([]string, len(factors))
	powers := make(map[string]int, len(factors))
	for i, f := range factors {
		parts[i] = f.String()
		powers[f.name] = f.exp
	}
	return term[T]{
		coeff:   coeff,
		factors: factors,
		sig:     strings.Join(parts, "*"),
		powers:  powers,
	}
}

func constantTerm[T any](c T) term[T] { return makeTerm[T](c, nil) }

func (t term[T]) isIdentity(r ring.Ring[T]) bool {
	return len(t.factors) == 0 && ring.IsOne(r, t.coeff)
}

func addTerms[T any](r ring.Ring[T], a, b term[T]) (term[T], error) {
	if a.sig != b.sig {
		return term[T]{}, errcat.Errorf(ErrMisuse, "poly: cannot add unlike terms %q and %q", a.sig, b.sig)
	}
	return addLikeTerms(r, a, b), nil
}

// addLikeTerms sums two terms already known to share a signature.
func addLikeTerms[T any](r ring.Ring[T], a, b term[T]) term[T] {
	return makeTerm(r.Add(a.coeff, b.coeff), a.factors)
}

func scaleTerm[T any](r ring.Ring[T], t term[T], c T) term[T] {
	switch {
	case ring.IsZero(r, c):
		return constantTerm(r.Zero())
	case ring.IsOne(r, c):
		return t
	}
	return makeTerm(r.Mul(t.coeff, c), t.factors)
}

func mulTerms[T any](r ring.Ring[T], a, b term[T]) term[T] {
	switch {
	case ring.IsZero(r, a.coeff) || ring.IsZero(r, b.coeff):
		return constantTerm(r.Zero())
	case a.isIdentity(r):
		return b
	case b.isIdentity(r):
		return a
	}

	merged := make([]VarPower, 0, len(a.factors)+len(b.factors))
	i, j := 0, 0
	for i < len(a.factors) && j < len(b.factors) {
		fa, fb := a.factors[i], b.factors[j]
		switch {
		case fa.name < fb.name:
			merged = append(merged, fa)
			i++
		case fa.name > fb.name:
			merged = append(merged, fb)
			j++
		default:
			merged = append(merged, VarPower{name: fa.name, exp: fa.exp + fb.exp})
			i++
			j++
		}
	}
	merged = append(merged, a.factors[i:]...)
	merged = append(merged, b.factors[j:]...)

	return makeTerm(r.Mul(a.coeff, b.coeff), merged)
}

func raiseTerm[T any](r ring.Ring[T], t term[T], n int) term[T] {
	switch n {
	case 0:
		return constantTerm(r.One())
	case 1:
		return t
	}
	factors := make([]VarPower, len(t.factors))
	for i, f := range t.factors {
		factors[i] = f.Raise(n)
	}
	return makeTerm(r.Power(t.coeff, uint(n)), factors)
}

func negTerm[T any](r ring.Ring[T], t term[T]) term[T] {
	return makeTerm(r.Negate(t.coeff), t.factors)
}

// applyTerm folds assigned variables into the coefficient. Unknown keys are
// ignored.
func applyTerm[T any](r ring.Ring[T], t term[T], assign map[string]T) term[T] {
	coeff := t.coeff
	var rest []VarPower
	matched := false
	for _, f := range t.factors {
		v, ok := assign[f.name]
		if !ok {
			rest = append(rest, f)
			continue
		}
		matched = true
		coeff = r.Mul(coeff, evaluate(r, f, v))
	}
	if !matched {
		return t
	}
	return makeTerm(coeff, rest)
}

func evalTerm[T any](r ring.Ring[T], t term[T], assign map[string]T) (T, error) {
	product := r.One()
	for _, f := range t.factors {
		v, ok := assign[f.name]
		if !ok {
			var zero T
			return zero, errcat.Errorf(ErrIncomplete, "poly: no value for variable %s", f.name)
		}
		product = r.Mul(product, evaluate(r, f, v))
	}
	return r.Mul(product, t.coeff), nil
}

// factorizeOn splits t into (t without name, exponent of name).
func factorizeOn[T any](t term[T], name string) (term[T], int) {
	exp, ok := t.powers[name]
	if !ok {
		return t, 0
	}
	rest := make([]VarPower, 0, len(t.factors)-1)
	for _, f := range t.factors {
		if f.name != name {
			rest = append(rest, f)
		}
	}
	return makeTerm(t.coeff, rest), exp
}

// sortKey lists the exponent of each name in order, 0 when absent.
func (t term[T]) sortKey(names []string) []int {
	key := make([]int, len(names))
	for i, n := range names {
		key[i] = t.powers[n]
	}
	return key
}

func (t term[T]) format(r ring.Ring[T]) string {
	c := r.Format(t.coeff)
	if strings.HasPrefix(c, "-") {
		c = "(" + c + ")"
	}
	switch {
	case len(t.factors) == 0:
		return c
	case ring.IsOne(r, t.coeff):
		return t.sig
	}
	return c + "*" + t.sig
}
