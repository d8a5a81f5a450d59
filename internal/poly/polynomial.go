package poly

import (
	"slices"
	"sort"
	"strings"

	"github.com/san-kum/polysim/internal/ring"
	"github.com/warpfork/go-errcat"
)

// Polynomial is an immutable sum of terms in canonical form. The zero value
// is not usable; build polynomials with Var, Constant, Zero, One or Monomial.
type Polynomial[T any] struct {
	r     ring.Ring[T]
	terms []term[T]
	vars  []string
	str   string
}

// build canonicalizes terms: like terms are summed, zero terms dropped and
// the rest ordered by descending exponent tuples over the sorted variables.
func build[T any](r ring.Ring[T], terms []term[T]) Polynomial[T] {
	order := make([]string, 0, len(terms))
	buckets := make(map[string][]term[T], len(terms))
	for _, t := range terms {
		if _, ok := buckets[t.sig]; !ok {
			order = append(order, t.sig)
		}
		buckets[t.sig] = append(buckets[t.sig], t)
	}

	simplified := make([]term[T], 0, len(order))
	for _, sig := range order {
		bucket := buckets[sig]
		combined := bucket[0]
		for _, t := range bucket[1:] {
			combined = addLikeTerms(r, combined, t)
		}
		if ring.IsZero(r, combined.coeff) {
			continue
		}
		simplified = append(simplified, combined)
	}

	seen := make(map[string]struct{})
	var vars []string
	for _, t := range simplified {
		for _, f := range t.factors {
			if _, ok := seen[f.name]; !ok {
				seen[f.name] = struct{}{}
				vars = append(vars, f.name)
			}
		}
	}
	sort.Strings(vars)

	keys := make(map[string][]int, len(simplified))
	for _, t := range simplified {
		keys[t.sig] = t.sortKey(vars)
	}
	sort.SliceStable(simplified, func(i, j int) bool {
		return slices.Compare(keys[simplified[i].sig], keys[simplified[j].sig]) > 0
	})

	p := Polynomial[T]{r: r, terms: simplified, vars: vars}
	p.str = p.format()
	return p
}

func (p Polynomial[T]) format() string {
	if len(p.terms) == 0 {
		return p.r.Format(p.r.Zero())
	}
	parts := make([]string, len(p.terms))
	for i, t := range p.terms {
		parts[i] = t.format(p.r)
	}
	return strings.Join(parts, "+")
}

// Var returns the polynomial consisting of the single variable name.
func Var[T any](r ring.Ring[T], name string) (Polynomial[T], error) {
	vp, err := NewVarPower(name, 1)
	if err != nil {
		return Polynomial[T]{}, err
	}
	return build(r, []term[T]{makeTerm(r.One(), []VarPower{vp})}), nil
}

// MustVar is like Var but panics on error.
func MustVar[T any](r ring.Ring[T], name string) Polynomial[T] {
	p, err := Var(r, name)
	if err != nil {
		panic(err)
	}
	return p
}

// Constant returns the constant polynomial c.
func Constant[T any](r ring.Ring[T], c T) (Polynomial[T], error) {
	t, err := newTerm(r, c, nil)
	if err != nil {
		return Polynomial[T]{}, err
	}
	return build(r, []term[T]{t}), nil
}

// MustConstant is like Constant but panics on error.
func MustConstant[T any](r ring.Ring[T], c T) Polynomial[T] {
	p, err := Constant(r, c)
	if err != nil {
		panic(err)
	}
	return p
}

// Zero is the additive identity. It has no terms.
func Zero[T any](r ring.Ring[T]) Polynomial[T] { return build[T](r, nil) }

// One is the multiplicative identity.
func One[T any](r ring.Ring[T]) Polynomial[T] {
	return build(r, []term[T]{constantTerm(r.One())})
}

// Monomial returns c times the product of factors. Factors may come in any
// order but each variable may appear only once.
func Monomial[T any](r ring.Ring[T], c T, factors ...VarPower) (Polynomial[T], error) {
	sorted := slices.Clone(factors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	t, err := newTerm(r, c, sorted)
	if err != nil {
		return Polynomial[T]{}, err
	}
	return build(r, []term[T]{t}), nil
}

// Sum adds ps in a single canonicalization pass.
func Sum[T any](r ring.Ring[T], ps ...Polynomial[T]) Polynomial[T] {
	var terms []term[T]
	for _, p := range ps {
		mustSameRing(r, p.r)
		terms = append(terms, p.terms...)
	}
	return build(r, terms)
}

func sameRing[T any](a, b ring.Ring[T]) error {
	if a == nil || b == nil {
		return errcat.Errorf(ErrMisuse, "poly: polynomial was not built with a constructor")
	}
	if a.Name() != b.Name() {
		return errcat.Errorf(ErrMisuse, "poly: cannot combine polynomials over %s and %s", a.Name(), b.Name())
	}
	return nil
}

func mustSameRing[T any](a, b ring.Ring[T]) {
	if err := sameRing(a, b); err != nil {
		panic(err)
	}
}

func mustCheck[T any](r ring.Ring[T], c T) {
	if err := r.Check(c); err != nil {
		panic(err)
	}
}

// Ring returns the coefficient ring of p.
func (p Polynomial[T]) Ring() ring.Ring[T] { return p.r }

// NumTerms is the number of terms in canonical form.
func (p Polynomial[T]) NumTerms() int { return len(p.terms) }

func (p Polynomial[T]) IsZero() bool { return len(p.terms) == 0 }

func (p Polynomial[T]) IsOne() bool {
	return len(p.terms) == 1 && p.terms[0].isIdentity(p.r)
}

// Variables returns the sorted variable names of p.
func (p Polynomial[T]) Variables() []string { return slices.Clone(p.vars) }

// HasVariable reports whether name occurs in p.
func (p Polynomial[T]) HasVariable(name string) bool {
	_, found := slices.BinarySearch(p.vars, name)
	return found
}

func (p Polynomial[T]) String() string { return p.str }

// Equal compares canonical forms. Polynomials over different variable names
// are never equal, even when they compute the same function.
func (p Polynomial[T]) Equal(q Polynomial[T]) bool { return p.str == q.str }

func (p Polynomial[T]) Add(q Polynomial[T]) Polynomial[T] {
	mustSameRing(p.r, q.r)
	terms := make([]term[T], 0, len(p.terms)+len(q.terms))
	terms = append(terms, p.terms...)
	terms = append(terms, q.terms...)
	return build(p.r, terms)
}

func (p Polynomial[T]) AddScalar(c T) Polynomial[T] {
	mustCheck(p.r, c)
	if ring.IsZero(p.r, c) {
		return p
	}
	terms := make([]term[T], 0, len(p.terms)+1)
	terms = append(terms, p.terms...)
	terms = append(terms, constantTerm(p.r.Clone(c)))
	return build(p.r, terms)
}

func (p Polynomial[T]) Neg() Polynomial[T] {
	terms := make([]term[T], len(p.terms))
	for i, t := range p.terms {
		terms[i] = negTerm(p.r, t)
	}
	return build(p.r, terms)
}

func (p Polynomial[T]) Sub(q Polynomial[T]) Polynomial[T] {
	mustSameRing(p.r, q.r)
	return p.Add(q.Neg())
}

func (p Polynomial[T]) SubScalar(c T) Polynomial[T] {
	mustCheck(p.r, c)
	return p.AddScalar(p.r.Negate(c))
}

func (p Polynomial[T]) Mul(q Polynomial[T]) Polynomial[T] {
	mustSameRing(p.r, q.r)
	terms := make([]term[T], 0, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			terms = append(terms, mulTerms(p.r, a, b))
		}
	}
	return build(p.r, terms)
}

func (p Polynomial[T]) MulScalar(c T) Polynomial[T] {
	mustCheck(p.r, c)
	switch {
	case ring.IsZero(p.r, c):
		return Zero(p.r)
	case ring.IsOne(p.r, c):
		return p
	}
	terms := make([]term[T], len(p.terms))
	for i, t := range p.terms {
		terms[i] = scaleTerm(p.r, t, c)
	}
	return build(p.r, terms)
}

// Pow raises p to a non-negative power by repeated squaring.
func (p Polynomial[T]) Pow(n int) (Polynomial[T], error) {
	switch {
	case n < 0:
		return Polynomial[T]{}, errcat.Errorf(ErrDomain, "poly: negative exponent %d", n)
	case n == 0:
		return One(p.r), nil
	case n == 1:
		return p, nil
	}
	if len(p.terms) == 1 {
		return build(p.r, []term[T]{raiseTerm(p.r, p.terms[0], n)}), nil
	}

	result := One(p.r)
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result, nil
}

// MustPow is like Pow but panics on error.
func (p Polynomial[T]) MustPow(n int) Polynomial[T] {
	q, err := p.Pow(n)
	if err != nil {
		panic(err)
	}
	return q
}
