package poly

import (
	"sort"
	"strings"

	"github.com/san-kum/polysim/internal/ring"
	"github.com/warpfork/go-errcat"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply substitutes concrete values for some of p's variables and returns
// the polynomial over the remaining ones. Every key must name a variable of p.
func (p Polynomial[T]) Apply(assign map[string]T) (Polynomial[T], error) {
	if len(assign) == 0 {
		return p, nil
	}
	for _, name := range sortedKeys(assign) {
		if !p.HasVariable(name) {
			return Polynomial[T]{}, errcat.Errorf(ErrIncomplete, "poly: %s is not a variable of %s", name, p)
		}
		if err := p.r.Check(assign[name]); err != nil {
			return Polynomial[T]{}, err
		}
	}

	terms := make([]term[T], len(p.terms))
	for i, t := range p.terms {
		terms[i] = applyTerm(p.r, t, assign)
	}
	return build(p.r, terms), nil
}

// ApplyValues is Apply for loosely typed bindings, such as values decoded
// from a config file. Polynomial values are rejected; use Substitute for them.
func (p Polynomial[T]) ApplyValues(assign map[string]any) (Polynomial[T], error) {
	typed := make(map[string]T, len(assign))
	for _, name := range sortedKeys(assign) {
		switch v := assign[name].(type) {
		case T:
			typed[name] = v
		case Polynomial[T], *Polynomial[T]:
			return Polynomial[T]{}, errcat.Errorf(ErrMisuse, "poly: value for %s is a polynomial; use Substitute instead of Apply", name)
		default:
			return Polynomial[T]{}, errcat.Errorf(ErrType, "poly: value for %s has type %T, want a %s value", name, v, p.r.Name())
		}
	}
	return p.Apply(typed)
}

// Eval computes p with every variable bound. Extra bindings are ignored.
func (p Polynomial[T]) Eval(assign map[string]T) (T, error) {
	var zero T
	var missing []string
	for _, name := range p.vars {
		v, ok := assign[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if err := p.r.Check(v); err != nil {
			return zero, err
		}
	}
	if len(missing) > 0 {
		return zero, errcat.Errorf(ErrIncomplete, "poly: no value for %s; use Apply for a partial assignment", strings.Join(missing, ", "))
	}

	sum := p.r.Zero()
	for _, t := range p.terms {
		v, err := evalTerm(p.r, t, assign)
		if err != nil {
			return zero, err
		}
		sum = p.r.Add(sum, v)
	}
	return sum, nil
}

// Substitute replaces every occurrence of name with q.
func (p Polynomial[T]) Substitute(name string, q Polynomial[T]) (Polynomial[T], error) {
	if err := sameRing(p.r, q.r); err != nil {
		return Polynomial[T]{}, err
	}
	if !p.HasVariable(name) {
		return Polynomial[T]{}, errcat.Errorf(ErrIncomplete, "poly: %s is not a variable of %s", name, p)
	}

	powers := map[int]Polynomial[T]{1: q}
	power := func(n int) Polynomial[T] {
		if qn, ok := powers[n]; ok {
			return qn
		}
		qn := q.MustPow(n)
		powers[n] = qn
		return qn
	}

	var terms []term[T]
	for _, t := range p.terms {
		rest, exp := factorizeOn(t, name)
		if exp == 0 {
			terms = append(terms, rest)
			continue
		}
		contribution := build(p.r, []term[T]{rest}).Mul(power(exp))
		terms = append(terms, contribution.terms...)
	}
	return build(p.r, terms), nil
}

// TransformCoefficients maps every coefficient through f within p's ring.
// Only literal coefficients change; the ring used for evaluation does not.
func (p Polynomial[T]) TransformCoefficients(f func(T) T) (Polynomial[T], error) {
	return Project(p, p.r, f)
}

// Project maps p's coefficients through f into the ring target. The result
// evaluates with target's arithmetic, e.g. projecting an integer polynomial
// into Z/m with m.Reduce gives a polynomial q with q(x mod m) = p(x) mod m.
// f receives copies, so it may modify its argument.
func Project[S, T any](p Polynomial[S], target ring.Ring[T], f func(S) T) (Polynomial[T], error) {
	terms := make([]term[T], 0, len(p.terms))
	for _, t := range p.terms {
		nt, err := newTerm(target, f(p.r.Clone(t.coeff)), t.factors)
		if err != nil {
			return Polynomial[T]{}, err
		}
		terms = append(terms, nt)
	}
	return build(target, terms), nil
}

// Degree is the largest exponent of name in p, 0 if absent.
func (p Polynomial[T]) Degree(name string) int {
	d := 0
	for _, t := range p.terms {
		d = max(d, t.powers[name])
	}
	return d
}

// DenseVector returns the coefficients of a polynomial in at most one
// variable, indexed by ascending exponent up to the degree. Missing degrees
// are filled with zero. The coefficients are copies.
func (p Polynomial[T]) DenseVector() ([]T, error) {
	if len(p.vars) > 1 {
		return nil, errcat.Errorf(ErrMisuse, "poly: dense vector needs a single-variable polynomial, %s has variables %s", p, strings.Join(p.vars, ", "))
	}
	degree := 0
	if len(p.vars) == 1 {
		degree = p.Degree(p.vars[0])
	}

	vec := make([]T, degree+1)
	for i := range vec {
		vec[i] = p.r.Zero()
	}
	for _, t := range p.terms {
		exp := 0
		if len(t.factors) == 1 {
			exp = t.factors[0].exp
		}
		vec[exp] = p.r.Clone(t.coeff)
	}
	return vec, nil
}
