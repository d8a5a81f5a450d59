package poly

import (
	"math/big"
	"testing"

	"github.com/san-kum/polysim/internal/ring"
	"github.com/warpfork/go-errcat"
)

func TestCanonicalStrings(t *testing.T) {
	x, y, z, u := iv("x"), iv("y"), iv("z"), iv("u")

	tests := []struct {
		name string
		p    Polynomial[*big.Int]
		want string
	}{
		{"difference of squares", x.AddScalar(k(1)).Mul(x.SubScalar(k(1))), "(x**2)+(-1)"},
		{"product of binomials", x.AddScalar(k(2)).Mul(x.AddScalar(k(3))), "(x**2)+5*x+6"},
		{"cube", x.AddScalar(k(2)).MustPow(3), "(x**3)+6*(x**2)+12*x+8"},
		{"fourth power", x.MulScalar(k(3)).AddScalar(k(1)).MustPow(4), "81*(x**4)+108*(x**3)+54*(x**2)+12*x+1"},
		{"cancellation", x.Add(y).Add(z).Sub(y), "x+z"},
		{"two variables", x.Add(y).Mul(z.Add(y)), "x*y+x*z+(y**2)+y*z"},
		{"binomial", x.Add(y).MustPow(6), "(x**6)+6*(x**5)*y+15*(x**4)*(y**2)+20*(x**3)*(y**3)+15*(x**2)*(y**4)+6*x*(y**5)+(y**6)"},
		{"names sort alphabetically", iv("width").Mul(iv("height")), "height*width"},
		{"negation", x.Add(x).Neg(), "(-2)*x"},
		{"signed difference", x.Add(y).Mul(x.Sub(y)), "(x**2)+(-1)*(y**2)"},
		{"zero power", x.MustPow(0), "1"},
		{"first power", x.Add(y).MustPow(1), "x+y"},
		{"nested powers", x.MustPow(2).Add(y).MustPow(3), "(x**6)+3*(x**4)*y+3*(x**2)*(y**2)+(y**3)"},
		{"one minus x", ic(1).Sub(x), "(-1)*x+1"},
		{"x minus two", x.SubScalar(k(2)), "x+(-2)"},
		{"x minus x", x.Sub(x), "0"},
		{"x minus x plus y", x.Sub(x).Add(y), "y"},
		{"plus zero", x.AddScalar(k(0)), "x"},
		{"zero", Zero[*big.Int](zz), "0"},
		{"one", One[*big.Int](zz), "1"},
		{"zero minus x", Zero[*big.Int](zz).Sub(x), "(-1)*x"},
		{"sum", Sum[*big.Int](zz, y, x, z.MustPow(2)), "x+y+(z**2)"},
		{"empty sum", Sum[*big.Int](zz), "0"},
		{
			"mixed expansion",
			x.AddScalar(k(5)).Mul(y.SubScalar(k(2)).MustPow(3)).Add(x.MustPow(3)).Sub(y.MustPow(4)),
			"(x**3)+x*(y**3)+(-6)*x*(y**2)+12*x*y+(-8)*x+(-1)*(y**4)+5*(y**3)+(-30)*(y**2)+60*y+(-40)",
		},
		{
			"composition result",
			u.MulScalar(k(2)).AddScalar(k(7)).Mul(y.MulScalar(k(2)).AddScalar(k(1))).Mul(z),
			"4*u*y*z+2*u*z+14*y*z+7*z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanonicalizationIsOrderIndependent(t *testing.T) {
	terms := []term[*big.Int]{
		makeTerm(k(3), []VarPower{vp("y", 2)}),
		makeTerm(k(1), []VarPower{vp("x", 1)}),
		makeTerm(k(-3), []VarPower{vp("y", 2)}),
		constantTerm(k(4)),
		makeTerm(k(2), []VarPower{vp("x", 1)}),
		makeTerm(k(5), []VarPower{vp("x", 1), vp("y", 1)}),
	}
	reversed := make([]term[*big.Int], len(terms))
	for i, tm := range terms {
		reversed[len(terms)-1-i] = tm
	}

	a, b := build[*big.Int](zz, terms), build[*big.Int](zz, reversed)
	if a.String() != "5*x*y+3*x+4" {
		t.Errorf("got %q", a)
	}
	if a.String() != b.String() {
		t.Errorf("%q != %q", a, b)
	}
	if a.String() != build[*big.Int](zz, a.terms).String() {
		t.Error("rebuilding a canonical polynomial changed it")
	}
}

func TestEquality(t *testing.T) {
	x, y, z := iv("x"), iv("y"), iv("z")
	zero, one, two, three := ic(0), ic(1), ic(2), ic(3)

	if zero.Equal(one) || x.Equal(y) || !x.Equal(x) {
		t.Fatal("basic equality broken")
	}
	if !one.Equal(zero.AddScalar(k(1))) || !three.Equal(two.AddScalar(k(1))) {
		t.Error("constants should compare by value")
	}
	if !two.SubScalar(k(1)).Equal(one) {
		t.Error("2 - 1 != 1")
	}
	if x.AddScalar(k(3)).Equal(y.AddScalar(k(3))) {
		t.Error("x+3 and y+3 use different variables")
	}

	p := x.MulScalar(k(12)).Add(z.MustPow(4).MulScalar(k(39)))
	q := z.Add(y.MulScalar(k(111))).Add(x).SubScalar(k(2))

	equal := []struct {
		name string
		a, b Polynomial[*big.Int]
	}{
		{"0*p", p.MulScalar(k(0)), zero},
		{"1*p", p.MulScalar(k(1)), p},
		{"2p", p.MulScalar(k(2)), p.Add(p)},
		{"p-p", p.Sub(p), zero},
		{"2p-p-p", p.MulScalar(k(2)).Sub(p).Sub(p), zero},
		{"p*p", p.Mul(p), p.MustPow(2)},
		{"p+q", p.Add(q), q.Add(p)},
		{"p*q", p.Mul(q), q.Mul(p)},
		{"(p+3)^2", p.AddScalar(k(3)).MustPow(2), p.MustPow(2).Add(p.MulScalar(k(6))).AddScalar(k(9))},
		{"p*one", p.Mul(one), p},
		{"p+zero", p.Add(zero), p},
		{"p*zero", p.Mul(zero), zero},
	}
	for _, tt := range equal {
		if !tt.a.Equal(tt.b) {
			t.Errorf("%s: %q != %q", tt.name, tt.a, tt.b)
		}
	}

	unequal := []struct {
		name string
		a, b Polynomial[*big.Int]
	}{
		{"p vs q", p, q},
		{"p^2 vs q^2", p.MustPow(2), q.MustPow(2)},
		{"p vs p+1", p, p.AddScalar(k(1))},
		{"3p vs 2p", p.MulScalar(k(3)), p.MulScalar(k(2))},
		{"p^4 vs p^3", p.MustPow(4), p.MustPow(3)},
	}
	for _, tt := range unequal {
		if tt.a.Equal(tt.b) {
			t.Errorf("%s: both %q", tt.name, tt.a)
		}
	}
}

func TestIdentityPredicates(t *testing.T) {
	x := iv("x")
	if !Zero[*big.Int](zz).IsZero() || !One[*big.Int](zz).IsOne() {
		t.Fatal("identity constructors")
	}
	if Zero[*big.Int](zz).IsOne() || One[*big.Int](zz).IsZero() {
		t.Fatal("identities confused")
	}
	if !x.Sub(x).IsZero() {
		t.Error("x - x should be zero")
	}
	one, _ := x.Apply(ints("x", 1))
	if !one.IsOne() {
		t.Errorf("x at 1 = %q", one)
	}
	if p := x.Add(iv("y")); p.IsZero() || p.IsOne() {
		t.Error("x + y is neither zero nor one")
	}
}

func TestEval(t *testing.T) {
	x, y := iv("x"), iv("y")
	p := x.MulScalar(k(3)).AddScalar(k(1)).Mul(y.MustPow(2).MulScalar(k(4)).Add(y.MulScalar(k(3))).AddScalar(k(5)))

	tests := []struct {
		x, y int
		want int64
	}{
		{10, 10, 31 * 435},
		{1000, 10, 3001 * 435},
		{1000, 100, 3001 * 40305},
	}
	for _, tt := range tests {
		got, err := p.Eval(ints("x", tt.x, "y", tt.y))
		if err != nil {
			t.Fatal(err)
		}
		if got.Int64() != tt.want {
			t.Errorf("p(%d, %d) = %v, want %d", tt.x, tt.y, got, tt.want)
		}
	}

	area := iv("width").Mul(iv("height"))
	if got, _ := area.Eval(ints("width", 10, "height", 5)); got.Int64() != 50 {
		t.Errorf("area = %v", got)
	}

	wide := x.AddScalar(k(5)).Mul(y.SubScalar(k(2)).MustPow(3)).Add(x.MustPow(3)).Sub(y.MustPow(4))
	got, _ := wide.Eval(ints("x", 152345, "y", 792))
	if got.String() != "3610495987987929" {
		t.Errorf("got %v", got)
	}

	if got, err := Zero[*big.Int](zz).Eval(nil); err != nil || got.Sign() != 0 {
		t.Errorf("zero.Eval() = %v, %v", got, err)
	}
}

func TestEvalErrors(t *testing.T) {
	x, y := iv("x"), iv("y")
	p := x.Add(y)

	_, err := p.Eval(ints("x", 1))
	if errcat.Category(err) != ErrIncomplete {
		t.Errorf("missing y: %v", err)
	}

	if got, err := p.Eval(ints("x", 1, "y", 2, "z", 3)); err != nil || got.Int64() != 3 {
		t.Errorf("extra bindings should be ignored: %v, %v", got, err)
	}

	_, err = p.Eval(map[string]*big.Int{"x": k(1), "y": nil})
	if errcat.Category(err) != ErrType {
		t.Errorf("nil value: %v", err)
	}
}

func TestApply(t *testing.T) {
	x, y, z := iv("x"), iv("y"), iv("z")

	tests := []struct {
		name   string
		p      Polynomial[*big.Int]
		assign map[string]*big.Int
		want   Polynomial[*big.Int]
	}{
		{"square", x.Add(y.MustPow(2)), ints("y", 2), x.AddScalar(k(4))},
		{"middle variable", x.Add(y.MustPow(2)).Add(z), ints("y", 3), x.AddScalar(k(9)).Add(z)},
		{"all variables", x.Add(y).Add(z).AddScalar(k(4)), ints("x", 1000, "y", 200, "z", 30), ic(1234)},
		{"two of three", x.Add(y).Add(z).AddScalar(k(4)), ints("x", 1000, "y", 200), z.AddScalar(k(1204))},
		{"no-op", x.Add(y), nil, x.Add(y)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.Apply(tt.assign)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	p := x.AddScalar(k(43)).Mul(y.SubScalar(k(37))).Mul(z.AddScalar(k(2)))
	partial, _ := p.Apply(ints("x", 5, "z", 22))
	if vars := partial.Variables(); len(vars) != 1 || vars[0] != "y" {
		t.Errorf("variables after apply: %v", vars)
	}

	diff := x.Add(y).Mul(x.Sub(y))
	if got, _ := diff.Apply(ints("x", 16)); got.String() != "(-1)*(y**2)+256" {
		t.Errorf("got %q", got)
	}
	if got, _ := x.MulScalar(k(3)).Add(y).Apply(ints("y", 4)); got.String() != "3*x+4" {
		t.Errorf("got %q", got)
	}
	cube := x.MustPow(2).Add(y).MustPow(3)
	if got, _ := cube.Apply(ints("y", 1)); got.String() != "(x**6)+3*(x**4)+3*(x**2)+1" {
		t.Errorf("got %q", got)
	}
}

func TestApplyErrors(t *testing.T) {
	p := iv("x").Add(iv("y"))

	_, err := p.Apply(ints("w", 1))
	if errcat.Category(err) != ErrIncomplete {
		t.Errorf("unknown variable: %v", err)
	}

	_, err = p.ApplyValues(map[string]any{"x": iv("u")})
	if errcat.Category(err) != ErrMisuse {
		t.Errorf("polynomial value: %v", err)
	}

	_, err = p.ApplyValues(map[string]any{"x": 3})
	if errcat.Category(err) != ErrType {
		t.Errorf("int value: %v", err)
	}

	got, err := p.ApplyValues(map[string]any{"x": k(3)})
	if err != nil || got.String() != "y+3" {
		t.Errorf("ApplyValues = %q, %v", got, err)
	}
}

func TestSubstitute(t *testing.T) {
	x, y, z, u := iv("x"), iv("y"), iv("z"), iv("u")

	tests := []struct {
		name string
		p    Polynomial[*big.Int]
		v    string
		q    Polynomial[*big.Int]
		want string
	}{
		{"shift", x.MustPow(2).AddScalar(k(1)), "x", y.AddScalar(k(1)), "(y**2)+2*y+2"},
		{"self reference", x.MustPow(2).AddScalar(k(5)), "x", x.AddScalar(k(1)), "(x**2)+2*x+6"},
		{"square", x.MustPow(2).Add(x.MulScalar(k(5))), "x", x.MustPow(2), "(x**4)+5*(x**2)"},
		{"other variables kept", x.MustPow(2).Add(z.MulScalar(k(5))), "x", y.MustPow(2), "(y**4)+5*z"},
		{"affine", x.MustPow(2).Add(z.MulScalar(k(5))), "x", y.MustPow(2).MulScalar(k(100)).AddScalar(k(3)), "10000*(y**4)+600*(y**2)+5*z+9"},
		{"linear", x.MulScalar(k(2)).AddScalar(k(1)), "x", u.AddScalar(k(3)), "2*u+7"},
		{"compose", y.MustPow(2).AddScalar(k(3)), "y", x.AddScalar(k(1)), "(x**2)+2*x+4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.Substitute(tt.v, tt.q)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	p := x.MulScalar(k(2)).AddScalar(k(1)).Mul(y.MulScalar(k(2)).AddScalar(k(1))).Mul(z)
	q, _ := p.Substitute("x", u.AddScalar(k(3)))
	if q.String() != "4*u*y*z+2*u*z+14*y*z+7*z" {
		t.Errorf("got %q", q)
	}
	if vars := q.Variables(); len(vars) != 3 || vars[0] != "u" || vars[1] != "y" || vars[2] != "z" {
		t.Errorf("variables %v", vars)
	}

	_, err := p.Substitute("w", u)
	if errcat.Category(err) != ErrIncomplete {
		t.Errorf("unknown variable: %v", err)
	}
}

func TestPowErrors(t *testing.T) {
	_, err := iv("x").Pow(-1)
	if errcat.Category(err) != ErrDomain {
		t.Errorf("negative exponent: %v", err)
	}
}

func TestMonomial(t *testing.T) {
	p, err := Monomial[*big.Int](zz, k(5), vp("y", 1), vp("x", 2))
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "5*(x**2)*y" {
		t.Errorf("got %q", p)
	}

	_, err = Monomial[*big.Int](zz, k(5), vp("x", 1), vp("x", 2))
	if errcat.Category(err) != ErrDomain {
		t.Errorf("duplicate factor: %v", err)
	}

	if p, _ := Monomial[*big.Int](zz, k(0), vp("x", 1)); !p.IsZero() {
		t.Errorf("zero monomial: %q", p)
	}
}

func TestConstructorErrors(t *testing.T) {
	_, err := Var[*big.Int](zz, "a-b")
	if errcat.Category(err) != ErrDomain {
		t.Errorf("bad name: %v", err)
	}
	_, err = Constant[*big.Int](zz, nil)
	if errcat.Category(err) != ErrType {
		t.Errorf("nil constant: %v", err)
	}
	mod := ring.MustModulus(7)
	_, err = Constant[*big.Int](mod, k(7))
	if errcat.Category(err) != ErrDomain {
		t.Errorf("out of range constant: %v", err)
	}
}

func TestRingMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || errcat.Category(err) != ErrMisuse {
			t.Errorf("expected misuse panic, got %v", r)
		}
	}()
	x := iv("x")
	y := MustVar[*big.Int](ring.MustModulus(5), "y")
	x.Add(y)
}

func TestSubstituteRingMismatch(t *testing.T) {
	y := MustVar[*big.Int](ring.MustModulus(5), "y")
	_, err := iv("x").Substitute("x", y)
	if errcat.Category(err) != ErrMisuse {
		t.Errorf("got %v", err)
	}
}

func TestDenseVector(t *testing.T) {
	x := iv("x")
	p := x.MulScalar(k(2)).AddScalar(k(1)).Mul(x.MulScalar(k(2)).SubScalar(k(1)))

	vec, err := p.DenseVector()
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{-1, 0, 4}
	if len(vec) != len(want) {
		t.Fatalf("got %v", vec)
	}
	for i := range want {
		if vec[i].Int64() != want[i] {
			t.Errorf("vec[%d] = %v, want %d", i, vec[i], want[i])
		}
	}
	if got, _ := p.Eval(ints("x", 7)); got.Int64() != 195 {
		t.Errorf("p(7) = %v", got)
	}

	if vec, _ := ic(5).DenseVector(); len(vec) != 1 || vec[0].Int64() != 5 {
		t.Errorf("constant: %v", vec)
	}
	if vec, _ := Zero[*big.Int](zz).DenseVector(); len(vec) != 1 || vec[0].Sign() != 0 {
		t.Errorf("zero: %v", vec)
	}

	_, err = x.Add(iv("y")).DenseVector()
	if errcat.Category(err) != ErrMisuse {
		t.Errorf("two variables: %v", err)
	}
}

func TestCallerValuesAreCopied(t *testing.T) {
	c := k(3)
	constant := MustConstant[*big.Int](zz, c)
	shifted := iv("x").AddScalar(c)
	scaled := iv("y").MulScalar(c)
	mono, err := Monomial[*big.Int](zz, c, vp("z", 2))
	if err != nil {
		t.Fatal(err)
	}
	c.SetInt64(0)

	tests := []struct {
		p      Polynomial[*big.Int]
		str    string
		assign map[string]*big.Int
		want   int64
	}{
		{constant, "3", nil, 3},
		{shifted, "x+3", ints("x", 1), 4},
		{scaled, "3*y", ints("y", 2), 6},
		{mono, "3*(z**2)", ints("z", 2), 12},
	}
	for _, tt := range tests {
		if tt.p.String() != tt.str {
			t.Errorf("got %s, want %s", tt.p, tt.str)
		}
		got, err := tt.p.Eval(tt.assign)
		if err != nil {
			t.Fatal(err)
		}
		if got.Int64() != tt.want {
			t.Errorf("%s evaluates to %v, want %d", tt.p, got, tt.want)
		}
	}

	half := ring.Rat(1, 2)
	q := MustConstant[*big.Rat](ring.Rationals{}, half)
	half.SetInt64(7)
	if q.String() != "1/2" {
		t.Errorf("rational constant changed: %s", q)
	}
}

func TestTransformCoefficientsInPlace(t *testing.T) {
	p := iv("x").MulScalar(k(4)).AddScalar(k(6))
	half, err := p.TransformCoefficients(func(c *big.Int) *big.Int { return c.Rsh(c, 1) })
	if err != nil {
		t.Fatal(err)
	}
	if half.String() != "2*x+3" {
		t.Errorf("got %s", half)
	}
	if p.String() != "4*x+6" {
		t.Errorf("source changed to %s", p)
	}
	if got, _ := p.Eval(ints("x", 1)); got.Int64() != 10 {
		t.Errorf("p(1) = %v, want 10", got)
	}
}

func TestDenseVectorReturnsCopies(t *testing.T) {
	p := iv("x").MulScalar(k(5)).AddScalar(k(2))
	vec, err := p.DenseVector()
	if err != nil {
		t.Fatal(err)
	}
	vec[0].SetInt64(99)
	vec[1].SetInt64(99)

	if p.String() != "5*x+2" {
		t.Errorf("got %s", p)
	}
	if got, _ := p.Eval(ints("x", 1)); got.Int64() != 7 {
		t.Errorf("p(1) = %v, want 7", got)
	}
	again, _ := p.DenseVector()
	if again[0].Int64() != 2 || again[1].Int64() != 5 {
		t.Errorf("dense vector changed: %v", again)
	}
}

func TestHighDegreeIsExact(t *testing.T) {
	p := iv("x").MustPow(18)
	got, _ := p.Eval(ints("x", 11))
	want := new(big.Int).Exp(k(11), k(18), nil)
	if got.Cmp(want) != 0 {
		t.Errorf("got %v, want %v", got, want)
	}
}
