package circuit

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/san-kum/polysim/internal/poly"
	"github.com/san-kum/polysim/internal/ring"
	"github.com/san-kum/polysim/internal/sim"
)

var zz = ring.Integers{}

func bit(p poly.Polynomial[*big.Int], assign map[string]*big.Int) int64 {
	v, err := p.Eval(assign)
	if err != nil {
		panic(err)
	}
	return v.Int64()
}

func TestGateTruthTables(t *testing.T) {
	x := poly.MustVar[*big.Int](zz, "x")
	y := poly.MustVar[*big.Int](zz, "y")
	z := poly.MustVar[*big.Int](zz, "z")

	tests := []struct {
		name string
		p    poly.Polynomial[*big.Int]
		f    func(a, b, c bool) bool
	}{
		{"not", Not(x), func(a, b, c bool) bool { return !a }},
		{"and", And(x, y), func(a, b, c bool) bool { return a && b }},
		{"or", Or(x, y), func(a, b, c bool) bool { return a || b }},
		{"xor", Xor(x, y), func(a, b, c bool) bool { return a != b }},
		{"or3", Or3(x, y, z), func(a, b, c bool) bool { return a || b || c }},
		{"andall", AndAll[*big.Int](zz, x, y, z), func(a, b, c bool) bool { return a && b && c }},
		{"orall", OrAll[*big.Int](zz, x, y, z), func(a, b, c bool) bool { return a || b || c }},
	}

	b2i := func(b bool) int64 {
		if b {
			return 1
		}
		return 0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 8; i++ {
				a, b, c := i&1 == 1, i&2 == 2, i&4 == 4
				assign := map[string]*big.Int{
					"x": big.NewInt(b2i(a)),
					"y": big.NewInt(b2i(b)),
					"z": big.NewInt(b2i(c)),
				}
				if got, want := bit(tt.p, assign), b2i(tt.f(a, b, c)); got != want {
					t.Errorf("%v,%v,%v: got %d, want %d", a, b, c, got, want)
				}
			}
		})
	}
}

func TestGateStrings(t *testing.T) {
	x := poly.MustVar[*big.Int](zz, "x")
	y := poly.MustVar[*big.Int](zz, "y")

	if got := Not(x).String(); got != "(-1)*x+1" {
		t.Errorf("Not(x) = %q", got)
	}
	if got := Or(x, y).String(); got != "(-1)*x*y+x+y" {
		t.Errorf("Or(x, y) = %q", got)
	}
	if !AndAll[*big.Int](zz).IsOne() || !OrAll[*big.Int](zz).IsZero() {
		t.Error("empty folds should be the identities")
	}
}

func TestLoadAndCompile(t *testing.T) {
	n, err := LoadNetlist(filepath.Join("testdata", "toggle.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if n.Name != "toggle" || len(n.Gates) != 3 {
		t.Fatalf("unexpected netlist %+v", n)
	}

	m, err := n.Compile(zz)
	if err != nil {
		t.Fatal(err)
	}

	q, ok := m.Transition("q")
	if !ok {
		t.Fatal("no transition for q")
	}
	if got := q.String(); got != "(-2)*q*t+q+t" {
		t.Errorf("q' = %q", got)
	}
	if _, ok := m.Transition("t"); ok {
		t.Error("inputs have no transition")
	}

	x, err := m.Step(sim.FromInts(map[string]int64{"q": 1, "carry": 0}), sim.Control{"t": big.NewInt(1)})
	if err != nil {
		t.Fatal(err)
	}
	if x["q"].Int64() != 0 || x["carry"].Int64() != 1 {
		t.Errorf("Step = %v", x)
	}
}

func TestMachineSimulates(t *testing.T) {
	n, err := LoadNetlist(filepath.Join("testdata", "toggle.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	m, err := n.Compile(ring.MustModulus(2))
	if err != nil {
		t.Fatal(err)
	}

	ctrl := sim.NewSchedule(m.InputWires(), []map[string]int64{{"t": 1}, {"t": 1}, {"t": 0}, {"t": 1}})
	result, err := sim.New(m, ctrl).Run(context.Background(), sim.FromInts(map[string]int64{"q": 0, "carry": 0}), sim.Config{Steps: 4, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}

	wantQ := []int64{0, 1, 0, 0, 1}
	for i, s := range result.States {
		if s["q"].Int64() != wantQ[i] {
			t.Errorf("step %d: q=%s, want %d", i, s["q"], wantQ[i])
		}
	}
	if !result.Final().IsSet("carry") {
		t.Error("carry should latch after the first overflow")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			"unknown op",
			"state: [a]\ngates: [{name: g, op: nand, args: [a, a]}]\nnext: {a: g}\n",
			ErrUnknownOp,
		},
		{
			"arity",
			"state: [a]\ngates: [{name: g, op: not, args: [a, a]}]\nnext: {a: g}\n",
			ErrArity,
		},
		{
			"forward reference",
			"state: [a]\ngates: [{name: g, op: not, args: [h]}, {name: h, op: not, args: [a]}]\nnext: {a: g}\n",
			ErrUndefined,
		},
		{
			"duplicate",
			"state: [a]\ninputs: [a]\nnext: {a: a}\n",
			ErrDuplicate,
		},
		{
			"missing next",
			"state: [a, b]\nnext: {a: a}\n",
			ErrMissingNext,
		},
		{
			"unknown state",
			"state: [a]\nnext: {a: a, b: a}\n",
			ErrUnknownState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseNetlist([]byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := n.Compile(zz); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCompileRejectsBadWireName(t *testing.T) {
	n := &Netlist{State: []string{"a+b"}, Next: map[string]string{"a+b": "a+b"}}
	if _, err := n.Compile(zz); err == nil {
		t.Error("expected an invalid wire name to fail")
	}
}

func TestNetlistSaveRoundTrip(t *testing.T) {
	n, err := LoadNetlist(filepath.Join("testdata", "toggle.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := n.Save(path); err != nil {
		t.Fatal(err)
	}
	back, err := LoadNetlist(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Next["carry"] != "sticky" || back.Gates[0].Op != "xor" {
		t.Errorf("round trip lost data: %+v", back)
	}
}
