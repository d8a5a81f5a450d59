package circuit

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/polysim/internal/poly"
	"github.com/san-kum/polysim/internal/ring"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOp    = errors.New("circuit: unknown gate op")
	ErrArity        = errors.New("circuit: wrong number of gate arguments")
	ErrUndefined    = errors.New("circuit: reference to undefined wire or gate")
	ErrDuplicate    = errors.New("circuit: name defined twice")
	ErrMissingNext  = errors.New("circuit: state wire has no next-state gate")
	ErrUnknownState = errors.New("circuit: next-state entry for unknown state wire")
)

// Gate is one named combinator applied to earlier wires or gates.
type Gate struct {
	Name string   `yaml:"name"`
	Op   string   `yaml:"op"`
	Args []string `yaml:"args"`
}

// Netlist describes a synchronous circuit: state wires latch the value of
// their next-state gate each step, input wires are driven from outside.
type Netlist struct {
	Name   string            `yaml:"name"`
	State  []string          `yaml:"state"`
	Inputs []string          `yaml:"inputs"`
	Gates  []Gate            `yaml:"gates"`
	Next   map[string]string `yaml:"next"`
}

var arity = map[string]int{
	"zero": 0,
	"one":  0,
	"buf":  1,
	"not":  1,
	"and":  2,
	"or":   2,
	"xor":  2,
	"or3":  3,
}

func ParseNetlist(data []byte) (*Netlist, error) {
	var n Netlist
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parse netlist: %w", err)
	}
	return &n, nil
}

func LoadNetlist(path string) (*Netlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseNetlist(data)
}

func (n *Netlist) Save(path string) error {
	data, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Transitions builds one polynomial per state wire over r. Gates are
// evaluated in file order and may only reference wires and earlier gates.
func Transitions[T any](n *Netlist, r ring.Ring[T]) (map[string]poly.Polynomial[T], error) {
	env := make(map[string]poly.Polynomial[T], len(n.State)+len(n.Inputs)+len(n.Gates))

	for _, w := range append(append([]string{}, n.State...), n.Inputs...) {
		if _, ok := env[w]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, w)
		}
		v, err := poly.Var(r, w)
		if err != nil {
			return nil, fmt.Errorf("wire %q: %w", w, err)
		}
		env[w] = v
	}

	for _, g := range n.Gates {
		if _, ok := env[g.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, g.Name)
		}
		want, ok := arity[g.Op]
		if !ok {
			return nil, fmt.Errorf("%w: %q in gate %s", ErrUnknownOp, g.Op, g.Name)
		}
		if len(g.Args) != want {
			return nil, fmt.Errorf("%w: %s %s takes %d, got %d", ErrArity, g.Op, g.Name, want, len(g.Args))
		}

		args := make([]poly.Polynomial[T], len(g.Args))
		for i, a := range g.Args {
			p, ok := env[a]
			if !ok {
				return nil, fmt.Errorf("%w: %s in gate %s", ErrUndefined, a, g.Name)
			}
			args[i] = p
		}
		env[g.Name] = apply(r, g.Op, args)
	}

	next := make(map[string]poly.Polynomial[T], len(n.State))
	for _, w := range n.State {
		src, ok := n.Next[w]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingNext, w)
		}
		p, ok := env[src]
		if !ok {
			return nil, fmt.Errorf("%w: %s feeds %s", ErrUndefined, src, w)
		}
		next[w] = p
	}
	for w := range n.Next {
		if _, ok := next[w]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownState, w)
		}
	}

	return next, nil
}

func apply[T any](r ring.Ring[T], op string, args []poly.Polynomial[T]) poly.Polynomial[T] {
	switch op {
	case "zero":
		return poly.Zero(r)
	case "one":
		return poly.One(r)
	case "buf":
		return args[0]
	case "not":
		return Not(args[0])
	case "and":
		return And(args[0], args[1])
	case "or":
		return Or(args[0], args[1])
	case "xor":
		return Xor(args[0], args[1])
	case "or3":
		return Or3(args[0], args[1], args[2])
	}
	panic("circuit: unreachable op " + op)
}
