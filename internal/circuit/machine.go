package circuit

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/san-kum/polysim/internal/poly"
	"github.com/san-kum/polysim/internal/ring"
	"github.com/san-kum/polysim/internal/sim"
)

// Machine is a compiled netlist over an integer-valued ring. It holds only
// immutable polynomials, so one Machine may be stepped from many goroutines.
type Machine struct {
	name   string
	r      ring.Ring[*big.Int]
	state  []string
	inputs []string
	next   map[string]poly.Polynomial[*big.Int]
}

// Compile builds the transition polynomials of n over r.
func (n *Netlist) Compile(r ring.Ring[*big.Int]) (*Machine, error) {
	next, err := Transitions(n, r)
	if err != nil {
		return nil, err
	}
	return &Machine{
		name:   n.Name,
		r:      r,
		state:  slices.Clone(n.State),
		inputs: slices.Clone(n.Inputs),
		next:   next,
	}, nil
}

func (m *Machine) Name() string              { return m.name }
func (m *Machine) Ring() ring.Ring[*big.Int] { return m.r }
func (m *Machine) StateWires() []string      { return slices.Clone(m.state) }
func (m *Machine) InputWires() []string      { return slices.Clone(m.inputs) }

// Transition returns the next-state polynomial of a state wire.
func (m *Machine) Transition(wire string) (poly.Polynomial[*big.Int], bool) {
	p, ok := m.next[wire]
	return p, ok
}

// Step evaluates every transition on the current state and inputs.
func (m *Machine) Step(x sim.State, u sim.Control) (sim.State, error) {
	assign := x.Merge(u)
	out := make(sim.State, len(m.state))
	for _, w := range m.state {
		v, err := m.next[w].Eval(assign)
		if err != nil {
			return nil, fmt.Errorf("next %s: %w", w, err)
		}
		out[w] = v
	}
	return out, nil
}
