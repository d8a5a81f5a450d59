package sim

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/san-kum/polysim/internal/ring"
)

// State maps wire names to ring values.
type State map[string]*big.Int

// Clone copies the map. Values are shared; they are never mutated.
func (s State) Clone() State {
	c := make(State, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Wires returns the sorted wire names.
func (s State) Wires() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsSet reports whether wire is 1.
func (s State) IsSet(wire string) bool {
	v, ok := s[wire]
	return ok && v.IsInt64() && v.Int64() == 1
}

func (s State) String() string {
	names := s.Wires()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s=%s", n, s[n])
	}
	return strings.Join(parts, " ")
}

// Merge returns the union of s and others; later maps win.
func (s State) Merge(others ...map[string]*big.Int) map[string]*big.Int {
	m := make(map[string]*big.Int, len(s))
	for k, v := range s {
		m[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			m[k] = v
		}
	}
	return m
}

// FromInts builds a State from small integers.
func FromInts(vals map[string]int64) State {
	s := make(State, len(vals))
	for k, v := range vals {
		s[k] = big.NewInt(v)
	}
	return s
}

// Control maps input wire names to ring values for one step.
type Control map[string]*big.Int

// System is a synchronous machine whose next state is a function of the
// current state and one step of input.
type System interface {
	Ring() ring.Ring[*big.Int]
	StateWires() []string
	InputWires() []string
	Step(x State, u Control) (State, error)
}

type Controller interface {
	Compute(x State, step int) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, step int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, step int)
}

type Config struct {
	Steps         int
	StopWire      string
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         8,
		ValidateState: true,
	}
}

type Result struct {
	States     []State
	Controls   []Control
	Metrics    map[string]float64
	StepsTaken int
	Stopped    bool
	Errors     []error
}

// Final returns the last recorded state.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
