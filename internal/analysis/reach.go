package analysis

import (
	"fmt"
	"math/big"

	"github.com/san-kum/polysim/internal/sim"
)

// MaxStates bounds Explore. Circuits whose wires leave {0, 1} can have an
// unbounded state space.
const MaxStates = 1 << 12

// Edge is one transition of the explored graph.
type Edge struct {
	From  string
	Input string
	To    string
}

// Reachability is the state graph found by Explore. States are keyed by
// sim.State.String.
type Reachability struct {
	Start  string
	States map[string]sim.State
	Order  []string
	Edges  []Edge
}

// Explore walks every state reachable from x0 when each input wire may be
// 0 or 1 on every step.
func Explore(sys sim.System, x0 sim.State) (*Reachability, error) {
	inputs := sys.InputWires()
	controls := inputCombos(inputs)

	start := x0.String()
	reach := &Reachability{
		Start:  start,
		States: map[string]sim.State{start: x0.Clone()},
		Order:  []string{start},
	}

	queue := []sim.State{x0.Clone()}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		from := x.String()

		for _, u := range controls {
			next, err := sys.Step(x, u)
			if err != nil {
				return nil, err
			}
			to := next.String()
			reach.Edges = append(reach.Edges, Edge{From: from, Input: sim.State(u).String(), To: to})
			if _, seen := reach.States[to]; !seen {
				if len(reach.States) >= MaxStates {
					return nil, fmt.Errorf("more than %d reachable states from %s", MaxStates, start)
				}
				reach.States[to] = next
				reach.Order = append(reach.Order, to)
				queue = append(queue, next)
			}
		}
	}

	return reach, nil
}

func inputCombos(inputs []string) []sim.Control {
	n := len(inputs)
	combos := make([]sim.Control, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		u := make(sim.Control, n)
		for i, w := range inputs {
			u[w] = big.NewInt(int64(mask >> i & 1))
		}
		combos = append(combos, u)
	}
	return combos
}
