package metrics

import (
	"math/big"

	"github.com/san-kum/polysim/internal/sim"
)

// Toggles counts wire value changes between consecutive observed states.
type Toggles struct {
	prev    sim.State
	toggles int
}

func NewToggles() *Toggles {
	return &Toggles{}
}

func (t *Toggles) Name() string {
	return "toggles"
}

func (t *Toggles) Observe(x sim.State, u sim.Control, step int) {
	if t.prev != nil {
		for w, v := range x {
			if p, ok := t.prev[w]; ok && p.Cmp(v) != 0 {
				t.toggles++
			}
		}
	}
	t.prev = x
}

func (t *Toggles) Value() float64 {
	return float64(t.toggles)
}

func (t *Toggles) Reset() {
	t.prev = nil
	t.toggles = 0
}

// InputActivity counts steps on which any input wire was nonzero.
type InputActivity struct {
	active int
}

func NewInputActivity() *InputActivity {
	return &InputActivity{}
}

func (a *InputActivity) Name() string {
	return "input_activity"
}

func (a *InputActivity) Observe(x sim.State, u sim.Control, step int) {
	for _, v := range u {
		if v.Sign() != 0 {
			a.active++
			return
		}
	}
}

func (a *InputActivity) Value() float64 {
	return float64(a.active)
}

func (a *InputActivity) Reset() {
	a.active = 0
}

func isBit(v *big.Int) bool {
	return v.Sign() == 0 || (v.IsInt64() && v.Int64() == 1)
}
