package metrics

import (
	"github.com/san-kum/polysim/internal/sim"
)

// SettleStep records the first step at which a wire reads 1, or -1 if it
// never does.
type SettleStep struct {
	wire string
	step int
}

func NewSettleStep(wire string) *SettleStep {
	return &SettleStep{wire: wire, step: -1}
}

func (s *SettleStep) Name() string {
	return "settle_" + s.wire
}

func (s *SettleStep) Observe(x sim.State, u sim.Control, step int) {
	if s.step < 0 && x.IsSet(s.wire) {
		s.step = step
	}
}

func (s *SettleStep) Value() float64 {
	return float64(s.step)
}

func (s *SettleStep) Reset() {
	s.step = -1
}

// BitValidity is the fraction of observed states whose every wire holds 0
// or 1. Circuits built from gates stay at 1.0 over any nonzero ring.
type BitValidity struct {
	violations int
	samples    int
}

func NewBitValidity() *BitValidity {
	return &BitValidity{}
}

func (b *BitValidity) Name() string {
	return "bit_validity"
}

func (b *BitValidity) Observe(x sim.State, u sim.Control, step int) {
	b.samples++
	for _, v := range x {
		if !isBit(v) {
			b.violations++
			break
		}
	}
}

func (b *BitValidity) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *BitValidity) Reset() {
	b.violations = 0
	b.samples = 0
}
