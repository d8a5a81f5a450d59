package sim

import "math/big"

// Idle holds every input wire at zero.
type Idle struct {
	inputs []string
}

func NewIdle(inputs []string) *Idle { return &Idle{inputs: inputs} }

func (c *Idle) Compute(x State, step int) Control {
	u := make(Control, len(c.inputs))
	for _, w := range c.inputs {
		u[w] = new(big.Int)
	}
	return u
}

// Schedule replays a fixed input table, one row per step. Steps past the
// end of the table, and wires missing from a row, read as zero.
type Schedule struct {
	inputs []string
	rows   []map[string]int64
}

func NewSchedule(inputs []string, rows []map[string]int64) *Schedule {
	return &Schedule{inputs: inputs, rows: rows}
}

func (c *Schedule) Compute(x State, step int) Control {
	u := make(Control, len(c.inputs))
	var row map[string]int64
	if step < len(c.rows) {
		row = c.rows[step]
	}
	for _, w := range c.inputs {
		u[w] = big.NewInt(row[w])
	}
	return u
}
