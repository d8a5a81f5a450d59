package machine

import (
	"context"
	_ "embed"
	"fmt"
	"math/big"

	"github.com/san-kum/polysim/internal/circuit"
	"github.com/san-kum/polysim/internal/ring"
	"github.com/san-kum/polysim/internal/sim"
)

// Wire names of the compiled machine.
const (
	WireHigh     = "hb"
	WireLow      = "lb"
	WireHalted   = "halted"
	WireAccepted = "accepted"
	WireDecr     = "decr"
)

//go:embed vm.yaml
var vmNetlist []byte

// Netlist returns a fresh copy of the machine's circuit description.
func Netlist() *circuit.Netlist {
	n, err := circuit.ParseNetlist(vmNetlist)
	if err != nil {
		panic(fmt.Sprintf("machine: embedded netlist: %v", err))
	}
	return n
}

// Compile builds the transition polynomials over r.
func Compile(r ring.Ring[*big.Int]) (*circuit.Machine, error) {
	return Netlist().Compile(r)
}

// InitialState loads ax into the register bits with the machine running.
func InitialState(ax int) sim.State {
	return sim.FromInts(map[string]int64{
		WireHigh:     int64(ax / 2),
		WireLow:      int64(ax % 2),
		WireHalted:   0,
		WireAccepted: 0,
	})
}

// Register reads AX back from a state. ok is false if either bit is not
// 0 or 1.
func Register(x sim.State) (ax int, ok bool) {
	hb, lb := x[WireHigh], x[WireLow]
	if hb == nil || lb == nil || !isBit(hb) || !isBit(lb) {
		return 0, false
	}
	return int(2*hb.Int64() + lb.Int64()), true
}

func isBit(v *big.Int) bool { return v.Sign() == 0 || (v.IsInt64() && v.Int64() == 1) }

// ProgramController drives the decr wire from a program, one opcode per
// step. Past the end it feeds check.
type ProgramController struct {
	program []Op
}

func NewProgramController(program []Op) *ProgramController {
	return &ProgramController{program: program}
}

func (c *ProgramController) Compute(x sim.State, step int) sim.Control {
	decr := int64(0)
	if step < len(c.program) && c.program[step] == Decr {
		decr = 1
	}
	return sim.Control{WireDecr: big.NewInt(decr)}
}

// RunPolynomial runs program on the compiled machine m and reports whether
// the accepted wire ends at 1.
func RunPolynomial(ctx context.Context, m sim.System, ax int, program []Op) (bool, error) {
	if len(program) > MaxProgramLen {
		return false, nil
	}
	result, err := sim.New(m, NewProgramController(program)).Run(ctx, InitialState(ax), programConfig(program))
	if err != nil {
		return false, err
	}
	return result.Final().IsSet(WireAccepted), nil
}

// RecognizePolynomial runs program from every input at once and returns
// the encoded language.
func RecognizePolynomial(ctx context.Context, m sim.System, program []Op) (int, error) {
	if len(program) > MaxProgramLen {
		return 0, nil
	}

	x0s := make([]sim.State, NumInputs)
	for ax := range x0s {
		x0s[ax] = InitialState(ax)
	}

	results, err := sim.NewEnsemble(m, NewProgramController(program)).Run(ctx, x0s, programConfig(program))
	if err != nil {
		return 0, err
	}

	lang := make([]int, 0, NumInputs)
	for ax, r := range results {
		if r.Final().IsSet(WireAccepted) {
			lang = append(lang, ax)
		}
	}
	return EncodeLanguage(lang), nil
}

func programConfig(program []Op) sim.Config {
	return sim.Config{Steps: len(program), ValidateState: true}
}
