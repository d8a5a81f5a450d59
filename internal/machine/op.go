package machine

import (
	"errors"
	"fmt"
	"strings"
)

// MaxProgramLen is the longest program the machine will execute.
const MaxProgramLen = 8

var ErrUnknownOp = errors.New("machine: unknown opcode")

// Op values double as the digits of the program numbering.
type Op int

const (
	Check Op = 1
	Decr  Op = 2
)

func (o Op) String() string {
	switch o {
	case Check:
		return "check"
	case Decr:
		return "decr"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "check":
		return Check, nil
	case "decr":
		return Decr, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// ParseProgram reads opcode names.
func ParseProgram(names []string) ([]Op, error) {
	prog := make([]Op, len(names))
	for i, n := range names {
		op, err := ParseOp(n)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		prog[i] = op
	}
	return prog, nil
}

// FormatProgram renders a program as "[check decr]".
func FormatProgram(prog []Op) string {
	parts := make([]string, len(prog))
	for i, op := range prog {
		parts[i] = op.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
