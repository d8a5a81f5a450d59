package machine

// Run executes program with AX = ax and reports whether it accepts.
func Run(ax int, program []Op) bool {
	if len(program) > MaxProgramLen {
		return false
	}

	halted, accepted := false, false
	for _, op := range program {
		if halted {
			continue
		}
		switch op {
		case Decr:
			if ax == 0 {
				halted = true
			} else {
				ax--
			}
		case Check:
			if ax == 0 {
				halted, accepted = true, true
			}
		}
	}
	return accepted
}
