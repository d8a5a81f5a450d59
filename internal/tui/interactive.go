package tui

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/polysim/internal/machine"
	"github.com/san-kum/polysim/internal/sim"
	"github.com/san-kum/polysim/internal/viz"
)

var displayWires = []string{machine.WireHigh, machine.WireLow, machine.WireHalted, machine.WireAccepted}

type model struct {
	sys     sim.System
	program []machine.Op
	ctrl    *machine.ProgramController
	input   int

	x       sim.State
	pc      int
	history []sim.State
	auto    bool
	err     error

	themeIdx int
	styles   viz.Styles

	width  int
	height int
}

// NewStepper builds a model that steps sys, the compiled machine, through
// program one instruction per key press.
func NewStepper(sys sim.System, program []machine.Op, input int) *model {
	m := &model{
		sys:     sys,
		program: program,
		ctrl:    machine.NewProgramController(program),
		input:   input,
		styles:  viz.Default,
		width:   80,
		height:  24,
	}
	m.reset()
	return m
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.auto {
			return m, nil
		}
		m.step()
		if m.done() {
			m.auto = false
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "n", "right", "l":
		m.step()
	case "a":
		m.auto = !m.auto && !m.done()
		if m.auto {
			return m, tick()
		}
	case "r":
		m.reset()
	case "0", "1", "2", "3":
		m.input = int(msg.String()[0] - '0')
		m.reset()
	case "t":
		m.themeIdx = (m.themeIdx + 1) % len(viz.Themes)
		m.styles = viz.NewStyles(viz.Themes[m.themeIdx])
	}
	return m, nil
}

func (m *model) reset() {
	m.x = machine.InitialState(m.input)
	m.pc = 0
	m.history = []sim.State{m.x}
	m.auto = false
	m.err = nil
	if len(m.program) > machine.MaxProgramLen {
		m.err = fmt.Errorf("program has %d instructions; longer than %d rejects every input", len(m.program), machine.MaxProgramLen)
	}
}

func (m *model) done() bool {
	return m.err != nil || m.pc >= len(m.program)
}

func (m *model) step() {
	if m.done() {
		return
	}
	u := m.ctrl.Compute(m.x, m.pc)
	next, err := m.sys.Step(m.x, u)
	if err != nil {
		m.err = &sim.StepError{Step: m.pc, State: m.x, Wrapped: err}
		return
	}
	m.x = next
	m.pc++
	m.history = append(m.history, next)
}

func (m model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Header.Render("polysim  two-bit vm over " + m.sys.Ring().Name()))
	b.WriteString("\n\n")

	b.WriteString(s.Label.Render("program "))
	for i, op := range m.program {
		text := op.String()
		switch {
		case i == m.pc && !m.done():
			b.WriteString(s.Value.Render("▶" + text))
		case i < m.pc:
			b.WriteString(s.Subtle.Render(" " + text))
		default:
			b.WriteString(" " + text)
		}
	}
	b.WriteString("\n")
	b.WriteString(s.Label.Render("progress "))
	b.WriteString(s.ProgressBar(m.pc, len(m.program), 30))
	b.WriteString(fmt.Sprintf(" %d/%d\n\n", m.pc, len(m.program)))

	b.WriteString(s.KV("AX in", fmt.Sprint(m.input)))
	if ax, ok := machine.Register(m.x); ok {
		b.WriteString("   " + s.KV("AX now", fmt.Sprint(ax)))
	}
	b.WriteString("\n\n")
	b.WriteString(viz.BitTable(s, m.history, displayWires))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(s.Reject.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.done():
		got := m.x.IsSet(machine.WireAccepted)
		want := machine.Run(m.input, m.program)
		b.WriteString(s.KV("polynomial", "") + s.Verdict(got))
		b.WriteString("   " + s.KV("interpreter", "") + s.Verdict(want))
		b.WriteString("\n")
	case m.x.IsSet(machine.WireHalted):
		b.WriteString(s.Subtle.Render("halted; remaining instructions are ignored"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.KeyHint.Render("space step · a auto · r reset · 0-3 input · t theme · q quit"))
	return b.String()
}

// Wire returns the current value of a state wire.
func (m model) Wire(name string) *big.Int { return m.x[name] }

func RunStepper(sys sim.System, program []machine.Op, input int) error {
	p := tea.NewProgram(NewStepper(sys, program, input), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
