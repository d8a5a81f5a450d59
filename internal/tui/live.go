package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/polysim/internal/sim"
	"github.com/san-kum/polysim/internal/viz"
)

// LiveRenderer prints one line per simulated step. It is a sim.Observer.
type LiveRenderer struct {
	w      io.Writer
	styles viz.Styles
}

func NewLiveRenderer(w io.Writer, styles viz.Styles) *LiveRenderer {
	return &LiveRenderer{w: w, styles: styles}
}

func (r *LiveRenderer) OnStep(x sim.State, u sim.Control, step int) {
	s := r.styles
	var b strings.Builder
	b.WriteString(s.Subtle.Render(fmt.Sprintf("%4d ", step)))
	for _, w := range x.Wires() {
		b.WriteString(s.Label.Render(w + "="))
		b.WriteString(bit(s, x[w].String()))
		b.WriteString(" ")
	}
	if len(u) > 0 {
		b.WriteString(s.Subtle.Render("| "))
		for _, w := range sim.State(u).Wires() {
			b.WriteString(s.Label.Render(w + "="))
			b.WriteString(bit(s, u[w].String()))
			b.WriteString(" ")
		}
	}
	fmt.Fprintln(r.w, strings.TrimRight(b.String(), " "))
}

func bit(s viz.Styles, v string) string {
	switch v {
	case "1":
		return s.BitOn.Render(v)
	case "0":
		return s.BitOff.Render(v)
	}
	return s.Value.Render(v)
}
