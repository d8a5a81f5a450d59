package viz

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/polysim/internal/sim"
)

// Trace extracts one wire's values as floats. Missing values read as 0.
func Trace(states []sim.State, wire string) []float64 {
	out := make([]float64, len(states))
	for i, x := range states {
		if v, ok := x[wire]; ok {
			out[i], _ = new(big.Float).SetInt(v).Float64()
		}
	}
	return out
}

// Plot draws one series. asciigraph needs at least one point.
func Plot(data []float64, caption string) string {
	if len(data) == 0 {
		data = []float64{0}
	}
	return asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(caption))
}

// PlotWires draws the given wires of a run on shared axes.
func PlotWires(states []sim.State, wires []string, caption string) string {
	if len(wires) == 0 || len(states) == 0 {
		return Plot(nil, caption)
	}
	series := make([][]float64, len(wires))
	for i, w := range wires {
		series[i] = Trace(states, w)
	}
	return asciigraph.PlotMany(series, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(caption))
}

// BitTable draws a timing diagram: one row per wire, one column per step.
// 0 and 1 show as blocks, anything else as its decimal value.
func BitTable(s Styles, states []sim.State, wires []string) string {
	width := 0
	for _, w := range wires {
		if len(w) > width {
			width = len(w)
		}
	}

	var b strings.Builder
	b.WriteString(s.Subtle.Render(fmt.Sprintf("%*s ", width, "step")))
	for i := range states {
		b.WriteString(s.Subtle.Render(fmt.Sprintf("%d", i%10)))
	}
	b.WriteString("\n")

	for _, w := range wires {
		b.WriteString(s.Label.Render(fmt.Sprintf("%*s ", width, w)))
		for _, x := range states {
			v := x[w]
			switch {
			case v == nil:
				b.WriteString(s.Subtle.Render("?"))
			case v.Sign() == 0:
				b.WriteString(s.BitOff.Render("·"))
			case v.IsInt64() && v.Int64() == 1:
				b.WriteString(s.BitOn.Render("█"))
			default:
				b.WriteString(s.Value.Render(v.String()))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
