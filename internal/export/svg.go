package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/polysim/internal/sim"
	"github.com/san-kum/polysim/internal/viz"
)

const (
	laneHeight = 30.0
	labelWidth = 90.0
	background = "#0a0a0a"
)

// TimingSVG draws one square-wave lane per wire. Values other than 0 and 1
// are drawn at mid height in the accent color.
func TimingSVG(states []sim.State, wires []string, stepWidth float64, theme viz.Theme) string {
	if len(states) == 0 || len(wires) == 0 {
		return ""
	}
	if stepWidth <= 0 {
		stepWidth = 20
	}

	width := labelWidth + stepWidth*float64(len(states))
	height := laneHeight*float64(len(wires)) + laneHeight

	var sb strings.Builder
	writeHeader(&sb, width, height)

	// step ruler
	sb.WriteString(fmt.Sprintf(`<g fill="%s" font-family="monospace" font-size="10">
`, theme.Muted))
	for i := range states {
		x := labelWidth + float64(i)*stepWidth
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f">%d</text>
`, x+2, height-8, i))
	}
	sb.WriteString("</g>\n")

	for lane, w := range wires {
		top := float64(lane) * laneHeight
		high := top + 6
		low := top + laneHeight - 6
		mid := (high + low) / 2

		sb.WriteString(fmt.Sprintf(`<text x="4" y="%.1f" fill="%s" font-family="monospace" font-size="12">%s</text>
`, mid+4, theme.Text, w))

		var path strings.Builder
		prevY := -1.0
		for i, s := range states {
			x0 := labelWidth + float64(i)*stepWidth
			x1 := x0 + stepWidth

			y := mid
			v, ok := s[w]
			switch {
			case ok && v.Sign() == 0:
				y = low
			case ok && v.IsInt64() && v.Int64() == 1:
				y = high
			default:
				sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.3"/>
`, x0, high, stepWidth, low-high, theme.Accent))
			}

			if i == 0 {
				path.WriteString(fmt.Sprintf("M%.1f,%.1f", x0, y))
			} else if y != prevY {
				path.WriteString(fmt.Sprintf(" L%.1f,%.1f", x0, y))
			}
			path.WriteString(fmt.Sprintf(" L%.1f,%.1f", x1, y))
			prevY = y
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, theme.Primary, path.String()))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TraceSVG draws a polyline of one wire's values against the step index.
func TraceSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}
