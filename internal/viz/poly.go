package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/polysim/internal/poly"
)

// SplitTerms splits a canonical polynomial string at its top-level '+'
// signs. Signs inside parentheses belong to coefficients or powers.
func SplitTerms(s string) []string {
	var terms []string
	depth, start := 0, 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case '+':
			if depth == 0 {
				terms = append(terms, s[start:i])
				start = i + 1
			}
		}
	}
	return append(terms, s[start:])
}

// WrapPolynomial breaks a canonical string into lines of at most width
// runes, breaking only between terms. A single term longer than width
// gets a line of its own.
func WrapPolynomial(s string, width int) []string {
	terms := SplitTerms(s)
	var lines []string
	var cur strings.Builder
	for i, t := range terms {
		piece := t
		if i > 0 {
			piece = "+" + t
		}
		if cur.Len() > 0 && cur.Len()+len(piece) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		cur.WriteString(piece)
	}
	return append(lines, cur.String())
}

// RenderPolynomial shows name = p with continuation lines indented under
// the first term.
func RenderPolynomial[T any](s Styles, name string, p poly.Polynomial[T], width int) string {
	prefix := name + " = "
	lines := WrapPolynomial(p.String(), width-len(prefix))

	var b strings.Builder
	b.WriteString(s.Title.Render(name))
	b.WriteString(s.Subtle.Render(" = "))
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat(" ", len(prefix)))
		}
		b.WriteString(line)
	}
	b.WriteString("\n")
	b.WriteString(s.Subtle.Render(fmt.Sprintf("%s  %d terms over %s, vars %v", strings.Repeat(" ", len(prefix)-2), p.NumTerms(), p.Ring().Name(), p.Variables())))
	return b.String()
}
