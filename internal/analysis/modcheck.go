package analysis

import (
	"math/big"
	"sort"

	"github.com/san-kum/polysim/internal/compute"
	"github.com/san-kum/polysim/internal/poly"
	"github.com/san-kum/polysim/internal/ring"
)

// MaxGridPoints bounds the evaluation grid of ModularCheck.
const MaxGridPoints = 1 << 20

type Mismatch struct {
	Point map[string]int64
	Big   *big.Int
	Small *big.Int
}

type ModReport struct {
	Modulus    int64
	Span       int
	Reduced    poly.Polynomial[*big.Int]
	Checked    int
	Mismatches []Mismatch
	Residues   []int64
}

func (r *ModReport) OK() bool { return len(r.Mismatches) == 0 }

// ModularCheck projects p into Z/m and evaluates both polynomials at every
// point of [0, span)^n, comparing p mod m against the projection.
func ModularCheck(p poly.Polynomial[*big.Int], m int64, span int) (*ModReport, error) {
	zm, err := ring.NewModulus(m)
	if err != nil {
		return nil, err
	}

	q, err := poly.Project[*big.Int, *big.Int](p, zm, zm.Reduce)
	if err != nil {
		return nil, err
	}

	vars := p.Variables()
	backend := compute.GetBackend()

	wide, err := compute.EvalGrid(backend, p, vars, span, MaxGridPoints, ring.Int)
	if err != nil {
		return nil, err
	}
	narrow, err := compute.EvalGrid(backend, q, vars, span, MaxGridPoints, func(v int64) *big.Int {
		return zm.Reduce(ring.Int(v))
	})
	if err != nil {
		return nil, err
	}

	report := &ModReport{Modulus: m, Span: span, Reduced: q, Checked: len(wide)}
	residues := make(map[int64]bool)

	for i := range wide {
		residues[narrow[i].Int64()] = true
		if zm.Reduce(wide[i]).Cmp(narrow[i]) == 0 {
			continue
		}
		pt := make(map[string]int64, len(vars))
		for k, c := range compute.Point(i, len(vars), span) {
			pt[vars[k]] = int64(c)
		}
		report.Mismatches = append(report.Mismatches, Mismatch{Point: pt, Big: wide[i], Small: narrow[i]})
	}

	for r := range residues {
		report.Residues = append(report.Residues, r)
	}
	sort.Slice(report.Residues, func(i, j int) bool { return report.Residues[i] < report.Residues[j] })
	return report, nil
}
