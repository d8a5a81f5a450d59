package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/san-kum/polysim/internal/analysis"
	"github.com/san-kum/polysim/internal/compute"
	"github.com/san-kum/polysim/internal/poly"
	"github.com/san-kum/polysim/internal/ring"
	"github.com/san-kum/polysim/internal/viz"
	"github.com/spf13/cobra"
)

func runDemo(cmd *cobra.Command, args []string) error {
	styles := viz.NewStyles(viz.GetTheme(theme))
	show := func(name string, p fmt.Stringer) {
		fmt.Println(styles.KV(name, p.String()))
	}

	zz := ring.Integers{}
	x := poly.MustVar[*big.Int](zz, "x")
	y := poly.MustVar[*big.Int](zz, "y")
	z := poly.MustVar[*big.Int](zz, "z")
	n := func(v int64) *big.Int { return big.NewInt(v) }

	fmt.Println(styles.Header.Render("integers"))
	show("(x+1)*(x-1)", x.AddScalar(n(1)).Mul(x.SubScalar(n(1))))
	show("(x+2)**3", x.AddScalar(n(2)).MustPow(3))
	show("(x+y)**6", x.Add(y).MustPow(6))

	p := x.AddScalar(n(5)).Mul(y.SubScalar(n(2)).MustPow(3)).Add(x.MustPow(3)).Sub(y.MustPow(4))
	show("p", p)
	v, err := p.Eval(map[string]*big.Int{"x": n(152345), "y": n(792)})
	if err != nil {
		return err
	}
	fmt.Println(styles.KV("p(152345, 792)", v.String()))

	g := y.MustPow(2).AddScalar(n(3))
	gf, err := g.Substitute("y", x.AddScalar(n(1)))
	if err != nil {
		return err
	}
	show("(y**2+3)[y := x+1]", gf)
	fmt.Println()

	fmt.Println(styles.Header.Render("rationals"))
	qq := ring.Rationals{}
	qx := poly.MustVar[*big.Rat](qq, "x")
	qy := poly.MustVar[*big.Rat](qq, "y")
	qz := poly.MustVar[*big.Rat](qq, "z")
	rp := qx.AddScalar(ring.Rat(1, 3)).MustPow(4).
		Add(qy.Sub(qz.MulScalar(ring.Rat(2, 7))).Mul(qx.Add(qy.MulScalar(ring.Rat(11, 4))))).
		Add(qz.MustPow(7).MulScalar(ring.Rat(5, 9)).Mul(qx.Neg().AddScalar(ring.Rat(2, 7))))
	fmt.Println(viz.RenderPolynomial(styles, "p", rp, 100))
	rv, err := rp.Eval(map[string]*big.Rat{"x": ring.Rat(1, 1), "y": ring.Rat(1, 1), "z": ring.Rat(1, 2)})
	if err != nil {
		return err
	}
	fmt.Println(styles.KV("p(1, 1, 1/2)", qq.Format(rv)))
	fmt.Println()

	fmt.Println(styles.Header.Render("integers mod 11"))
	z11 := ring.MustModulus(11)
	mp := x.MustPow(3).Add(y.MustPow(5).MulScalar(n(30))).Add(z.MustPow(7).MulScalar(n(-5))).AddScalar(n(15))
	mq, err := poly.Project[*big.Int, *big.Int](mp, z11, z11.Reduce)
	if err != nil {
		return err
	}
	show("p over Z", mp)
	show("p over Z/11", mq)
	mv, err := mq.Eval(map[string]*big.Int{"x": n(10), "y": n(10), "z": n(10)})
	if err != nil {
		return err
	}
	fmt.Println(styles.KV("p(10, 10, 10) mod 11", mv.String()))
	return nil
}

func runModCheck(cmd *cobra.Command, args []string) error {
	zz := ring.Integers{}
	x := poly.MustVar[*big.Int](zz, "x")
	y := poly.MustVar[*big.Int](zz, "y")
	z := poly.MustVar[*big.Int](zz, "z")
	n := func(v int64) *big.Int { return big.NewInt(v) }

	p := x.MustPow(3).MulScalar(n(9)).Mul(z.AddScalar(n(3))).
		Add(y.MustPow(6).MustPow(2).MulScalar(n(4)).MulScalar(n(8)).Mul(y.MustPow(8))).
		Add(z.MustPow(6).MulScalar(n(6)).MulScalar(n(3))).
		Add(x.AddScalar(n(9)).MustPow(2))

	if err := compute.SetBackend(compute.NewCPUBackend(workers)); err != nil {
		return err
	}
	backend := compute.GetBackend()
	log.Debug("grid backend", "name", backend.Name(), "workers", backend.Workers())

	styles := viz.NewStyles(viz.GetTheme(theme))
	fmt.Println(styles.KV("p", p.String()))

	report, err := analysis.ModularCheck(p, checkModulus, span)
	if err != nil {
		return err
	}
	fmt.Println(styles.KV(fmt.Sprintf("p mod %d", checkModulus), report.Reduced.String()))
	fmt.Println(styles.KV("points", fmt.Sprint(report.Checked)))

	residues := make([]string, len(report.Residues))
	for i, r := range report.Residues {
		residues[i] = fmt.Sprint(r)
	}
	fmt.Println(styles.KV("residues seen", strings.Join(residues, " ")))

	if !report.OK() {
		for _, mm := range report.Mismatches {
			log.Error("mismatch", "point", mm.Point, "p", mm.Big, "q", mm.Small)
		}
		return fmt.Errorf("%d of %d points disagree", len(report.Mismatches), report.Checked)
	}
	fmt.Println(styles.Accept.Render("p(x) mod m == q(x mod m) at every point"))
	return nil
}
