package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/san-kum/polysim/internal/analysis"
	"github.com/san-kum/polysim/internal/circuit"
	"github.com/san-kum/polysim/internal/config"
	"github.com/san-kum/polysim/internal/machine"
	"github.com/san-kum/polysim/internal/ring"
	"github.com/san-kum/polysim/internal/tui"
	"github.com/san-kum/polysim/internal/viz"
	"github.com/spf13/cobra"
)

func flagRing() (ring.Ring[*big.Int], error) {
	rc := config.RingConfig{Kind: ringKind, Modulus: modulus}
	if modulus != 0 && ringKind == "integers" {
		rc.Kind = "modulus"
	}
	return rc.Build()
}

func listLanguages(cmd *cobra.Command, args []string) error {
	solutions := machine.FindSolutions()

	var m *circuit.Machine
	if checkPoly {
		r, err := flagRing()
		if err != nil {
			return err
		}
		if m, err = machine.Compile(r); err != nil {
			return err
		}
		log.Info("checking polynomial machine", "ring", r.Name(), "programs", machine.NumPrograms)
	}

	counts := make([]float64, 1<<machine.NumInputs)
	for y := len(counts) - 1; y >= 0; y-- {
		xs := solutions[y]
		counts[y] = float64(len(xs))
		fmt.Printf("Since f(x) = %d for all x in %v, %v is recognized by\n", y, xs, machine.Language(y))
		for _, x := range xs {
			fmt.Printf("   %s\n", machine.FormatProgram(machine.Disassemble(x)))
		}
		fmt.Println()
	}

	if m != nil {
		ctx := context.Background()
		mismatches := 0
		for x := 0; x < machine.NumPrograms; x++ {
			code, err := machine.RecognizePolynomial(ctx, m, machine.Disassemble(x))
			if err != nil {
				return fmt.Errorf("program %d: %w", x, err)
			}
			if want := machine.Recognize(x); code != want {
				mismatches++
				log.Warn("polynomial machine disagrees", "program", x, "got", code, "want", want)
			}
		}
		fmt.Printf("polynomial machine over %s: %d/%d programs agree\n\n", m.Ring().Name(), machine.NumPrograms-mismatches, machine.NumPrograms)
	}

	if plotLanguages {
		fmt.Println(viz.Plot(counts, "programs per language code"))
	}
	return nil
}

func showTransition(cmd *cobra.Command, args []string) error {
	r, err := flagRing()
	if err != nil {
		return err
	}

	var m *circuit.Machine
	if netlist != "" {
		n, err := circuit.LoadNetlist(netlist)
		if err != nil {
			return err
		}
		m, err = n.Compile(r)
		if err != nil {
			return err
		}
	} else {
		if m, err = machine.Compile(r); err != nil {
			return err
		}
	}

	selected := args
	if len(selected) == 0 {
		selected = m.StateWires()
	}

	styles := viz.NewStyles(viz.GetTheme(theme))
	fmt.Println(styles.Header.Render(fmt.Sprintf("%s over %s", m.Name(), r.Name())))
	for _, w := range selected {
		p, ok := m.Transition(w)
		if !ok {
			return fmt.Errorf("no state wire %q (have %v)", w, m.StateWires())
		}
		fmt.Println(viz.RenderPolynomial(styles, w+"'", p, 100))
		fmt.Println()
	}

	if reach {
		if netlist != "" {
			return fmt.Errorf("--reach explores the vm only")
		}
		for ax := 0; ax < machine.NumInputs; ax++ {
			rs, err := analysis.Explore(m, machine.InitialState(ax))
			if err != nil {
				return err
			}
			fmt.Printf("AX=%d: %d reachable states, %d edges\n", ax, len(rs.States), len(rs.Edges))
			for _, s := range rs.Order {
				fmt.Printf("   %s\n", s)
			}
		}
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	names := args
	ax := input
	if preset != "" {
		p := config.GetPreset("vm", preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets("vm"))
		}
		names = p.Program
		if !cmd.Flags().Changed("input") {
			ax = p.Input
		}
	}

	prog, err := machine.ParseProgram(names)
	if err != nil {
		return err
	}
	if ax < 0 || ax >= machine.NumInputs {
		return fmt.Errorf("input must be in 0..%d", machine.NumInputs-1)
	}

	r, err := flagRing()
	if err != nil {
		return err
	}
	m, err := machine.Compile(r)
	if err != nil {
		return err
	}
	return tui.RunStepper(m, prog, ax)
}
