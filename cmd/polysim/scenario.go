package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/san-kum/polysim/internal/automation"
	"github.com/san-kum/polysim/internal/machine"
	"github.com/san-kum/polysim/internal/storage"
	"github.com/san-kum/polysim/internal/viz"
	"github.com/spf13/cobra"
)

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	styles := viz.NewStyles(viz.GetTheme(theme))
	fmt.Println(styles.Header.Render(scenario.Name))
	if scenario.Description != "" {
		fmt.Println(styles.Subtle.Render(scenario.Description))
	}
	fmt.Println()

	outcomes, runErr := automation.RunScenario(ctx, scenario, log)

	var st *storage.Store
	if saveRuns {
		st = storage.New(dataDir)
		st.SetLogger(log)
		if err := st.Init(); err != nil {
			return err
		}
	}

	failed := 0
	for _, o := range outcomes {
		verdict := "ok"
		if !o.Pass {
			verdict = "FAIL"
			failed++
		}
		line := fmt.Sprintf("%-24s %-8s %-5s steps=%d", o.Label, o.Config.System, o.Config.Ring, o.Result.StepsTaken)
		if o.Config.System == "vm" {
			line += fmt.Sprintf(" program=%s input=%d %s", strings.Join(o.Config.Program, ","), o.Config.Input, styles.Verdict(o.Accepted))
		}
		fmt.Printf("%s  %s\n", line, verdict)

		if st != nil {
			meta := storage.RunMetadata{
				System:     o.Config.System,
				Ring:       o.Config.Ring.String(),
				Controller: o.Config.Controller,
				Program:    o.Config.Program,
				Input:      o.Config.Input,
				Steps:      o.Config.Steps,
				StateWires: o.Result.Final().Wires(),
			}
			runID, err := st.Save(meta, o.Result)
			if err != nil {
				return err
			}
			log.Info("saved scenario run", "label", o.Label, "id", runID)
		}
	}

	if runErr != nil {
		return runErr
	}
	fmt.Printf("\n%d runs, %d failed expectations\n", len(outcomes), failed)
	if failed > 0 {
		return fmt.Errorf("%d expectations failed", failed)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, []string{"vm"})
	if err != nil {
		return err
	}

	results, err := automation.SweepInputs(cmd.Context(), *cfg, log)
	if err != nil {
		return err
	}

	styles := viz.NewStyles(viz.GetTheme(theme))
	fmt.Printf("program: %s over %s\n\n", strings.Join(cfg.Program, ","), cfg.Ring)
	for _, r := range results {
		fmt.Printf("  AX=%d  steps=%d  %s\n", r.Input, r.Steps, styles.Verdict(r.Accepted))
	}

	code := automation.Language(results)
	fmt.Printf("\nlanguage %d = %v\n", code, machine.Language(code))
	return nil
}
