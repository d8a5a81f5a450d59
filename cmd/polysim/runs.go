package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/polysim/internal/config"
	"github.com/san-kum/polysim/internal/export"
	"github.com/san-kum/polysim/internal/sim"
	"github.com/san-kum/polysim/internal/storage"
	"github.com/san-kum/polysim/internal/viz"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	st.SetLogger(log)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tRING\tCTRL\tSTEPS\tPROGRAM")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ring,
			run.Controller,
			run.StepsTaken,
			strings.Join(run.Program, ","),
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.State, []sim.Control, error) {
	st := storage.New(dataDir)
	st.SetLogger(log)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	states, controls, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(states) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s has no states", runID)
	}
	return meta, states, controls, nil
}

func selectedWires(meta *storage.RunMetadata, states []sim.State) []string {
	if len(wires) > 0 {
		return wires
	}
	if len(meta.StateWires) > 0 {
		return meta.StateWires
	}
	return states[0].Wires()
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	styles := viz.NewStyles(viz.GetTheme(theme))
	fmt.Println(styles.Header.Render("run " + meta.ID))
	fmt.Println(styles.KV("system", meta.System) + "  " + styles.KV("ring", meta.Ring) + "  " + styles.KV("controller", meta.Controller))
	if len(meta.Program) > 0 {
		fmt.Println(styles.KV("program", strings.Join(meta.Program, ",")) + "  " + styles.KV("input", fmt.Sprint(meta.Input)))
	}
	fmt.Println(styles.KV("time", meta.Timestamp.Format("2006-01-02 15:04:05")) + "  " + styles.KV("steps", fmt.Sprint(meta.StepsTaken)))
	fmt.Println()
	fmt.Print(viz.BitTable(styles, states, selectedWires(meta, states)))

	if svgPath != "" {
		svg := export.TimingSVG(states, selectedWires(meta, states), 24, viz.GetTheme(theme))
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s over %s\n", meta.System, meta.Ring)
	fmt.Printf("samples: %d\n\n", len(states))

	for _, w := range selectedWires(meta, states) {
		trace := viz.Trace(states, w)
		fmt.Println(viz.Plot(trace, w+" vs step"))
		fmt.Println()

		if svgPath != "" {
			path := fmt.Sprintf("%s_%s.svg", strings.TrimSuffix(svgPath, ".svg"), w)
			svg := export.TraceSVG(trace, 600, 200, string(viz.GetTheme(theme).Primary))
			if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
				return fmt.Errorf("write svg: %w", err)
			}
		}
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, states, controls, err := loadRun(args[0])
	if err != nil {
		return err
	}

	path := "-"
	if len(args) > 1 {
		path = args[1]
	}

	result := &sim.Result{
		States:     states,
		Controls:   controls,
		Metrics:    meta.Metrics,
		StepsTaken: meta.StepsTaken,
		Stopped:    meta.Stopped,
	}
	if err := storage.ExportJSON(path, *meta, result); err != nil {
		return err
	}
	if path != "-" {
		fmt.Printf("exported %s to %s\n", meta.ID, path)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	systems := make([]string, 0, len(config.Presets))
	if len(args) > 0 {
		systems = append(systems, args[0])
	} else {
		for s := range config.Presets {
			systems = append(systems, s)
		}
		sort.Strings(systems)
	}

	for _, system := range systems {
		presets := config.ListPresets(system)
		if len(presets) == 0 {
			fmt.Printf("no presets for system: %s\n", system)
			continue
		}
		sort.Strings(presets)
		fmt.Printf("presets for %s:\n", system)
		for _, p := range presets {
			cfg := config.GetPreset(system, p)
			fmt.Printf("  %-10s %s input=%d ring=%s\n", p, strings.Join(cfg.Program, ","), cfg.Input, cfg.Ring)
		}
	}
	return nil
}
