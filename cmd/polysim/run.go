package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/san-kum/polysim/internal/config"
	"github.com/san-kum/polysim/internal/experiment"
	"github.com/san-kum/polysim/internal/machine"
	"github.com/san-kum/polysim/internal/storage"
	"github.com/san-kum/polysim/internal/tui"
	"github.com/san-kum/polysim/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig layers a preset, then a config file, then explicitly set
// flags over the defaults.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.System = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.System, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.System))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			loaded.System = args[0]
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("ring") {
		cfg.Ring.Kind = ringKind
	}
	if flags.Changed("modulus") {
		cfg.Ring.Modulus = modulus
		if !flags.Changed("ring") {
			cfg.Ring.Kind = "modulus"
		}
	}
	if flags.Changed("program") {
		cfg.Program = program
	}
	if flags.Changed("input") {
		cfg.Input = input
	}
	if flags.Changed("netlist") {
		cfg.Netlist = netlist
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("controller") {
		cfg.Controller = controller
	}
	if flags.Changed("stop-wire") {
		cfg.StopWire = stopWire
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(); err != nil {
		return err
	}

	styles := viz.NewStyles(viz.GetTheme(theme))
	if live {
		exp.GetSimulator().AddObserver(tui.NewLiveRenderer(os.Stdout, styles))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s over %s...\n", cfg.System, exp.Ring().Name())
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := storage.New(dataDir)
	st.SetLogger(log)
	if err := st.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		System:     cfg.System,
		Ring:       exp.Ring().Name(),
		Controller: cfg.Controller,
		Program:    cfg.Program,
		Input:      cfg.Input,
		Steps:      exp.Steps(),
		StateWires: exp.System().StateWires(),
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d", result.StepsTaken)
	if result.Stopped {
		fmt.Printf(" (stopped on %s)", cfg.StopWire)
	}
	fmt.Println()
	fmt.Println()
	fmt.Print(viz.BitTable(styles, result.States, exp.System().StateWires()))

	if cfg.System == "vm" {
		prog, err := machine.ParseProgram(cfg.Program)
		if err != nil {
			return err
		}
		got := result.Final().IsSet(machine.WireAccepted)
		fmt.Println()
		fmt.Println(styles.KV("program", machine.FormatProgram(prog)) + "  " + styles.KV("AX", fmt.Sprint(cfg.Input)))
		fmt.Println(styles.KV("polynomial", "") + styles.Verdict(got) + "  " + styles.KV("interpreter", "") + styles.Verdict(machine.Run(cfg.Input, prog)))
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %g\n", name, result.Metrics[name])
	}

	if exportPath != "" {
		meta.ID = runID
		if err := storage.ExportJSON(exportPath, meta, result); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	return nil
}
