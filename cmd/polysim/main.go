package main

import (
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	verbose  bool
	theme    string

	// run flags
	configFile string
	preset     string
	ringKind   string
	modulus    int64
	program    []string
	input      int
	netlist    string
	steps      int
	controller string
	stopWire   string
	live       bool
	exportPath string

	// languages flags
	plotLanguages bool
	checkPoly     bool

	// show/plot flags
	wires   []string
	svgPath string

	// scenario flags
	saveRuns bool
	sweep    bool

	// modcheck flags
	span         int
	checkModulus int64
	workers      int

	// transition flags
	reach bool

	log log15.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polysim",
		Short: "polynomial engine and boolean circuit stepping lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			log, err = newLogger(logLevel, verbose)
			return err
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".polysim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error, crit)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "run a vm program or netlist and save the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&ringKind, "ring", "integers", "coefficient ring (integers, modulus)")
	runCmd.Flags().Int64Var(&modulus, "modulus", 0, "modulus for --ring modulus")
	runCmd.Flags().StringSliceVar(&program, "program", nil, "vm program, e.g. check,decr,check")
	runCmd.Flags().IntVar(&input, "input", 0, "initial AX for the vm")
	runCmd.Flags().StringVar(&netlist, "netlist", "", "netlist file for the netlist system")
	runCmd.Flags().IntVar(&steps, "steps", 0, "steps to run (default: program or schedule length)")
	runCmd.Flags().StringVar(&controller, "controller", "program", "controller (program, idle, schedule)")
	runCmd.Flags().StringVar(&stopWire, "stop-wire", "", "stop once this wire is 1")
	runCmd.Flags().BoolVar(&live, "live", false, "print every step as it runs")
	runCmd.Flags().StringVar(&exportPath, "export", "", "also write the run as JSON (- for stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run as a timing diagram",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringSliceVar(&wires, "wires", nil, "wires to show (default: all)")
	showCmd.Flags().StringVar(&svgPath, "svg", "", "also write the timing diagram as SVG")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot wire values of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&wires, "wires", nil, "wires to plot (default: all)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write each wire trace as <path>_<wire>.svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [path]",
		Short: "export a saved run to JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list available presets for a system",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	languagesCmd := &cobra.Command{
		Use:   "languages",
		Short: "list which programs recognize each language",
		RunE:  listLanguages,
	}
	languagesCmd.Flags().BoolVar(&plotLanguages, "plot", false, "plot programs per language")
	languagesCmd.Flags().BoolVar(&checkPoly, "check-poly", false, "also recognize every program with the polynomial machine")
	languagesCmd.Flags().StringVar(&ringKind, "ring", "integers", "ring for --check-poly")
	languagesCmd.Flags().Int64Var(&modulus, "modulus", 0, "modulus for --ring modulus")

	transitionCmd := &cobra.Command{
		Use:   "transition [wire...]",
		Short: "print the vm transition polynomials",
		RunE:  showTransition,
	}
	transitionCmd.Flags().StringVar(&ringKind, "ring", "integers", "coefficient ring (integers, modulus)")
	transitionCmd.Flags().Int64Var(&modulus, "modulus", 0, "modulus for --ring modulus")
	transitionCmd.Flags().StringVar(&netlist, "netlist", "", "netlist file instead of the vm")
	transitionCmd.Flags().BoolVar(&reach, "reach", false, "explore reachable states from every vm input")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "walk through polynomial arithmetic over Z, Q and Z/11",
		RunE:  runDemo,
	}

	modcheckCmd := &cobra.Command{
		Use:   "modcheck",
		Short: "check that reducing coefficients mod m commutes with evaluation",
		RunE:  runModCheck,
	}
	modcheckCmd.Flags().Int64Var(&checkModulus, "modulus", 10, "modulus")
	modcheckCmd.Flags().IntVar(&span, "span", 20, "evaluate every variable over 0..span-1")
	modcheckCmd.Flags().IntVar(&workers, "workers", 0, "goroutines evaluating the grid (default: one per CPU)")

	tuiCmd := &cobra.Command{
		Use:   "tui [op...]",
		Short: "step the polynomial vm interactively",
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&input, "input", 0, "initial AX")
	tuiCmd.Flags().StringVar(&preset, "preset", "", "take the program and input from a vm preset")
	tuiCmd.Flags().StringVar(&ringKind, "ring", "integers", "coefficient ring (integers, modulus)")
	tuiCmd.Flags().Int64Var(&modulus, "modulus", 0, "modulus for --ring modulus")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted batch of configs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveRuns, "save", false, "save every run to the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a vm program on every input and report its language",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&preset, "preset", "", "take the program from a vm preset")
	sweepCmd.Flags().StringSliceVar(&program, "program", nil, "vm program, e.g. check,decr,check")
	sweepCmd.Flags().StringVar(&ringKind, "ring", "integers", "coefficient ring (integers, modulus)")
	sweepCmd.Flags().Int64Var(&modulus, "modulus", 0, "modulus for --ring modulus")

	rootCmd.AddCommand(scenarioCmd, sweepCmd)
	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, exportCmd, presetsCmd, languagesCmd, transitionCmd, demoCmd, modcheckCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string, verbose bool) (log15.Logger, error) {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		return nil, fmt.Errorf("bad --log-level: %w", err)
	}
	if verbose {
		lvl = log15.LvlDebug
	}
	l := log15.New("app", "polysim")
	l.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(os.Stderr, log15.TerminalFormat())))
	return l, nil
}
