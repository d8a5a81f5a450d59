package experiment

import (
	"context"
	"fmt"
	"math/big"

	"github.com/inconshreveable/log15"
	"github.com/san-kum/polysim/internal/config"
	"github.com/san-kum/polysim/internal/machine"
	"github.com/san-kum/polysim/internal/ring"
	"github.com/san-kum/polysim/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	log       log15.Logger
	ring      ring.Ring[*big.Int]
	sys       sim.System
	simulator *sim.Simulator
}

func New(cfg *config.Config, log log15.Logger) *Experiment {
	if log == nil {
		log = log15.New()
		log.SetHandler(log15.DiscardHandler())
	}
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		log:      log.New("system", cfg.System),
	}
}

// Setup builds the ring, system, controller and metrics named by the
// config.
func (e *Experiment) Setup() error {
	if e.cfg.System == "vm" && len(e.cfg.Program) > machine.MaxProgramLen {
		return fmt.Errorf("program has %d instructions, the machine runs at most %d", len(e.cfg.Program), machine.MaxProgramLen)
	}

	r, err := e.cfg.Ring.Build()
	if err != nil {
		return err
	}
	e.ring = r

	sys, err := e.registry.GetSystem(e.cfg, r)
	if err != nil {
		return err
	}
	e.sys = sys

	ctrl, err := e.registry.GetController(e.cfg, sys)
	if err != nil {
		return err
	}

	e.simulator = sim.New(sys, ctrl)
	e.simulator.SetLogger(e.log)
	for _, m := range e.registry.DefaultMetrics(e.cfg.System) {
		e.simulator.AddMetric(m)
	}

	e.log.Debug("experiment ready", "ring", r.Name(), "controller", e.cfg.Controller, "state", sys.StateWires(), "inputs", sys.InputWires())
	return nil
}

// InitialState loads the VM register from Input, or starts a netlist with
// every state wire at zero overridden by InitState.
func (e *Experiment) InitialState() (sim.State, error) {
	if e.sys == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if e.cfg.System == "vm" {
		if e.cfg.Input < 0 || e.cfg.Input >= machine.NumInputs {
			return nil, fmt.Errorf("vm input must be in 0..%d, got %d", machine.NumInputs-1, e.cfg.Input)
		}
		return machine.InitialState(e.cfg.Input), nil
	}

	x := make(sim.State)
	for _, w := range e.sys.StateWires() {
		x[w] = new(big.Int)
	}
	for w, v := range e.cfg.InitState {
		if _, ok := x[w]; !ok {
			return nil, fmt.Errorf("init_state names unknown wire %q", w)
		}
		x[w] = big.NewInt(v)
	}
	return x, nil
}

// Steps is the configured step count, or the program length when unset.
func (e *Experiment) Steps() int {
	if e.cfg.Steps > 0 {
		return e.cfg.Steps
	}
	if e.cfg.Controller == "program" {
		return len(e.cfg.Program)
	}
	return len(e.cfg.Schedule)
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0, err := e.InitialState()
	if err != nil {
		return nil, err
	}

	simCfg := sim.Config{
		Steps:         e.Steps(),
		StopWire:      e.cfg.StopWire,
		ValidateState: true,
	}

	e.log.Info("running", "steps", simCfg.Steps, "x0", x0)
	result, err := e.simulator.Run(ctx, x0, simCfg)
	if err != nil {
		e.log.Error("run failed", "err", err)
		return result, err
	}
	e.log.Info("run complete", "steps", result.StepsTaken, "final", result.Final())
	return result, nil
}

func (e *Experiment) Ring() ring.Ring[*big.Int] { return e.ring }

func (e *Experiment) System() sim.System { return e.sys }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
