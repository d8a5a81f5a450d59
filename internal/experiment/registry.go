package experiment

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/san-kum/polysim/internal/circuit"
	"github.com/san-kum/polysim/internal/config"
	"github.com/san-kum/polysim/internal/machine"
	"github.com/san-kum/polysim/internal/metrics"
	"github.com/san-kum/polysim/internal/ring"
	"github.com/san-kum/polysim/internal/sim"
)

type systemFactory func(cfg *config.Config, r ring.Ring[*big.Int]) (sim.System, error)

type controllerFactory func(cfg *config.Config, sys sim.System) (sim.Controller, error)

type Registry struct {
	systems     map[string]systemFactory
	controllers map[string]controllerFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		systems:     make(map[string]systemFactory),
		controllers: make(map[string]controllerFactory),
	}

	r.systems["vm"] = func(cfg *config.Config, rg ring.Ring[*big.Int]) (sim.System, error) {
		m, err := machine.Compile(rg)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	r.systems["netlist"] = func(cfg *config.Config, rg ring.Ring[*big.Int]) (sim.System, error) {
		if cfg.Netlist == "" {
			return nil, fmt.Errorf("netlist system needs a netlist file")
		}
		n, err := circuit.LoadNetlist(cfg.Netlist)
		if err != nil {
			return nil, err
		}
		m, err := n.Compile(rg)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	r.controllers["program"] = func(cfg *config.Config, sys sim.System) (sim.Controller, error) {
		prog, err := machine.ParseProgram(cfg.Program)
		if err != nil {
			return nil, err
		}
		return machine.NewProgramController(prog), nil
	}
	r.controllers["idle"] = func(cfg *config.Config, sys sim.System) (sim.Controller, error) {
		return sim.NewIdle(sys.InputWires()), nil
	}
	r.controllers["schedule"] = func(cfg *config.Config, sys sim.System) (sim.Controller, error) {
		inputs := sys.InputWires()
		known := make(map[string]bool, len(inputs))
		for _, w := range inputs {
			known[w] = true
		}
		for _, w := range cfg.ScheduleWires() {
			if !known[w] {
				return nil, fmt.Errorf("schedule drives unknown input %q", w)
			}
		}
		return sim.NewSchedule(inputs, cfg.Schedule), nil
	}

	return r
}

func (r *Registry) GetSystem(cfg *config.Config, rg ring.Ring[*big.Int]) (sim.System, error) {
	fn, ok := r.systems[cfg.System]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", cfg.System)
	}
	return fn(cfg, rg)
}

func (r *Registry) GetController(cfg *config.Config, sys sim.System) (sim.Controller, error) {
	fn, ok := r.controllers[cfg.Controller]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", cfg.Controller)
	}
	return fn(cfg, sys)
}

func (r *Registry) ListSystems() []string {
	return sortedNames(r.systems)
}

func (r *Registry) ListControllers() []string {
	return sortedNames(r.controllers)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(system string) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewToggles(),
		metrics.NewInputActivity(),
		metrics.NewBitValidity(),
	}
	if system == "vm" {
		ms = append(ms,
			metrics.NewSettleStep(machine.WireHalted),
			metrics.NewSettleStep(machine.WireAccepted),
		)
	}
	return ms
}
