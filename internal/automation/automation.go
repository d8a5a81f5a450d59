package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/san-kum/polysim/internal/config"
	"github.com/san-kum/polysim/internal/experiment"
	"github.com/san-kum/polysim/internal/machine"
	"github.com/san-kum/polysim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted batch of runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one run of a scenario. ExpectAccept, when set, checks the
// accepted wire of a vm run.
type ScenarioRun struct {
	Label         string `yaml:"label"`
	ExpectAccept  *bool  `yaml:"expect_accept,omitempty"`
	config.Config `yaml:",inline"`
}

type Outcome struct {
	Label    string
	Config   config.Config
	Result   *sim.Result
	Accepted bool
	// Pass is false only when an expectation was set and missed.
	Pass bool
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i := range scenario.Runs {
		fillDefaults(&scenario.Runs[i].Config)
	}
	return &scenario, nil
}

func fillDefaults(cfg *config.Config) {
	def := config.DefaultConfig()
	if cfg.System == "" {
		cfg.System = def.System
	}
	if cfg.Controller == "" {
		cfg.Controller = def.Controller
	}
	if cfg.Ring.Kind == "" {
		cfg.Ring.Kind = def.Ring.Kind
	}
}

// RunScenario executes every run in order and stops at the first error.
func RunScenario(ctx context.Context, scenario *Scenario, log log15.Logger) ([]Outcome, error) {
	if log == nil {
		log = log15.New()
		log.SetHandler(log15.DiscardHandler())
	}
	outcomes := make([]Outcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		label := run.Label
		if label == "" {
			label = fmt.Sprintf("run %d", i+1)
		}
		log.Info("scenario step", "scenario", scenario.Name, "n", i+1, "of", len(scenario.Runs), "label", label)

		cfg := run.Config
		exp := experiment.New(&cfg, log)
		if err := exp.Setup(); err != nil {
			return outcomes, fmt.Errorf("%s setup: %w", label, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("%s run: %w", label, err)
		}

		out := Outcome{
			Label:    label,
			Config:   cfg,
			Result:   result,
			Accepted: result.Final().IsSet(machine.WireAccepted),
			Pass:     true,
		}
		if run.ExpectAccept != nil && *run.ExpectAccept != out.Accepted {
			out.Pass = false
			log.Warn("expectation missed", "label", label, "accepted", out.Accepted)
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// SweepResult is the outcome of one vm input.
type SweepResult struct {
	Input    int
	Accepted bool
	Final    sim.State
	Steps    int
}

// SweepInputs runs a vm config once per register value.
func SweepInputs(ctx context.Context, base config.Config, log log15.Logger) ([]SweepResult, error) {
	if base.System != "vm" {
		return nil, fmt.Errorf("input sweep needs the vm system, got %s", base.System)
	}

	results := make([]SweepResult, 0, machine.NumInputs)
	for ax := 0; ax < machine.NumInputs; ax++ {
		cfg := base
		cfg.Input = ax

		exp := experiment.New(&cfg, log)
		if err := exp.Setup(); err != nil {
			return nil, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", ax, err)
		}

		results = append(results, SweepResult{
			Input:    ax,
			Accepted: result.Final().IsSet(machine.WireAccepted),
			Final:    result.Final(),
			Steps:    result.StepsTaken,
		})
	}
	return results, nil
}

// Language encodes the accepted inputs of a sweep.
func Language(results []SweepResult) int {
	var lang []int
	for _, r := range results {
		if r.Accepted {
			lang = append(lang, r.Input)
		}
	}
	return machine.EncodeLanguage(lang)
}
