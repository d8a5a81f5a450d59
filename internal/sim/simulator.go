package sim

import (
	"context"
	"fmt"

	"github.com/inconshreveable/log15"
)

type Simulator struct {
	sys        System
	controller Controller
	metrics    []Metric
	observers  []Observer
	log        log15.Logger
}

func New(sys System, controller Controller) *Simulator {
	log := log15.New("pkg", "sim")
	log.SetHandler(log15.DiscardHandler())
	return &Simulator{
		sys:        sys,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		log:        log,
	}
}

func (s *Simulator) AddMetric(m Metric)         { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(log log15.Logger) { s.log = log }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.validateState(x0); err != nil {
		return nil, err
	}

	result := &Result{
		States:   make([]State, 0, cfg.Steps+1),
		Controls: make([]Control, 0, cfg.Steps),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	result.States = append(result.States, x.Clone())
	s.log.Debug("run start", "steps", cfg.Steps, "state", x)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if cfg.StopWire != "" && x.IsSet(cfg.StopWire) {
			result.Stopped = true
			break
		}

		u := s.controller.Compute(x, i)

		for _, m := range s.metrics {
			m.Observe(x, u, i)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, i)
		}

		newX, err := s.sys.Step(x, u)
		if err != nil {
			result.Errors = append(result.Errors, &StepError{Step: i, State: x, Wrapped: err})
			break
		}

		if cfg.ValidateState {
			if err := s.validateState(newX); err != nil {
				result.Errors = append(result.Errors, &StepError{Step: i, State: newX, Wrapped: err})
				break
			}
		}

		x = newX
		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		s.log.Debug("step", "n", i, "state", x)
	}

	for _, m := range s.metrics {
		m.Observe(x, nil, result.StepsTaken)
		result.Metrics[m.Name()] = m.Value()
	}

	if len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", cfg.Steps)
	}
	return nil
}

func (s *Simulator) validateState(x State) error {
	r := s.sys.Ring()
	for _, w := range s.sys.StateWires() {
		v, ok := x[w]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingWire, w)
		}
		if err := r.Check(v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidState, w, err)
		}
	}
	return nil
}

// RunWithCallback steps until the callback returns false or cfg.Steps is
// reached, without recording history.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, Control, int) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		u := s.controller.Compute(x, i)
		if !callback(x, u, i) {
			return nil
		}

		next, err := s.sys.Step(x, u)
		if err != nil {
			return &StepError{Step: i, State: x, Wrapped: err}
		}
		if cfg.ValidateState {
			if err := s.validateState(next); err != nil {
				return &StepError{Step: i, State: next, Wrapped: err}
			}
		}
		x = next
	}

	return nil
}
