package config

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/polysim/internal/ring"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSystem     = "vm"
	DefaultController = "program"
	DefaultRing       = "integers"
)

type Config struct {
	System     string             `yaml:"system" toml:"system"`
	Controller string             `yaml:"controller" toml:"controller"`
	Ring       RingConfig         `yaml:"ring" toml:"ring"`
	Program    []string           `yaml:"program,omitempty" toml:"program,omitempty"`
	Input      int                `yaml:"input" toml:"input"`
	Netlist    string             `yaml:"netlist,omitempty" toml:"netlist,omitempty"`
	Steps      int                `yaml:"steps" toml:"steps"`
	Schedule   []map[string]int64 `yaml:"schedule,omitempty" toml:"schedule,omitempty"`
	InitState  map[string]int64   `yaml:"init_state,omitempty" toml:"init_state,omitempty"`
	StopWire   string             `yaml:"stop_wire,omitempty" toml:"stop_wire,omitempty"`
}

// RingConfig selects the coefficient ring. Kind is "integers" or
// "modulus"; Modulus is only read for the latter.
type RingConfig struct {
	Kind    string `yaml:"kind" toml:"kind"`
	Modulus int64  `yaml:"modulus,omitempty" toml:"modulus,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		System:     DefaultSystem,
		Controller: DefaultController,
		Ring:       RingConfig{Kind: DefaultRing},
	}
}

// Build returns the configured ring. Simulated wires hold integers, so
// the rationals are not offered here.
func (rc RingConfig) Build() (ring.Ring[*big.Int], error) {
	switch strings.ToLower(rc.Kind) {
	case "", "integers", "z":
		return ring.Integers{}, nil
	case "modulus", "zmod":
		m, err := ring.NewModulus(rc.Modulus)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown ring kind %q", rc.Kind)
}

func (rc RingConfig) String() string {
	if strings.EqualFold(rc.Kind, "modulus") || strings.EqualFold(rc.Kind, "zmod") {
		return fmt.Sprintf("Z/%d", rc.Modulus)
	}
	return "Z"
}

// Load reads a YAML or TOML config, chosen by file extension, over the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config keys: %v", undecoded)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// ScheduleWires lists every input wire named in the schedule, sorted.
func (c *Config) ScheduleWires() []string {
	seen := make(map[string]bool)
	for _, row := range c.Schedule {
		for w := range row {
			seen[w] = true
		}
	}
	wires := make([]string, 0, len(seen))
	for w := range seen {
		wires = append(wires, w)
	}
	sort.Strings(wires)
	return wires
}
