package config

var Presets = map[string]map[string]*Config{
	"vm": {
		"even": {
			System: "vm", Controller: "program", Ring: RingConfig{Kind: "integers"},
			Program: []string{"check", "decr", "decr", "check"},
		},
		"odd": {
			System: "vm", Controller: "program", Ring: RingConfig{Kind: "integers"},
			Program: []string{"decr", "check", "decr", "decr", "check"}, Input: 1,
		},
		"big": {
			System: "vm", Controller: "program", Ring: RingConfig{Kind: "integers"},
			Program: []string{"decr", "decr", "check", "decr", "check"}, Input: 3,
		},
		"small": {
			System: "vm", Controller: "program", Ring: RingConfig{Kind: "integers"},
			Program: []string{"check", "decr", "check"},
		},
		"just_two": {
			System: "vm", Controller: "program", Ring: RingConfig{Kind: "integers"},
			Program: []string{"decr", "decr", "check"}, Input: 2,
		},
		"empty": {
			System: "vm", Controller: "program", Ring: RingConfig{Kind: "integers"},
		},
		"mod2": {
			System: "vm", Controller: "program", Ring: RingConfig{Kind: "modulus", Modulus: 2},
			Program: []string{"decr", "check", "decr", "decr", "check"}, Input: 3,
		},
		"halting": {
			System: "vm", Controller: "program", Ring: RingConfig{Kind: "integers"},
			Program: []string{"check", "check", "check", "check"}, StopWire: "halted",
		},
	},
}

func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	return names
}
