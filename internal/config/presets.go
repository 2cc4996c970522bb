package config

import "sort"

var presets = map[string]*Config{
	// Classic demo setup: 30x30 hanging cloth, LRA on, no slack.
	"default": Default(),
	// One solver iteration, LRA off: shows the rubbery stretching LRA
	// exists to fix.
	"lowiter": {
		Width: 30, Height: 30, Spacing: 0.05, Pin: PinCorners,
		Dt: 1.0 / 60.0, Ticks: 600, Iterations: 1,
		LRA: false, Slack: 1, Damping: 0.99, Gravity: 9.8,
	},
	// Same single iteration with LRA back on.
	"lowiter-lra": {
		Width: 30, Height: 30, Spacing: 0.05, Pin: PinCorners,
		Dt: 1.0 / 60.0, Ticks: 600, Iterations: 1,
		LRA: true, Slack: 1, Damping: 0.99, Gravity: 9.8,
	},
	// 20% controlled stretch past the attachment limits.
	"stretchy": {
		Width: 30, Height: 30, Spacing: 0.05, Pin: PinCorners,
		Dt: 1.0 / 60.0, Ticks: 600, Iterations: 5,
		LRA: true, Slack: 1.2, Damping: 0.99, Gravity: 9.8,
	},
	// High iteration count, tight cloth; LRA barely fires here.
	"tight": {
		Width: 30, Height: 30, Spacing: 0.05, Pin: PinCorners,
		Dt: 1.0 / 60.0, Ticks: 600, Iterations: 10,
		LRA: true, Slack: 1, Damping: 0.99, Gravity: 9.8,
	},
	// Whole top row pinned, like a hanging curtain.
	"curtain": {
		Width: 40, Height: 25, Spacing: 0.05, Pin: PinTopRow,
		Dt: 1.0 / 60.0, Ticks: 600, Iterations: 5,
		LRA: true, Slack: 1, Damping: 0.99, Gravity: 9.8,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
