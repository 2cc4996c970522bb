// Package config holds the yaml-backed run configuration and named presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
)

// Pin modes accepted by Config.Pin.
const (
	PinCorners = "corners"
	PinTopRow  = "top-row"
	PinOrigin  = "origin"
)

type Config struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Spacing    float64 `yaml:"spacing"`
	Pin        string  `yaml:"pin"`
	Dt         float64 `yaml:"dt"`
	Ticks      int     `yaml:"ticks"`
	Iterations int     `yaml:"iterations"`
	LRA        bool    `yaml:"lra"`
	Slack      float64 `yaml:"slack"`
	Damping    float64 `yaml:"damping"`
	Gravity    float64 `yaml:"gravity"` // magnitude, applied along -y
}

func Default() *Config {
	return &Config{
		Width:      cloth.DefaultWidth,
		Height:     cloth.DefaultHeight,
		Spacing:    cloth.DefaultSpacing,
		Pin:        PinCorners,
		Dt:         cloth.DefaultDt,
		Ticks:      600,
		Iterations: cloth.DefaultIterations,
		LRA:        true,
		Slack:      cloth.DefaultSlack,
		Damping:    cloth.DefaultDamping,
		Gravity:    9.8,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects structurally unusable values and clamps the tunables the
// simulation itself clamps, so a validated config always converts into
// valid step parameters.
func (c *Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("grid must be at least 2x2, got %dx%d", c.Width, c.Height)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("spacing must be positive, got %f", c.Spacing)
	}
	switch c.Pin {
	case PinCorners, PinTopRow, PinOrigin:
	case "":
		c.Pin = PinCorners
	default:
		return fmt.Errorf("unknown pin mode %q", c.Pin)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.Slack < 1 {
		c.Slack = 1
	}
	if c.Iterations < 1 {
		c.Iterations = 1
	}
	return nil
}

// Grid converts the config into a build configuration.
func (c *Config) Grid() cloth.Grid {
	var pin cloth.PinFunc
	switch c.Pin {
	case PinTopRow:
		pin = cloth.PinTopRow()
	case PinOrigin:
		pin = cloth.PinOrigin()
	default:
		pin = cloth.PinTopCorners(c.Width)
	}
	return cloth.Grid{Width: c.Width, Height: c.Height, Spacing: c.Spacing, Pin: pin}
}

// StepParams converts the config into per-tick parameters.
func (c *Config) StepParams() cloth.StepParams {
	p := cloth.StepParams{
		Dt:         c.Dt,
		Gravity:    cloth.Vec3{Y: -c.Gravity},
		Iterations: c.Iterations,
		LRA:        c.LRA,
		Slack:      c.Slack,
		Damping:    c.Damping,
	}
	p.Clamp()
	return p
}
