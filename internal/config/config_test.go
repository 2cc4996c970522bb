package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
	assert.True(t, cfg.LRA)
	assert.Equal(t, 1.0, cfg.Slack)
}

func TestValidateRejectsBadGrid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny grid", func(c *Config) { c.Width = 1 }},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }},
		{"negative ticks", func(c *Config) { c.Ticks = -1 }},
		{"bad pin mode", func(c *Config) { c.Pin = "bottom" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateClampsTunables(t *testing.T) {
	cfg := Default()
	cfg.Slack = 0.3
	cfg.Iterations = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.0, cfg.Slack)
	assert.Equal(t, 1, cfg.Iterations)
}

func TestValidateDefaultsEmptyPin(t *testing.T) {
	cfg := Default()
	cfg.Pin = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, PinCorners, cfg.Pin)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := Default()
	cfg.Width = 12
	cfg.Slack = 1.15
	cfg.Pin = PinOrigin
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Width)
	assert.Equal(t, 1.15, loaded.Slack)
	assert.Equal(t, PinOrigin, loaded.Pin)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGridPinModes(t *testing.T) {
	cfg := Default()
	cfg.Width = 4
	cfg.Height = 3

	cfg.Pin = PinTopRow
	g := cfg.Grid()
	assert.True(t, g.Pin(2, 0))
	assert.False(t, g.Pin(2, 1))

	cfg.Pin = PinOrigin
	g = cfg.Grid()
	assert.True(t, g.Pin(0, 0))
	assert.False(t, g.Pin(3, 0))

	cfg.Pin = PinCorners
	g = cfg.Grid()
	assert.True(t, g.Pin(0, 0))
	assert.True(t, g.Pin(3, 0))
	assert.False(t, g.Pin(1, 0))
}

func TestStepParamsConversion(t *testing.T) {
	cfg := Default()
	cfg.Gravity = 9.8
	p := cfg.StepParams()
	assert.Equal(t, -9.8, p.Gravity.Y)
	assert.Equal(t, cfg.Iterations, p.Iterations)
	assert.True(t, p.LRA)
}

func TestPresets(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))
	assert.NotEmpty(t, ListPresets())

	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}

	// Presets are copies; mutating one must not poison the table.
	cfg := GetPreset("stretchy")
	cfg.Width = 2
	assert.Equal(t, 30, GetPreset("stretchy").Width)
}
