package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnkgw/long-range-attachments/internal/config"
	"github.com/nnkgw/long-range-attachments/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Times: []float64{0.1, 0.2, 0.3},
		Series: map[string][]float64{
			"edge_strain":    {0.01, 0.02, 0.015},
			"anchor_stretch": {0.9, 1.0, 1.0},
		},
		Metrics:  map[string]float64{"edge_strain": 0.02, "anchor_stretch": 1.0},
		TicksRun: 3,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg := config.Default()
	cfg.Width = 8

	runID, err := st.Save(cfg, sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, 8, meta.Config.Width)
	assert.Equal(t, 3, meta.Ticks)
	assert.Equal(t, 0.02, meta.Metrics["edge_strain"])
}

func TestLoadFrames(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(config.Default(), sampleResult())
	require.NoError(t, err)

	names, times, rows, err := st.LoadFrames(runID)
	require.NoError(t, err)
	// Columns come back sorted by name.
	assert.Equal(t, []string{"anchor_stretch", "edge_strain"}, names)
	require.Len(t, times, 3)
	assert.InDelta(t, 0.2, times[1], 1e-9)
	require.Len(t, rows, 3)
	assert.InDelta(t, 1.0, rows[1][0], 1e-9)
	assert.InDelta(t, 0.02, rows[1][1], 1e-9)
}

func TestListSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	_, err := st.Save(config.Default(), sampleResult())
	require.NoError(t, err)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/lracloth-data")
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, "cloth_1", sampleResult()))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "cloth_1", data.ID)
	assert.Equal(t, 3, data.Ticks)
	assert.Len(t, data.Series["edge_strain"], 3)
}
