package storage

import (
	"encoding/json"
	"io"

	"github.com/nnkgw/long-range-attachments/internal/sim"
)

type ExportData struct {
	ID      string               `json:"id"`
	Ticks   int                  `json:"ticks"`
	Times   []float64            `json:"times"`
	Series  map[string][]float64 `json:"series"`
	Metrics map[string]float64   `json:"metrics"`
}

// ExportJSON writes a run's sampled series and final metrics to w.
func ExportJSON(w io.Writer, runID string, result *sim.Result) error {
	data := ExportData{
		ID:      runID,
		Ticks:   result.TicksRun,
		Times:   result.Times,
		Series:  result.Series,
		Metrics: result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
