package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/debrislab/internal/experiment"
)

type ExportData struct {
	Scenario string              `json:"scenario"`
	Seed     int64               `json:"seed"`
	Dt       float64             `json:"dt"`
	Duration float64             `json:"duration"`
	Steps    int                 `json:"steps"`
	Metrics  map[string]float64  `json:"metrics"`
	Samples  []experiment.Sample `json:"samples"`
}

// ExportJSON writes a stored run as one self-contained JSON document.
func ExportJSON(out io.Writer, meta *RunMetadata, samples []experiment.Sample) error {
	data := ExportData{
		Scenario: meta.Scenario,
		Seed:     meta.Seed,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    meta.Steps,
		Metrics:  meta.Metrics,
		Samples:  samples,
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes a stored run's sample series back out as CSV.
func ExportCSV(out io.Writer, samples []experiment.Sample) error {
	return WriteSamplesCSV(out, samples)
}
