package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/debrislab/internal/experiment"
)

// Store keeps one directory per completed run: metadata.json with the
// run parameters and final metrics, samples.csv with the aggregate
// time series.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Spawned   int                `json:"spawned"`
	Culled    int                `json:"culled"`
	Metrics   map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{
	"time", "count", "kinetic_energy", "max_speed", "mean_speed", "mean_deformation", "spawned", "culled",
}

func (s *Store) Save(scenario string, dt, duration float64, seed int64, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		Steps:     result.StepsTaken,
		Spawned:   result.Spawned,
		Culled:    result.Culled,
		Metrics:   result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamplesCSV(csvFile, result.Samples); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteSamplesCSV writes the aggregate series in the store's on-disk
// column layout.
func WriteSamplesCSV(out io.Writer, samples []experiment.Sample) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write(sampleHeader); err != nil {
		return err
	}

	for _, sm := range samples {
		row := []string{
			strconv.FormatFloat(sm.Time, 'f', 6, 64),
			strconv.Itoa(sm.Count),
			strconv.FormatFloat(sm.KineticEnergy, 'f', 6, 64),
			strconv.FormatFloat(sm.MaxSpeed, 'f', 6, 64),
			strconv.FormatFloat(sm.MeanSpeed, 'f', 6, 64),
			strconv.FormatFloat(sm.MeanDeformation, 'f', 6, 64),
			strconv.Itoa(sm.Spawned),
			strconv.Itoa(sm.Culled),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]experiment.Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []experiment.Sample{}, nil
	}

	samples := make([]experiment.Sample, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]

		sm := experiment.Sample{}
		sm.Time, err = strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		sm.Count, _ = strconv.Atoi(record[1])
		sm.KineticEnergy, _ = strconv.ParseFloat(record[2], 64)
		sm.MaxSpeed, _ = strconv.ParseFloat(record[3], 64)
		sm.MeanSpeed, _ = strconv.ParseFloat(record[4], 64)
		sm.MeanDeformation, _ = strconv.ParseFloat(record[5], 64)
		sm.Spawned, _ = strconv.Atoi(record[6])
		sm.Culled, _ = strconv.Atoi(record[7])
		samples = append(samples, sm)
	}

	return samples, nil
}
