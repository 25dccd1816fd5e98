package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/coastsim/internal/config"
	"github.com/san-kum/coastsim/internal/coupler"
)

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
	Timestamp time.Time          `json:"timestamp"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Spacing   float64            `json:"spacing"`
	Asymmetry float64            `json:"asymmetry"`
	Highness  float64            `json:"highness"`
	Height    float64            `json:"height"`
	Period    float64            `json:"period"`
	Seed      int64              `json:"seed"`
	Steps     int                `json:"steps"`
	Probes    map[string]float64 `json:"probes"`
}

// Save writes one run directory: metadata.json plus the recorded shoreline
// profiles as shoreline.csv.
func (s *Store) Save(cfg *config.Config, result *coupler.Result, times []float64, profiles [][]float64) (string, error) {
	runID := fmt.Sprintf("coast_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Rows:      cfg.Coastline.Rows,
		Cols:      cfg.Coastline.Cols,
		Spacing:   cfg.Coastline.Spacing,
		Asymmetry: cfg.Waves.Asymmetry,
		Highness:  cfg.Waves.Highness,
		Height:    cfg.Waves.Height,
		Period:    cfg.Waves.Period,
		Seed:      cfg.Waves.Seed,
		Steps:     result.StepsTaken,
		Probes:    result.Probes,
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

	csvPath := filepath.Join(runDir, "shoreline.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(profiles) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range profiles[0] {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, profile := range profiles {
		row := []string{strconv.FormatFloat(times[i], 'f', 2, 64)}
		for _, val := range profile {
			row = append(row, strconv.FormatFloat(val, 'f', 3, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

// LoadProfiles reads back the recorded shoreline snapshots of a run.
func (s *Store) LoadProfiles(runID string) ([][]float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "shoreline.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	profiles := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		profile := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			profile = append(profile, val)
		}
		profiles = append(profiles, profile)
	}

	return profiles, times, nil
}
