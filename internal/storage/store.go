// Package storage keeps headless bench runs on disk: one directory per run
// holding metadata.json and the sampled screen profile as profile.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/wavelab/internal/experiment"
)

var ErrNoRun = errors.New("storage: run not found")

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
	Bench     string             `json:"bench"`
	Variant   string             `json:"variant"`
	Timestamp time.Time          `json:"timestamp"`
	Params    map[string]float64 `json:"params"`
	Frames    int                `json:"frames"`
	Time      float64            `json:"time"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run under a new id derived from the bench name. The run's
// own metrics are merged under the caller's.
func (s *Store) Save(bench string, result *experiment.Result, metrics map[string]float64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", bench, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Bench:     bench,
		Variant:   result.Variant.String(),
		Timestamp: now,
		Params:    result.Params.Get(),
		Frames:    result.Frames,
		Time:      result.Time,
		Samples:   len(result.Profile),
		Metrics:   metrics,
	}
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}
	for k, v := range result.Metrics {
		if _, ok := meta.Metrics[k]; !ok {
			meta.Metrics[k] = v
		}
	}
	meta.Metrics["readout_y"] = result.ReadoutY
	meta.Metrics["readout_i"] = result.ReadoutI
	meta.Metrics["screen_distance_m"] = result.Distance
	meta.Metrics["cache_hits"] = float64(result.Cache.Hits)
	meta.Metrics["cache_misses"] = float64(result.Cache.Misses)

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeProfile(filepath.Join(runDir, "profile.csv"), result.Positions, result.Profile); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProfile(path string, ys, is []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"y_m", "intensity"}); err != nil {
		return err
	}
	for k := range ys {
		row := []string{
			strconv.FormatFloat(ys[k], 'g', -1, 64),
			strconv.FormatFloat(is[k], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadProfile reads back the sampled positions and intensities of a run.
func (s *Store) LoadProfile(runID string) (ys, is []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "profile.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	ys = make([]float64, 0, len(records)-1)
	is = make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		y, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		i, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		ys = append(ys, y)
		is = append(is, i)
	}
	return ys, is, nil
}
