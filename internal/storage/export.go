package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Positions []float64 `json:"positions"`
	Profile   []float64 `json:"profile"`
}

// ExportJSON writes a run's metadata together with its profile samples.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	ys, is, err := s.LoadProfile(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Positions: ys, Profile: is})
}
