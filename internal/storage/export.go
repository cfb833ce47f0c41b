package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Series *Series     `json:"series,omitempty"`
}

// Export writes a run and its series as indented JSON.
func Export(w io.Writer, meta RunMetadata, series *Series) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Series: series})
}

// ExportFile writes the stored run runID to path, or to stdout when path is
// empty or "-".
func (s *Store) ExportFile(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if path == "" || path == "-" {
		return Export(os.Stdout, *meta, series)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Export(file, *meta, series)
}
