package store

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Meta     RunMetadata `json:"meta"`
	Times    []float64   `json:"times"`
	Profiles [][]float64 `json:"profiles"`
}

func ExportJSON(path string, meta *RunMetadata, times []float64, profiles [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, meta, times, profiles)
}

func ExportJSONTo(w io.Writer, meta *RunMetadata, times []float64, profiles [][]float64) error {
	return writeExport(w, meta, times, profiles)
}

func writeExport(w io.Writer, meta *RunMetadata, times []float64, profiles [][]float64) error {
	data := ExportData{
		Meta:     *meta,
		Times:    times,
		Profiles: profiles,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
