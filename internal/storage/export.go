package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/polysim/internal/sim"
)

type ExportData struct {
	System     string              `json:"system"`
	Ring       string              `json:"ring"`
	Controller string              `json:"controller"`
	Steps      int                 `json:"steps"`
	Stopped    bool                `json:"stopped"`
	States     []map[string]string `json:"states"`
	Controls   []map[string]string `json:"controls"`
	Metrics    map[string]float64  `json:"metrics"`
}

func NewExportData(meta RunMetadata, result *sim.Result) ExportData {
	data := ExportData{
		System:     meta.System,
		Ring:       meta.Ring,
		Controller: meta.Controller,
		Steps:      result.StepsTaken,
		Stopped:    result.Stopped,
		States:     make([]map[string]string, len(result.States)),
		Controls:   make([]map[string]string, len(result.Controls)),
		Metrics:    result.Metrics,
	}

	for i, x := range result.States {
		data.States[i] = decimal(x)
	}
	for i, u := range result.Controls {
		data.Controls[i] = decimal(u)
	}
	return data
}

func decimal[M ~map[string]V, V interface{ String() string }](m M) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

// ExportJSON writes the run to path, or to stdout when path is "-".
func ExportJSON(path string, meta RunMetadata, result *sim.Result) error {
	if path == "-" {
		return WriteJSON(os.Stdout, meta, result)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, result)
}

func WriteJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, result))
}
