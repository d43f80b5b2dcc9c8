package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/stosim/internal/solve"
)

type ExportData struct {
	Model     string      `json:"model"`
	Algorithm string      `json:"algorithm"`
	Dt        float64     `json:"dt"`
	Duration  float64     `json:"duration"`
	Adaptive  bool        `json:"adaptive"`
	Accepted  int         `json:"accepted_steps"`
	Rejected  int         `json:"rejected_steps"`
	Times     []float64   `json:"times"`
	States    [][]float64 `json:"states"`
	Noise     [][]float64 `json:"noise"`
	Final     []float64   `json:"final_state"`
}

func exportData(model string, dt, duration float64, adaptive bool, sol *solve.Solution) ExportData {
	data := ExportData{
		Model:     model,
		Algorithm: string(sol.Algorithm),
		Dt:        dt,
		Duration:  duration,
		Adaptive:  adaptive,
		Accepted:  sol.AcceptedSteps,
		Rejected:  sol.RejectedSteps,
		Times:     make([]float64, len(sol.Timeseries)),
		States:    make([][]float64, len(sol.Timeseries)),
		Noise:     make([][]float64, len(sol.Timeseries)),
		Final:     sol.U,
	}
	for i, p := range sol.Timeseries {
		data.Times[i] = p.T
		data.States[i] = p.U
		data.Noise[i] = p.W
	}
	return data
}

func ExportJSON(path string, model string, dt, duration float64, adaptive bool, sol *solve.Solution) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, model, dt, duration, adaptive, sol)
}

func ExportJSONStdout(model string, dt, duration float64, adaptive bool, sol *solve.Solution) error {
	return writeJSON(os.Stdout, model, dt, duration, adaptive, sol)
}

func writeJSON(w io.Writer, model string, dt, duration float64, adaptive bool, sol *solve.Solution) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(model, dt, duration, adaptive, sol))
}
