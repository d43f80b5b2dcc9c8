package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/stosim/internal/solve"
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
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
	Seed      uint64    `json:"seed"`
	Dt        float64   `json:"dt"`
	Duration  float64   `json:"duration"`
	Algorithm string    `json:"algorithm"`
	Adaptive  bool      `json:"adaptive"`
	Accepted  int       `json:"accepted_steps"`
	Rejected  int       `json:"rejected_steps"`
	Error     float64   `json:"final_error,omitempty"`
}

// Save writes a run directory holding metadata.json and a path.csv with
// one row per retained point: time, state components, then the driving
// Wiener path components.
func (s *Store) Save(model string, dt float64, duration float64, seed uint64, algorithm string, adaptive bool, finalErr float64, sol *solve.Solution) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Timestamp: time.Now(),
		Seed:      seed,
		Dt:        dt,
		Duration:  duration,
		Algorithm: algorithm,
		Adaptive:  adaptive,
		Accepted:  sol.AcceptedSteps,
		Rejected:  sol.RejectedSteps,
		Error:     finalErr,
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

	csvPath := filepath.Join(runDir, "path.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(sol.Timeseries) == 0 {
		return runID, nil
	}

	dim := len(sol.Timeseries[0].U)
	header := []string{"time"}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	for i := 0; i < dim; i++ {
		header = append(header, fmt.Sprintf("w%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range sol.Timeseries {
		row := []string{strconv.FormatFloat(p.T, 'g', -1, 64)}
		for _, val := range p.U {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		for _, val := range p.W {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
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

// LoadPath reads back the saved trajectory. The state and noise slices
// are split at the stored dimension: len(row) = 1 + 2*dim.
func (s *Store) LoadPath(runID string) (times []float64, states, noises [][]float64, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "path.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, [][]float64{}, [][]float64{}, nil
	}

	dim := (len(records[0]) - 1) / 2

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 1+2*dim {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		state := make([]float64, dim)
		noise := make([]float64, dim)
		ok := true
		for j := 0; j < dim; j++ {
			if state[j], err = strconv.ParseFloat(record[1+j], 64); err != nil {
				ok = false
				break
			}
			if noise[j], err = strconv.ParseFloat(record[1+dim+j], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		times = append(times, t)
		states = append(states, state)
		noises = append(noises, noise)
	}

	return times, states, noises, nil
}
