package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15"
	"github.com/san-kum/polysim/internal/sim"
)

// controlPrefix marks input columns in states.csv.
const controlPrefix = "u."

type Store struct {
	baseDir string
	log     log15.Logger
}

func New(baseDir string) *Store {
	log := log15.New("pkg", "storage")
	log.SetHandler(log15.DiscardHandler())
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) SetLogger(log log15.Logger) { s.log = log }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	System     string             `json:"system"`
	Ring       string             `json:"ring"`
	Controller string             `json:"controller"`
	Timestamp  time.Time          `json:"timestamp"`
	Program    []string           `json:"program,omitempty"`
	Input      int                `json:"input"`
	Steps      int                `json:"steps"`
	StepsTaken int                `json:"steps_taken"`
	Stopped    bool               `json:"stopped"`
	StateWires []string           `json:"state_wires"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and states.csv under a fresh run id and
// returns the id. ID, Timestamp, StepsTaken, Stopped and Metrics are
// filled in from result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d_%s", meta.System, time.Now().Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.StepsTaken = result.StepsTaken
	meta.Stopped = result.Stopped
	meta.Metrics = result.Metrics
	if len(meta.StateWires) == 0 && len(result.States) > 0 {
		meta.StateWires = result.States[0].Wires()
	}

	if err := writeRun(runDir, meta, result); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.log.Warn("could not remove partial run", "dir", runDir, "err", rmErr)
		}
		return "", err
	}

	s.log.Info("run saved", "id", runID, "steps", result.StepsTaken)
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *sim.Result) error {
	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	return writeStates(filepath.Join(runDir, "states.csv"), result)
}

func writeStates(path string, result *sim.Result) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeCSV(csvFile, result); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

func writeCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)
	if len(result.States) == 0 {
		return nil
	}

	stateWires := result.States[0].Wires()
	var inputWires []string
	if len(result.Controls) > 0 {
		for k := range result.Controls[0] {
			inputWires = append(inputWires, k)
		}
		sort.Strings(inputWires)
	}

	header := []string{"step"}
	header = append(header, stateWires...)
	for _, w := range inputWires {
		header = append(header, controlPrefix+w)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, x := range result.States {
		row := []string{strconv.Itoa(i)}
		for _, wire := range stateWires {
			row = append(row, cell(x[wire]))
		}
		for _, wire := range inputWires {
			if i < len(result.Controls) {
				row = append(row, cell(result.Controls[i][wire]))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func cell(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Debug("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadStates reads states.csv back. The final state has no control, so
// controls is one shorter than states.
func (s *Store) LoadStates(runID string) ([]sim.State, []sim.Control, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
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
		return []sim.State{}, []sim.Control{}, nil
	}

	header := records[0]
	states := make([]sim.State, 0, len(records)-1)
	controls := make([]sim.Control, 0, len(records)-1)

	for _, record := range records[1:] {
		x := make(sim.State)
		u := make(sim.Control)
		for j := 1; j < len(record) && j < len(header); j++ {
			if record[j] == "" {
				continue
			}
			v, ok := new(big.Int).SetString(record[j], 10)
			if !ok {
				return nil, nil, fmt.Errorf("row %s, column %s: bad value %q", record[0], header[j], record[j])
			}
			if name, isInput := strings.CutPrefix(header[j], controlPrefix); isInput {
				u[name] = v
			} else {
				x[header[j]] = v
			}
		}
		states = append(states, x)
		if len(u) > 0 {
			controls = append(controls, u)
		}
	}

	return states, controls, nil
}
