package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/experiment"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Diagram   string             `json:"diagram"`
	Timestamp time.Time          `json:"timestamp"`
	Params    experiment.Params  `json:"params"`
	Interval  time.Duration      `json:"interval"`
	Dt        float64            `json:"dt"`
	Ticks     int                `json:"ticks"`
	Frames    int                `json:"frames"`
	Bodies    []string           `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

func newRunID(diagram string) string {
	return fmt.Sprintf("%s_%s", diagram, uuid.NewString()[:8])
}

// Save writes metadata.json and trace.csv into a fresh run directory.
func (s *Store) Save(res *experiment.Result, cfg anim.Config) (string, error) {
	runID := newRunID(res.Diagram)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Diagram:   res.Diagram,
		Timestamp: time.Now(),
		Params:    res.Params,
		Interval:  cfg.Interval,
		Dt:        cfg.Dt,
		Ticks:     res.Ticks,
		Frames:    len(res.Frames),
		Metrics:   res.Metrics,
	}
	if len(res.Frames) > 0 {
		for _, b := range res.Frames[0].Bodies {
			meta.Bodies = append(meta.Bodies, b.Label)
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrace(csvFile, res.Frames); err != nil {
		return "", err
	}

	slog.Debug("run saved", "id", runID, "frames", len(res.Frames))
	return runID, nil
}

// WriteTrace writes frames as tick,time,phase,x0,v0,x1,v1,... rows.
func WriteTrace(out io.Writer, frames []anim.Frame) error {
	w := csv.NewWriter(out)

	header := []string{"tick", "time", "phase"}
	if len(frames) > 0 {
		for i := range frames[0].Bodies {
			header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("v%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Tick),
			strconv.FormatFloat(f.State.Elapsed, 'f', 6, 64),
			f.State.Phase.String(),
		}
		for _, b := range f.Bodies {
			row = append(row,
				strconv.FormatFloat(b.Position.X, 'f', 6, 64),
				strconv.FormatFloat(b.Velocity.X, 'f', 6, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads the frames of a run back. Bodies carry only their
// x position and velocity.
func (s *Store) LoadTrace(runID string) ([]anim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}
	defer file.Close()
	return ReadTrace(file)
}

func ReadTrace(in io.Reader) ([]anim.Frame, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []anim.Frame{}, nil
	}

	frames := make([]anim.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 3 || (len(record)-3)%2 != 0 {
			return nil, fmt.Errorf("trace row %d: %d fields", i+1, len(record))
		}

		tick, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("trace row %d: %w", i+1, err)
		}
		elapsed, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("trace row %d: %w", i+1, err)
		}
		phase, err := dynamo.ParsePhase(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("trace row %d: %w", i+1, err)
		}

		f := anim.Frame{Tick: tick, State: dynamo.SimulationState{Elapsed: elapsed, Phase: phase}}
		for j := 3; j+1 < len(record); j += 2 {
			x, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("trace row %d: %w", i+1, err)
			}
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("trace row %d: %w", i+1, err)
			}
			f.Bodies = append(f.Bodies, dynamo.Body{Position: dynamo.V(x, 0), Velocity: dynamo.V(v, 0)})
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
