package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/particle"
	"github.com/san-kum/rigidsim/internal/sim"
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
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	ForceField string             `json:"force_field"`
	Backend    string             `json:"backend"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata.json, a drift.csv of the
// per-step momentum drift, and a centrals.csv with the final central
// positions and orientations.
func (s *Store) Save(cfg *config.Config, snap *particle.Snapshot, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Steps:      result.StepsTaken,
		ForceField: cfg.ForceField.Name,
		Backend:    cfg.Backend,
		Metrics:    result.Metrics,
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

	if err := s.writeDrift(filepath.Join(runDir, "drift.csv"), result); err != nil {
		return "", err
	}
	if err := s.writeCentrals(filepath.Join(runDir, "centrals.csv"), snap); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeDrift(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "momentum_drift"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Drift[i], 'e', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeCentrals(path string, snap *particle.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"tag", "x", "y", "z", "qw", "qx", "qy", "qz", "ix", "iy", "iz"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < snap.N; i++ {
		t := snap.Body[i]
		if t == particle.NoBody || snap.Tag[i] != t {
			continue
		}
		row := []string{strconv.Itoa(snap.Tag[i])}
		for a := 0; a < 3; a++ {
			row = append(row, strconv.FormatFloat(snap.Pos[i][a], 'f', 6, 64))
		}
		for c := 0; c < 4; c++ {
			row = append(row, strconv.FormatFloat(snap.Orient[i][c], 'f', 6, 64))
		}
		for a := 0; a < 3; a++ {
			row = append(row, strconv.Itoa(snap.Image[i][a]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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
