// Package rawstore persists per-département collection batches as JSON files.
//
// One file per département; the presence of a file marks that département as
// completed, which is the state the manual retry pass keys off. Writes are
// atomic (temp file + rename) so an interrupted run never leaves a torn
// capture behind.
package rawstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parisfoot/idfplayers/internal/domain/model"
)

// File layout constants.
const (
	filePattern = "players_%s.json"
	dirPerm     = 0o755
	filePerm    = 0o644
)

// Store reads and writes raw batches under a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrStore)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(dept string) string {
	return filepath.Join(s.dir, fmt.Sprintf(filePattern, dept))
}

// Save persists one batch, replacing any previous capture for the same
// département.
func (s *Store) Save(batch model.Batch) error {
	if batch.Department == "" {
		return fmt.Errorf("%w: batch without département", ErrStore)
	}
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	tmp, err := os.CreateTemp(s.dir, "players_*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := os.Rename(tmp.Name(), s.path(batch.Department)); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	return nil
}

// Load reads the capture for one département. Returns ErrNotFound when that
// département has not completed yet.
func (s *Store) Load(dept string) (model.Batch, error) {
	data, err := os.ReadFile(s.path(dept))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Batch{}, fmt.Errorf("%w: département %s", ErrNotFound, dept)
		}
		return model.Batch{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	var batch model.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return model.Batch{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return batch, nil
}

// LoadAll reads every persisted batch, ordered by département code so the
// first-seen-wins merge stays deterministic across runs.
func (s *Store) LoadAll() ([]model.Batch, error) {
	depts, err := s.Completed()
	if err != nil {
		return nil, err
	}
	batches := make([]model.Batch, 0, len(depts))
	for _, dept := range depts {
		batch, err := s.Load(dept)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// Completed lists the département codes with a persisted capture, sorted.
func (s *Store) Completed() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, fmt.Sprintf(filePattern, "*")))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	depts := make([]string, 0, len(matches))
	for _, match := range matches {
		name := filepath.Base(match)
		dept := strings.TrimSuffix(strings.TrimPrefix(name, "players_"), ".json")
		if dept != "" && dept != name {
			depts = append(depts, dept)
		}
	}
	sort.Strings(depts)
	return depts, nil
}

// Missing returns the codes from all that have no persisted capture, in the
// order given.
func (s *Store) Missing(all []string) ([]string, error) {
	completed, err := s.Completed()
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(completed))
	for _, dept := range completed {
		done[dept] = struct{}{}
	}
	var missing []string
	for _, dept := range all {
		if _, ok := done[dept]; !ok {
			missing = append(missing, dept)
		}
	}
	return missing, nil
}
