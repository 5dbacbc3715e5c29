package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/numtrace/internal/experiment"
)

var ErrInvalidID = errors.New("invalid problem id")

const problemFile = "problem.json"

// Store keeps one directory per saved problem. Only the inputs are kept;
// traces are recomputed from them on demand.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Problem struct {
	ID        string            `json:"id"`
	Note      string            `json:"note,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Config    experiment.Config `json:"config"`
}

func (s *Store) Save(cfg experiment.Config, note string) (string, error) {
	id := fmt.Sprintf("%s_%s", cfg.Method, uuid.New().String()[:8])
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	p := Problem{
		ID:        id,
		Note:      note,
		Timestamp: time.Now(),
		Config:    cfg,
	}

	f, err := os.Create(filepath.Join(dir, problemFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return id, nil
}

// List returns the saved problems, newest first. Directories without a
// readable problem file are skipped.
func (s *Store) List() ([]Problem, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Problem{}, nil
		}
		return nil, err
	}

	problems := make([]Problem, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		p, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		problems = append(problems, *p)
	}

	sort.Slice(problems, func(i, j int) bool {
		return problems[i].Timestamp.After(problems[j].Timestamp)
	})
	return problems, nil
}

func (s *Store) Load(id string) (*Problem, error) {
	if id == "" || id != filepath.Base(id) || id == "." || id == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, id, problemFile))
	if err != nil {
		return nil, err
	}

	var p Problem
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, id))
}
