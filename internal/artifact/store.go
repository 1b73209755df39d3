// Package artifact persists fitted pipelines as gob files.
package artifact

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"bankloan/internal/pipeline"
)

var (
	ErrIO          = errors.New("artifact: io failure")
	ErrDeserialize = errors.New("artifact: not a pipeline artifact")
)

const suffix = "_model.gob"

type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = "models"
	}
	return &Store{Dir: dir}
}

// Path is where the artifact for name lives.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+suffix)
}

// Save writes p under name, replacing any previous artifact in full. The file
// is written next to its destination and renamed into place.
func (s *Store) Save(name string, p *pipeline.Pipeline) (string, error) {
	if p == nil || p.Estimator == nil {
		return "", fmt.Errorf("save %s: %w", name, pipeline.ErrNotFitted)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	dst := s.Path(name)
	tmp, err := os.CreateTemp(s.Dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}

	err = gob.NewEncoder(tmp).Encode(p)
	err = multierr.Append(err, tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), dst)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: write %s: %v", ErrIO, dst, err)
	}
	return dst, nil
}

// Load reads a pipeline written by Save.
func (s *Store) Load(path string) (*pipeline.Pipeline, error) {
	return Load(path)
}

func Load(path string) (p *pipeline.Pipeline, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	var out pipeline.Pipeline
	if err := gob.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDeserialize, path, err)
	}
	if out.Stage == nil || out.Estimator == nil {
		return nil, fmt.Errorf("%w: %s: missing stage or estimator", ErrDeserialize, path)
	}
	return &out, nil
}
