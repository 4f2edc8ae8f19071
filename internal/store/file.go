package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hireloop/talent-scout/internal/candidate"
)

// FileSource reads the candidate snapshot from a JSON file holding
// {"items": [...]}, the same shape DumpToTmpFile writes.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) FetchAll(_ context.Context) (*candidate.Candidates, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &candidate.Candidates{}, nil
	}

	var candidates candidate.Candidates
	if err := json.NewDecoder(file).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode candidate file %q: %w", s.path, err)
	}

	applyDefaults(&candidates)
	return &candidates, nil
}
