package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileStore reads a JSON object, or a YAML mapping for .yml/.yaml paths, of word to definitions.
// The file is read again on every Load.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (Dictionary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", s.path, err)
	}

	dictionary := Dictionary{}
	if isYAML(s.path) {
		if err := yaml.Unmarshal(contents, &dictionary); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", s.path, err)
		}
		return dictionary, nil
	}
	if err := json.Unmarshal(contents, &dictionary); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", s.path, err)
	}
	return dictionary, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
