// Package seed reads the collection the mock service starts from.
package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/todos/internal/model"
)

// Seed files are read-only input: JSON (comments and trailing commas are
// fine) or YAML, a single top-level list of todos.

var (
	ErrInvalidSeed       = errors.New("invalid seed")
	ErrUnsupportedFormat = errors.New("unsupported seed format")
)

func Load(path string) ([]model.Todo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var todos []model.Todo
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc", ".hujson":
		std, err := hujson.Standardize(b)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		if err := json.Unmarshal(std, &todos); err != nil {
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &todos); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if todos == nil {
		todos = []model.Todo{}
	}
	if err := validate(todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func validate(todos []model.Todo) error {
	seen := make(map[string]int, len(todos))
	for i, t := range todos {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidSeed, i+1)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: item %q has no title", ErrInvalidSeed, t.ID)
		}
		if prev, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: id %q used by items %d and %d", ErrInvalidSeed, t.ID, prev+1, i+1)
		}
		seen[t.ID] = i
	}
	return nil
}
