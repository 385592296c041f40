// Package state persists small pieces of dashboard state between runs,
// such as the last focused module, in a YAML file under the state
// directory.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/plantview/pkg/paths"
	"gopkg.in/yaml.v3"
)

// Well-known keys.
const (
	KeyFocus  = "dashboard.focus"
	KeyServer = "dashboard.server"
)

// State is a generic key/value document.
type State map[string]interface{}

// FilePath returns the state file location.
func FilePath() (string, error) {
	dir := paths.StateDir()
	if dir == "" {
		return "", fmt.Errorf("no state directory available")
	}
	return filepath.Join(dir, "state.yml"), nil
}

// Load reads the state file. A missing file is an empty state.
func Load() (State, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if st == nil {
		st = make(State)
	}
	return st, nil
}

// Save writes st, creating the state directory if needed.
func Save(st State) error {
	path, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// GetString returns the string stored at key, or "" when the key is
// missing or holds something else.
func GetString(key string) (string, error) {
	st, err := Load()
	if err != nil {
		return "", err
	}
	s, _ := st[key].(string)
	return s, nil
}

// Update loads the state, sets every pair in values and saves it once.
// An empty string value deletes its key.
func Update(values map[string]string) error {
	st, err := Load()
	if err != nil {
		return err
	}
	for k, v := range values {
		if v == "" {
			delete(st, k)
			continue
		}
		st[k] = v
	}
	return Save(st)
}
