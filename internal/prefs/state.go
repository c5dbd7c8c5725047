package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// fileState is the on-disk layout of the preferences file.
type fileState struct {
	Values    map[string]string `json:"values"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// loadState reads the preferences file. Returns an empty state if the file doesn't exist.
func loadState(filePath string) (*fileState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileState{Values: map[string]string{}}, nil
		}
		return nil, err
	}
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Values == nil {
		state.Values = map[string]string{}
	}
	return &state, nil
}

// saveState writes the preferences file, creating its directory if needed.
func saveState(filePath string, state *fileState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
