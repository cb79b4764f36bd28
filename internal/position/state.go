package position

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"RetestSentinel/internal/model"
)

// LoadState reads positions from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*model.PositionState, error) {
	state := &model.PositionState{Positions: make(map[string]*model.Position)}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, fmt.Errorf("read position state: %w", err)
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse position state: %w", err)
	}
	if state.Positions == nil {
		state.Positions = make(map[string]*model.Position)
	}
	return state, nil
}

// SaveState writes positions to a JSON file, replacing it atomically.
func SaveState(filePath string, state *model.PositionState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write position state: %w", err)
	}
	return os.Rename(tmp, filePath)
}
