package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cudax-labs/cudax/internal/config"
	"go.yaml.in/yaml/v3"
)

const stateFileName = "state.yaml"

// State records the switch history needed across invocations.
type State struct {
	// ActiveVersion is the version last switched to.
	ActiveVersion string `yaml:"active_version,omitempty"`
	// PreviousVersion is the version that was active before the last switch.
	PreviousVersion string `yaml:"previous_version,omitempty"`
	// SwitchedAt is when the last switch happened.
	SwitchedAt time.Time `yaml:"switched_at,omitempty"`
}

// FilePath returns the full path of the state file (~/.cudax/state.yaml).
func FilePath() string {
	return filepath.Join(config.Dir(), stateFileName)
}

// Load reads the state file. A missing file is a fresh state, not an error.
func Load() (*State, error) {
	data, err := os.ReadFile(FilePath())
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	return &s, nil
}

// Save writes the state file, creating the config directory if needed.
func Save(s *State) error {
	if err := config.EnsureDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	if err := os.WriteFile(FilePath(), data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// RecordSwitch updates the state after a successful switch to version.
// When the switch did not change the version, the previous version is left
// alone so `use -` still toggles between two distinct versions.
func RecordSwitch(version string) error {
	s, err := Load()
	if err != nil {
		return err
	}

	if s.ActiveVersion != "" && s.ActiveVersion != version {
		s.PreviousVersion = s.ActiveVersion
	}
	s.ActiveVersion = version
	s.SwitchedAt = time.Now()

	return Save(s)
}
