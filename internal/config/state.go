// Package config holds the two configuration surfaces: the persisted
// runtime state mutated by the control surface (JSON) and the static
// daemon settings read once at startup (TOML).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"runcat/internal/metrics"
	"runcat/internal/schedule"
	"runcat/internal/utils"
)

// stateData is the durable record written on every control-surface change.
type stateData struct {
	DarkMode            bool           `json:"dark_mode"`
	Speed               schedule.Speed `json:"speed"`
	MonitorMode         metrics.Kind   `json:"monitor_mode"`
	PositiveCorrelation bool           `json:"positive_correlation,omitempty"`
}

func defaultStateData() stateData {
	return stateData{
		DarkMode:    false,
		Speed:       schedule.SpeedMedium,
		MonitorMode: metrics.KindCPU,
	}
}

// State manages the persisted runtime configuration with a JSON file
// backend. It is constructed explicitly and passed to whoever needs it;
// there is no process-wide instance.
type State struct {
	path  string
	log   *utils.Logger
	mu    sync.Mutex
	data  stateData
	dirty bool
}

// LoadState reads persisted state from disk. A missing file yields
// defaults; a malformed file yields defaults and a log line. Loading
// never fails the caller.
func LoadState(path string, logger *utils.Logger) *State {
	s := &State{path: path, log: logger, data: defaultStateData()}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s
	}
	if err != nil {
		logger.Writef("Config: read %s failed, using defaults: %v", path, err)
		return s
	}

	var data stateData
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Writef("Config: parse %s failed, using defaults: %v", path, err)
		return s
	}
	if !data.Speed.Valid() {
		logger.Writef("Config: invalid speed %q, using %q", data.Speed, s.data.Speed)
		data.Speed = s.data.Speed
	}
	if !data.MonitorMode.Valid() {
		logger.Writef("Config: invalid monitor mode %q, using %q", data.MonitorMode, s.data.MonitorMode)
		data.MonitorMode = s.data.MonitorMode
	}
	s.data = data
	return s
}

// Path returns the backing file path.
func (s *State) Path() string {
	return s.path
}

// DarkMode returns the persisted theme flag.
func (s *State) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.DarkMode
}

// Speed returns the persisted speed preset.
func (s *State) Speed() schedule.Speed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Speed
}

// MonitorMode returns the persisted metric kind.
func (s *State) MonitorMode() metrics.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.MonitorMode
}

// PositiveCorrelation returns whether the interval table is reversed so
// the animation slows as load rises.
func (s *State) PositiveCorrelation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.PositiveCorrelation
}

// SetDarkMode updates the theme flag and persists.
func (s *State) SetDarkMode(dark bool) {
	s.mu.Lock()
	s.data.DarkMode = dark
	s.mu.Unlock()
	s.save()
}

// SetSpeed updates the speed preset and persists. Invalid presets are rejected.
func (s *State) SetSpeed(sp schedule.Speed) error {
	if !sp.Valid() {
		return fmt.Errorf("invalid speed preset %q", sp)
	}
	s.mu.Lock()
	s.data.Speed = sp
	s.mu.Unlock()
	s.save()
	return nil
}

// SetMonitorMode updates the metric kind and persists.
func (s *State) SetMonitorMode(kind metrics.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid metric kind %q", kind)
	}
	s.mu.Lock()
	s.data.MonitorMode = kind
	s.mu.Unlock()
	s.save()
	return nil
}

// save persists the state with write-whole-file-then-rename so the file is
// never partially written. Failures keep the in-memory state authoritative
// and leave the store dirty for a later Flush.
func (s *State) save() {
	s.mu.Lock()
	data := s.data
	s.dirty = true
	s.mu.Unlock()

	if err := writeState(s.path, data); err != nil {
		s.log.Writef("Config: save %s failed: %v", s.path, err)
		return
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Flush retries persistence if a previous save failed. Called on shutdown.
func (s *State) Flush() {
	s.mu.Lock()
	dirty := s.dirty
	s.mu.Unlock()
	if dirty {
		s.save()
	}
}

func writeState(path string, data stateData) error {
	if path == "" {
		return errors.New("state path not set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
