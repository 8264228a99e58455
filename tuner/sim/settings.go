package sim

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings persists settings to a YAML file, rewritten whole on every
// put.  A missing file means defaults; a corrupt one is logged and
// treated the same, the tuner runs regardless.
type Settings struct {
	mu   sync.Mutex
	path string
	vals map[string]float64
}

func NewSettings(path string) *Settings {
	s := &Settings{path: path, vals: make(map[string]float64)}

	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s
	}
	if err != nil {
		fmt.Printf("Settings read error %s: %s\r\n", path, err)
		return s
	}
	if err := yaml.Unmarshal(bytes, &s.vals); err != nil {
		fmt.Printf("Settings parse error %s: %s\r\n", path, err)
	}
	return s
}

func (s *Settings) Get(key string, def float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if val, ok := s.vals[key]; ok {
		return val
	}
	return def
}

func (s *Settings) Put(key string, val float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = val
	bytes, err := yaml.Marshal(s.vals)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, bytes, 0644)
}
