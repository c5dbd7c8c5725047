package prefs

import (
	"fmt"
	"sync"
)

// Store is a small persistent key/value store backed by one JSON file.
type Store struct {
	mu       sync.Mutex
	state    *fileState
	filePath string
}

// Open loads the store from filePath, starting empty if the file is absent.
func Open(filePath string) (*Store, error) {
	state, err := loadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load prefs: %w", err)
	}
	return &Store{state: state, filePath: filePath}, nil
}

// Get returns the value for key and whether it was set.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.state.Values[key]
	return v, ok
}

// Set stores value under key and persists the file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.state.Values[key]; ok && cur == value {
		return nil
	}
	s.state.Values[key] = value
	return s.save()
}

// Delete removes key and persists the file.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Values[key]; !ok {
		return nil
	}
	delete(s.state.Values, key)
	return s.save()
}

func (s *Store) save() error {
	if err := saveState(s.filePath, s.state); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}
