package engine

import "cerealdash/internal/models"

// SelectionSet is the set of record names chosen by clicks.
type SelectionSet struct {
	keys map[string]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{keys: make(map[string]struct{})}
}

// Toggle adds key when absent and removes it when present.
// It returns true when key is selected afterwards.
func (s *SelectionSet) Toggle(key string) bool {
	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *SelectionSet) Clear() {
	s.keys = make(map[string]struct{})
}

func (s *SelectionSet) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *SelectionSet) Len() int {
	return len(s.keys)
}

// Snapshot returns a copy that views may keep.
func (s *SelectionSet) Snapshot() models.KeySet {
	ks := make(models.KeySet, len(s.keys))
	for k := range s.keys {
		ks[k] = struct{}{}
	}
	return ks
}
