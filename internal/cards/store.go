package cards

import (
	"log/slog"
	"sync"
)

// Store is the in-memory catalog shared by request handlers and the reloader.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	byID    map[string]int
}

func NewStore(entries []Entry) *Store {
	s := &Store{}
	s.Replace(entries)
	return s
}

// Replace swaps in a new catalog.
func (s *Store) Replace(entries []Entry) {
	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	s.mu.Lock()
	s.entries = entries
	s.byID = byID
	s.mu.Unlock()
}

// All returns a copy of the catalog.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[idx], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Reload reads dataDir again. On error the current catalog is kept.
func (s *Store) Reload(dataDir string) error {
	entries, err := LoadEntriesFromDataDir(dataDir)
	if err != nil {
		return err
	}
	s.Replace(entries)
	slog.Info("catalog loaded", "dir", dataDir, "entries", len(entries))
	return nil
}
