package memory

import (
	"context"
	"fmt"
	"sync"

	"finzen/internal/export"
)

// Store is an in-memory record sink used in tests and local runs
// without Google credentials.
type Store struct {
	mu    sync.Mutex
	items []export.Record
}

func New() *Store {
	return &Store{}
}

// Append stores the record and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, r export.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Records returns a copy of everything appended so far.
func (s *Store) Records() []export.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]export.Record(nil), s.items...)
}
