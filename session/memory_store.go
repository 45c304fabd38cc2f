package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the serialized record in memory. It round-trips
// through the same encoding as the durable stores so tests exercise the
// real decode path.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the held record, purging it when undecodable.
func (s *MemoryStore) Load(ctx context.Context) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	rec, err := decode(s.data)
	if err != nil {
		s.data = nil
		return nil, nil
	}
	return rec, nil
}

// Save replaces the held record.
func (s *MemoryStore) Save(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Clear drops the held record.
func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites the held bytes with undecodable data. Test hook for
// the self-healing path.
func (s *MemoryStore) Corrupt() {
	s.mu.Lock()
	s.data = []byte("{not json")
	s.mu.Unlock()
}

var _ Store = (*MemoryStore)(nil)
