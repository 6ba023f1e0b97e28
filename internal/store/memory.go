// Package store keeps extraction results in process memory so reviewer
// actions arriving over HTTP are serialized against a single writer. It is
// deliberately not persistence: results live only as long as the process.
package store

import (
	"sync"

	"github.com/google/uuid"

	"itemize/internal/domain"
)

// Memory is a mutex-guarded map of extraction results.
type Memory struct {
	mu      sync.RWMutex
	results map[uuid.UUID]*domain.ExtractionResult
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{results: make(map[uuid.UUID]*domain.ExtractionResult)}
}

// Save stores a result under its ID.
func (m *Memory) Save(r *domain.ExtractionResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[r.ID] = r
}

// Get returns a snapshot copy of the result, or ErrResultNotFound.
func (m *Memory) Get(id uuid.UUID) (*domain.ExtractionResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return snapshot(r), nil
}

// Update runs fn against the stored result under the write lock, giving
// reviewer actions the single-writer discipline the core requires.
func (m *Memory) Update(id uuid.UUID, fn func(*domain.ExtractionResult) error) (*domain.ExtractionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	return snapshot(r), nil
}

// Delete removes a result. Deleting an unknown ID is a no-op.
func (m *Memory) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.results, id)
}

// Len returns the number of stored results.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}

func snapshot(r *domain.ExtractionResult) *domain.ExtractionResult {
	out := *r
	out.Candidates = make([]domain.LineItemCandidate, len(r.Candidates))
	copy(out.Candidates, r.Candidates)
	return &out
}
