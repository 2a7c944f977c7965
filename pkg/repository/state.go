package repository

import (
	"context"
	"sync"

	"promptpad/pkg/domain"
)

type memoryStateRepository struct {
	mu    sync.RWMutex
	state *domain.AppState
}

// NewMemoryStateRepository keeps the snapshot in process memory only. Used
// when no database is configured, and in tests.
func NewMemoryStateRepository() *memoryStateRepository {
	return &memoryStateRepository{}
}

func (m *memoryStateRepository) Save(_ context.Context, state domain.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := state
	m.state = &snapshot
	return nil
}

func (m *memoryStateRepository) Load(_ context.Context) (domain.AppState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == nil {
		return domain.DefaultState(), nil
	}
	return *m.state, nil
}
