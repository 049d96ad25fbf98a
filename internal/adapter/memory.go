package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/h2hsecure/usercards/internal/domain"
)

type memoryStore struct {
	mu    sync.RWMutex
	views map[string]domain.FetchState
}

func NewMemoryStore() domain.ViewStore {
	return &memoryStore{views: map[string]domain.FetchState{}}
}

func (m *memoryStore) Save(_ context.Context, id string, state domain.FetchState) error {
	users := make([]domain.DisplayUser, len(state.Users))
	copy(users, state.Users)
	state.Users = users

	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[id] = state
	return nil
}

func (m *memoryStore) Load(_ context.Context, id string) (domain.FetchState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, has := m.views[id]
	if !has {
		return domain.FetchState{}, fmt.Errorf("view not found: %s: %w", id, domain.ErrNotFound)
	}

	users := make([]domain.DisplayUser, len(state.Users))
	copy(users, state.Users)
	state.Users = users

	return state, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.views, id)
	return nil
}

func (m *memoryStore) Close() error {
	return nil
}
