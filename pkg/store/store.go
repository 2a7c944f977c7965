// Package store holds the whole application state behind explicit mutation
// actions. Every mutation persists the new snapshot and pings subscribers.
// Reads hand out value copies; mutations clone the containers they touch
// instead of writing through them, so a snapshot never changes under its
// holder. The RWMutex serializes writers and lets readers run concurrently.
package store

import (
	"context"
	"log/slog"
	"sync"

	"promptpad/pkg/domain"
	"promptpad/pkg/logger"
)

type StateRepository interface {
	Load(ctx context.Context) (domain.AppState, error)
	Save(ctx context.Context, state domain.AppState) error
}

type Store struct {
	mu          sync.RWMutex
	state       domain.AppState
	repo        StateRepository
	subscribers []chan struct{}
}

// New loads the last persisted snapshot, falling back to defaults when there
// is none or it cannot be read.
func New(repo StateRepository) *Store {
	state, err := repo.Load(context.Background())
	if err != nil {
		slog.Warn("loading persisted state failed, starting with defaults", logger.Err(err))
		state = domain.DefaultState()
	}
	return &Store{state: state, repo: repo}
}

// Subscribe returns a channel that receives a ping after every state change.
// The send is non-blocking; a slow consumer just coalesces pings.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) State() domain.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Session(id string) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.state.Sessions {
		if session.ID == id {
			return session, true
		}
	}
	return domain.Session{}, false
}

func (s *Store) CurrentSession() (domain.Session, bool) {
	s.mu.RLock()
	id := s.state.CurrentSessionID
	s.mu.RUnlock()
	if id == "" {
		return domain.Session{}, false
	}
	return s.Session(id)
}

func (s *Store) SelectedAPIKey() (domain.APIKeyConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, key := range s.state.APIKeys {
		if key.ID == s.state.SelectedAPIKeyID {
			return key, true
		}
	}
	return domain.APIKeyConfig{}, false
}

// update runs one transition. When mutate reports a change, the snapshot is
// persisted (fire-and-forget, a failed save only logs) and subscribers are
// notified.
func (s *Store) update(mutate func(state *domain.AppState) bool) bool {
	s.mu.Lock()
	changed := mutate(&s.state)
	snapshot := s.state
	s.mu.Unlock()

	if !changed {
		return false
	}

	if err := s.repo.Save(context.Background(), snapshot); err != nil {
		slog.Error("persisting state", logger.Err(err))
	}
	s.notify()
	return true
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// mutateSession applies fn to the session with the given id. The session
// list and the target's message list are cloned before fn runs, so snapshots
// already handed out by the read accessors are never written through. fn
// reports whether it changed anything; an untouched session is neither
// persisted nor announced.
func (s *Store) mutateSession(id string, fn func(session *domain.Session) bool) error {
	found := false
	s.update(func(state *domain.AppState) bool {
		for i := range state.Sessions {
			if state.Sessions[i].ID != id {
				continue
			}
			found = true

			sessions := make([]domain.Session, len(state.Sessions))
			copy(sessions, state.Sessions)
			sessions[i] = cloneSession(sessions[i])
			if !fn(&sessions[i]) {
				return false
			}
			state.Sessions = sessions
			return true
		}
		return false
	})
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func cloneSession(session domain.Session) domain.Session {
	messages := make([]domain.Message, len(session.Messages))
	copy(messages, session.Messages)
	for i := range messages {
		if messages[i].ToolCalls == nil {
			continue
		}
		calls := make([]domain.ToolCall, len(messages[i].ToolCalls))
		copy(calls, messages[i].ToolCalls)
		messages[i].ToolCalls = calls
	}
	session.Messages = messages
	return session
}
