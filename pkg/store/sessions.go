package store

import (
	"github.com/samber/lo"

	"promptpad/pkg/domain"
)

// CreateSession inserts a fresh seeded session at the head of the list and
// makes it active.
func (s *Store) CreateSession() domain.Session {
	session := domain.NewSession()
	s.update(func(state *domain.AppState) bool {
		state.Sessions = append([]domain.Session{session}, state.Sessions...)
		state.CurrentSessionID = session.ID
		return true
	})
	return session
}

// ImportSession inserts an already-resolved session at the head of the list
// and makes it active.
func (s *Store) ImportSession(session domain.Session) {
	s.update(func(state *domain.AppState) bool {
		state.Sessions = append([]domain.Session{session}, state.Sessions...)
		state.CurrentSessionID = session.ID
		return true
	})
}

// DeleteSession removes a session. When the active session is deleted the
// head of the remaining list becomes active.
func (s *Store) DeleteSession(id string) {
	s.update(func(state *domain.AppState) bool {
		before := len(state.Sessions)
		state.Sessions = lo.Reject(state.Sessions, func(session domain.Session, _ int) bool {
			return session.ID == id
		})
		if len(state.Sessions) == before {
			return false
		}
		if state.CurrentSessionID == id {
			state.CurrentSessionID = ""
			if len(state.Sessions) > 0 {
				state.CurrentSessionID = state.Sessions[0].ID
			}
		}
		return true
	})
}

func (s *Store) SwitchSession(id string) error {
	found := s.update(func(state *domain.AppState) bool {
		if !lo.ContainsBy(state.Sessions, func(session domain.Session) bool { return session.ID == id }) {
			return false
		}
		state.CurrentSessionID = id
		return true
	})
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) UpdateSessionName(id, name string) error {
	return s.mutateSession(id, func(session *domain.Session) bool {
		session.Name = name
		return true
	})
}

func (s *Store) UpdateSessionConfig(id string, patch domain.ConfigPatch) error {
	return s.mutateSession(id, func(session *domain.Session) bool {
		patch.ApplyTo(&session.Config)
		return true
	})
}
