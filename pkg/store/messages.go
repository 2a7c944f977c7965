package store

import (
	"time"

	"github.com/google/uuid"

	"promptpad/pkg/domain"
)

// AddMessage appends a message to a session. Identifier and timestamp are
// always assigned here; whatever the caller set is replaced.
func (s *Store) AddMessage(sessionID string, msg domain.Message) (domain.Message, error) {
	msg.ID = uuid.NewString()
	msg.Timestamp = time.Now()

	err := s.mutateSession(sessionID, func(session *domain.Session) bool {
		session.Messages = append(session.Messages, msg)
		return true
	})
	if err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func (s *Store) UpdateMessage(sessionID, messageID string, patch domain.MessagePatch) error {
	found := false
	err := s.mutateSession(sessionID, func(session *domain.Session) bool {
		for i := range session.Messages {
			if session.Messages[i].ID == messageID {
				patch.ApplyTo(&session.Messages[i])
				found = true
				return true
			}
		}
		return false
	})
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteMessage(sessionID, messageID string) error {
	found := false
	err := s.mutateSession(sessionID, func(session *domain.Session) bool {
		for i := range session.Messages {
			if session.Messages[i].ID == messageID {
				session.Messages = append(session.Messages[:i], session.Messages[i+1:]...)
				found = true
				return true
			}
		}
		return false
	})
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateToolCallResult records the manually supplied output for one tool
// call. The result text is stored verbatim; it is never validated.
func (s *Store) UpdateToolCallResult(sessionID, messageID, toolCallID, result string) error {
	found := false
	err := s.mutateSession(sessionID, func(session *domain.Session) bool {
		for i := range session.Messages {
			if session.Messages[i].ID != messageID {
				continue
			}
			for j := range session.Messages[i].ToolCalls {
				if session.Messages[i].ToolCalls[j].ID == toolCallID {
					session.Messages[i].ToolCalls[j].Result = result
					found = true
					return true
				}
			}
			return false
		}
		return false
	})
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
