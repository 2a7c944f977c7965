package store

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"promptpad/pkg/domain"
)

// AddAPIKey stores a key config. The first key added becomes the selected
// one automatically.
func (s *Store) AddAPIKey(name, key, baseURL string) domain.APIKeyConfig {
	config := domain.APIKeyConfig{
		ID:      uuid.NewString(),
		Name:    name,
		Key:     key,
		BaseURL: baseURL,
	}
	s.update(func(state *domain.AppState) bool {
		state.APIKeys = append(state.APIKeys, config)
		if state.SelectedAPIKeyID == "" {
			state.SelectedAPIKeyID = config.ID
		}
		return true
	})
	return config
}

func (s *Store) RemoveAPIKey(id string) {
	s.update(func(state *domain.AppState) bool {
		before := len(state.APIKeys)
		state.APIKeys = lo.Reject(state.APIKeys, func(key domain.APIKeyConfig, _ int) bool {
			return key.ID == id
		})
		if len(state.APIKeys) == before {
			return false
		}
		if state.SelectedAPIKeyID == id {
			state.SelectedAPIKeyID = ""
		}
		return true
	})
}

func (s *Store) SelectAPIKey(id string) error {
	found := s.update(func(state *domain.AppState) bool {
		if !lo.ContainsBy(state.APIKeys, func(key domain.APIKeyConfig) bool { return key.ID == id }) {
			return false
		}
		state.SelectedAPIKeyID = id
		return true
	})
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) ToggleSidebar() {
	s.update(func(state *domain.AppState) bool {
		state.SidebarOpen = !state.SidebarOpen
		return true
	})
}

func (s *Store) ToggleSettings() {
	s.update(func(state *domain.AppState) bool {
		state.SettingsOpen = !state.SettingsOpen
		return true
	})
}

func (s *Store) SetTheme(theme string) {
	s.update(func(state *domain.AppState) bool {
		state.Theme = theme
		return true
	})
}
