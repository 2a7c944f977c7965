package domain

// AppState is the whole persisted application snapshot. It is loaded once at
// startup and written back after every mutation.
type AppState struct {
	Sessions         []Session      `json:"sessions"`
	CurrentSessionID string         `json:"currentSessionId"`
	APIKeys          []APIKeyConfig `json:"apiKeys"`
	SelectedAPIKeyID string         `json:"selectedApiKeyId"`
	SidebarOpen      bool           `json:"sidebarOpen"`
	SettingsOpen     bool           `json:"settingsOpen"`
	Theme            string         `json:"theme"`
}

func DefaultState() AppState {
	return AppState{
		SidebarOpen: true,
		Theme:       "dark",
	}
}
