package domain

type APIKeyConfig struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Key     string `json:"key"`
	BaseURL string `json:"baseUrl,omitempty"`
}
