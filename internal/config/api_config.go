package config

import "time"

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the base URL of the identity backend's REST API.
func (API) GetAPIBaseURL() string {
	return GetEnv("API_BASE_URL", "http://localhost:9090")
}

func (API) GetAPITimeout() time.Duration {
	return GetEnvDuration("API_TIMEOUT", 10*time.Second)
}
