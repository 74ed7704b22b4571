package config

type Config interface {
	EnvConfig
	OAuthConfig
	APIConfig
	LogConfig
	CorsConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetServiceName() string
	GetDataFolder() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	OAuth
	API
	Logging
	Cors
	Security
}

func New() Config {
	return mainConfig{}
}
