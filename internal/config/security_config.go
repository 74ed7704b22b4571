package config

type SecurityConfig interface {
	GetSessionStore() string // "memory", "file" or "redis"
	GetRedisAddr() string
	GetEnableRateLimiting() bool
	GetRateLimitPerSecond() int
	GetRateLimitBurst() int
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSessionStore() string {
	return GetEnv("SESSION_STORE", "file")
}

func (Security) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Security) GetEnableRateLimiting() bool {
	return GetEnvBool("RATE_LIMITING", true)
}

func (Security) GetRateLimitPerSecond() int {
	return GetEnvInt("RATE_LIMIT_PER_SECOND", 5)
}

func (Security) GetRateLimitBurst() int {
	return GetEnvInt("RATE_LIMIT_BURST", 10)
}
