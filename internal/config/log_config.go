package config

import "time"

type LogConfig interface {
	GetLogEndpoint() string
	GetLoggingEnabled() bool
	GetLogBatchSize() int
	GetLogFlushInterval() time.Duration
	GetLogRequestTimeout() time.Duration
}

type Logging struct{}

var _ LogConfig = Logging{}

// GetLogEndpoint returns the log ingestion endpoint. Batched records are
// POSTed there as a JSON array; any 2xx response counts as delivered.
func (Logging) GetLogEndpoint() string {
	return GetEnv("LOG_ENDPOINT", "")
}

func (Logging) GetLoggingEnabled() bool {
	return GetEnvBool("LOGGING_ENABLED", true)
}

func (Logging) GetLogBatchSize() int {
	return GetEnvInt("LOG_BATCH_SIZE", 10)
}

func (Logging) GetLogFlushInterval() time.Duration {
	return GetEnvDuration("LOG_FLUSH_INTERVAL", 5*time.Second)
}

func (Logging) GetLogRequestTimeout() time.Duration {
	return GetEnvDuration("LOG_REQUEST_TIMEOUT", 3*time.Second)
}
