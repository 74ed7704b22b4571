package logship

import (
	"time"

	"github.com/rs/zerolog"
)

// Level is the severity of a log record
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// zerologLevel maps a record level onto the fallback console logger
func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Record is a single structured log entry queued for shipment
type Record struct {
	Timestamp   string         `json:"timestamp"` // ISO-8601
	Level       Level          `json:"level"`
	Message     string         `json:"message"`
	Service     string         `json:"service"`
	Environment string         `json:"environment"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

func newRecord(level Level, message, service, environment string, attrs map[string]any) Record {
	return Record{
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		Level:       level,
		Message:     message,
		Service:     service,
		Environment: environment,
		Attributes:  attrs,
	}
}
