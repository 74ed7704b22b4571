// Package logship batches structured log records in memory and ships them to
// a remote ingestion endpoint. Delivery is best-effort and at-most-once: a
// failed batch falls back to local console output and is never retried, so
// logging can never block or break the application.
package logship

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBatchSize      = 10
	defaultFlushInterval  = 5 * time.Second
	defaultRequestTimeout = 3 * time.Second
)

type Config struct {
	Endpoint       string
	Service        string
	Environment    string
	BatchSize      int
	FlushInterval  time.Duration
	RequestTimeout time.Duration
	Enabled        bool
}

// Shipper is the public logging handle. Derived shippers created with
// WithAttributes share the parent's queue and delivery machinery.
type Shipper struct {
	core  *core
	attrs map[string]any
}

// core owns the queue, the background ticker and the HTTP delivery. There is
// exactly one core per New call, shared by all derived shippers.
type core struct {
	cfg        Config
	httpClient *http.Client
	fallback   zerolog.Logger

	mu    sync.Mutex
	queue []Record

	stopOnce sync.Once
	done     chan struct{}
}

type Option func(*core)

// WithHTTPClient sets the HTTP client used to POST batches
func WithHTTPClient(hc *http.Client) Option {
	return func(c *core) { c.httpClient = hc }
}

// WithFallbackWriter redirects the console fallback output (used in tests)
func WithFallbackWriter(w io.Writer) Option {
	return func(c *core) { c.fallback = zerolog.New(w).With().Timestamp().Logger() }
}

func New(cfg Config, opts ...Option) *Shipper {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	c := &core{
		cfg:        cfg,
		httpClient: http.DefaultClient,
		fallback:   zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.shipping() {
		go c.run()
	}

	return &Shipper{core: c}
}

// WithAttributes returns a derived shipper that merges attrs into every record
// it emits. The parent shipper is not modified; both feed the same queue.
func (s *Shipper) WithAttributes(attrs map[string]any) *Shipper {
	return &Shipper{core: s.core, attrs: mergeAttrs(s.attrs, attrs)}
}

// Log queues a record. Reaching the batch size triggers an asynchronous
// flush; the caller is never blocked on network I/O.
func (s *Shipper) Log(level Level, message string, attrs map[string]any) {
	rec := newRecord(level, message, s.core.cfg.Service, s.core.cfg.Environment, mergeAttrs(s.attrs, attrs))
	s.core.enqueue(rec)
}

func (s *Shipper) Debug(message string, attrs map[string]any) { s.Log(LevelDebug, message, attrs) }
func (s *Shipper) Info(message string, attrs map[string]any)  { s.Log(LevelInfo, message, attrs) }
func (s *Shipper) Warn(message string, attrs map[string]any)  { s.Log(LevelWarn, message, attrs) }
func (s *Shipper) Error(message string, attrs map[string]any) { s.Log(LevelError, message, attrs) }

// Flush drains the current queue and attempts delivery synchronously.
// A no-op if the queue is empty.
func (s *Shipper) Flush() {
	s.core.flush()
}

// Close stops the background timer and performs a final flush
func (s *Shipper) Close() {
	s.core.stopOnce.Do(func() { close(s.core.done) })
	s.core.flush()
}

// shipping reports whether records should be sent to the remote sink at all
func (c *core) shipping() bool {
	return c.cfg.Enabled && c.cfg.Endpoint != ""
}

func (c *core) enqueue(rec Record) {
	if !c.shipping() {
		c.consoleLog(rec)
		return
	}

	c.mu.Lock()
	c.queue = append(c.queue, rec)
	trigger := len(c.queue) == c.cfg.BatchSize
	c.mu.Unlock()

	if trigger {
		go c.flush()
	}
}

func (c *core) run() {
	ticker := time.NewTicker(c.cfg.FlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.flush()
		case <-c.done:
			return
		}
	}
}

// flush atomically takes the queue and resets it; records logged while the
// POST is in flight start a fresh batch. Failed batches are echoed to the
// console fallback and dropped.
func (c *core) flush() {
	c.mu.Lock()
	batch := c.queue
	c.queue = nil
	c.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	if err := c.post(batch); err != nil {
		for _, rec := range batch {
			c.consoleLog(rec)
		}
	}
}

func (c *core) post(batch []Record) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("[logship post] marshal batch: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("[logship post] build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[logship post] send batch: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // draining for connection reuse

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("[logship post] ingestion endpoint returned %d", resp.StatusCode)
	}
	return nil
}

func (c *core) consoleLog(rec Record) {
	ev := c.fallback.WithLevel(rec.Level.zerologLevel()).
		Str("service", rec.Service).
		Str("environment", rec.Environment)
	if len(rec.Attributes) > 0 {
		ev = ev.Fields(rec.Attributes)
	}
	ev.Msg(rec.Message)
}

func mergeAttrs(base, extra map[string]any) map[string]any {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
