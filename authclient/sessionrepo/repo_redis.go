package sessionrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "console:"

// RedisRepo stores the session as a JSON blob in Redis. Use it when the
// console runs with more than one replica; use FileRepo for single-instance
// deployments.
type RedisRepo struct {
	client *redis.Client
	key    string
}

// NewRedisRepo connects to Redis at addr and verifies the connection
func NewRedisRepo(ctx context.Context, addr, keyPrefix string) (*RedisRepo, error) {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("[NewRedisRepo] redis ping: %w", err)
	}
	return &RedisRepo{client: client, key: keyPrefix + "session"}, nil
}

func (r *RedisRepo) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("[RedisRepo Save] marshal session: %w", err)
	}

	// Expire the stored blob with the access token so stale sessions
	// self-clean server-side.
	var ttl time.Duration
	if session.ExpiresIn > 0 {
		ttl = time.Duration(session.ExpiresIn) * time.Second
	}
	if err := r.client.Set(ctx, r.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("[RedisRepo Save] redis set: %w", err)
	}
	return nil
}

func (r *RedisRepo) Load(ctx context.Context) (*Session, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[RedisRepo Load] redis get: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &session, nil
}

func (r *RedisRepo) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("[RedisRepo Delete] redis del: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (r *RedisRepo) Close() error {
	return r.client.Close()
}
