// Package cache persists the rendered dashboard document in Redis so a
// restarted instance can serve immediately while the first refresh runs.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const (
	dataKey = "bayview:data"
	tsKey   = "bayview:ts"
)

// Store wraps the Redis connection. A Store with no client is valid and
// turns every operation into a no-op, so the app runs without Redis.
type Store struct {
	client *redis.Client
	log    *logger.Logger
}

func New(cfg config.CacheConfig, log *logger.Logger) (*Store, error) {
	url := cfg.GetRedisURL()
	if url == "" {
		log.Info("redis not configured, dashboard cache disabled")
		return &Store{log: log}, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return &Store{client: redis.NewClient(opt), log: log}, nil
}

// NewWithClient wires an existing client, used by tests.
func NewWithClient(client *redis.Client, log *logger.Logger) *Store {
	return &Store{client: client, log: log}
}

func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Save stores the rendered document and its generation timestamp.
func (s *Store) Save(ctx context.Context, data []byte, ts time.Time) error {
	if !s.Enabled() {
		return nil
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, dataKey, data, 0)
	pipe.Set(ctx, tsKey, ts.Format(time.RFC3339), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save dashboard cache: %w", err)
	}
	return nil
}

// Load returns the cached document and its timestamp. A cache miss returns
// nil data and no error.
func (s *Store) Load(ctx context.Context) ([]byte, time.Time, error) {
	if !s.Enabled() {
		return nil, time.Time{}, nil
	}

	data, err := s.client.Get(ctx, dataKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load dashboard cache: %w", err)
	}

	var ts time.Time
	if raw, err := s.client.Get(ctx, tsKey).Result(); err == nil {
		if parsed, perr := time.Parse(time.RFC3339, raw); perr == nil {
			ts = parsed
		}
	}
	return data, ts, nil
}

func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}
