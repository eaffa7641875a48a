package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when no REDIS_URL was given.
var ErrNotConfigured = errors.New("redis: REDIS_URL not configured")

var (
	mu     sync.RWMutex
	client *redis.Client
)

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://host:port/db or rediss://host:port/db for TLS
	Password string // overrides the password embedded in URL
}

// Client returns the shared client, or nil when Redis is unavailable.
// Rate limiting and the login tracker fall back to memory in that case.
func Client() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// Initialize connects the shared client. A failed ping leaves Client nil.
func Initialize(ctx context.Context, cfg Config) error {
	if cfg.URL == "" {
		return ErrNotConfigured
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2

	c := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("redis: connection failed: %w", err)
	}

	mu.Lock()
	client = c
	mu.Unlock()
	return nil
}

// Close closes the shared client.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// HealthCheck pings the shared client.
func HealthCheck(ctx context.Context) error {
	c := Client()
	if c == nil {
		return errors.New("redis: client not initialized")
	}
	return c.Ping(ctx).Err()
}
