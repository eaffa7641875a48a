package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-applicant-tracker/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window for counting attempts
	BlockDuration time.Duration // how long a block lasts
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed logins per email in Redis and blocks the
// account once MaxAttempts is reached. Without Redis it never blocks.
type LoginTracker struct {
	config LoginTrackerConfig
	client func() *goredis.Client
	logger *SecurityLogger
}

func NewLoginTracker(config LoginTrackerConfig) *LoginTracker {
	return &LoginTracker{
		config: config,
		client: redis.Client,
		logger: DefaultLogger(),
	}
}

const (
	failLoginPrefix    = "fail:login:user:"
	blockedLoginPrefix = "blocked:login:user:"
)

// KEYS[1] = counter key, ARGV[1] = TTL seconds
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func loginKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlocked reports whether the email is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	client := lt.client()
	if client == nil {
		return false, nil
	}
	n, err := client.Exists(ctx, blockedLoginPrefix+loginKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check login block: %w", err)
	}
	return n > 0, nil
}

// RecordFailedAttempt increments the counter and blocks at the threshold.
// Returns (blocked, attempts, error).
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip string) (bool, int, error) {
	client := lt.client()
	if client == nil {
		return false, 0, nil
	}

	key := loginKey(email)
	res, err := client.Eval(ctx, incrWithTTLScript, []string{failLoginPrefix + key}, int(lt.config.AttemptWindow.Seconds())).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login counter: %w", err)
	}
	count, ok := res.(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected result type from Lua script")
	}

	if int(count) < lt.config.MaxAttempts {
		return false, int(count), nil
	}

	if err := client.Set(ctx, blockedLoginPrefix+key, "1", lt.config.BlockDuration).Err(); err != nil {
		return true, int(count), fmt.Errorf("failed to set login block: %w", err)
	}
	lt.logger.LogBlockCreated(ctx, email, ip, int(lt.config.BlockDuration.Minutes()))
	return true, int(count), nil
}

// ClearAttempts resets the counter after a successful login.
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email string) error {
	client := lt.client()
	if client == nil {
		return nil
	}
	if err := client.Del(ctx, failLoginPrefix+loginKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear login attempts: %w", err)
	}
	return nil
}
