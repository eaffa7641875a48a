package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/pkg/redis"
	"go-applicant-tracker/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig describes one fixed-window limit.
type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	KeyFunc   func(*gin.Context) string
	// FailClosed rejects requests when Redis errors instead of counting in memory.
	FailClosed bool
}

// KEYS[1] = counter key, ARGV[1] = window in seconds.
// Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type windowCount struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// memoryCounter is the per-process fallback used while Redis is down.
type memoryCounter struct {
	entries   sync.Map
	sweepOnce sync.Once
}

var fallbackCounter = &memoryCounter{}

func (m *memoryCounter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	m.sweepOnce.Do(func() { go m.sweep(5 * time.Minute) })

	v, _ := m.entries.LoadOrStore(key, &windowCount{resetAt: now.Add(window)})
	w := v.(*windowCount)

	w.mu.Lock()
	defer w.mu.Unlock()
	if now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(window)
	}
	w.count++
	return w.count, w.resetAt
}

func (m *memoryCounter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for now := range ticker.C {
		m.entries.Range(func(key, value interface{}) bool {
			w := value.(*windowCount)
			w.mu.Lock()
			expired := now.After(w.resetAt)
			w.mu.Unlock()
			if expired {
				m.entries.Delete(key)
			}
			return true
		})
	}
}

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// GlobalRateLimitConfig limits every route per client IP.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   clientIPKey,
	}
}

// LoginRateLimitConfig limits login attempts per client IP.
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		KeyFunc:    clientIPKey,
		FailClosed: true,
	}
}

// PasswordResetRateLimitConfig limits forgot-password and reset-password per
// client IP, on a budget separate from login.
func PasswordResetRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:password:",
		KeyFunc:    clientIPKey,
		FailClosed: true,
	}
}

// VerificationNoticeRateLimitConfig limits verification mail resends per user.
// Must run after AuthMiddleware.
func VerificationNoticeRateLimitConfig(limit int) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    time.Minute,
		KeyPrefix: "rl:verify:user:",
		KeyFunc:   ActorKey,
	}
}

// RateLimitMiddleware counts requests in Redis, or in memory when Redis is
// not connected, and rejects with 429 once the window is full.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		count, resetAt, err := countRequest(c.Request.Context(), key, config)
		if err != nil {
			logRateLimitError(c, err)
			response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
			c.Abort()
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logRateLimitTriggered(c)
			response.Error(c, http.StatusTooManyRequests, "Too Many Attempts.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// countRequest returns an error only for a fail-closed limit whose Redis call failed.
func countRequest(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	if client := redis.Client(); client != nil {
		count, resetAt, err := countInRedis(ctx, client, key, config.Window)
		if err == nil {
			return count, resetAt, nil
		}
		if config.FailClosed {
			return 0, time.Time{}, err
		}
	}
	count, resetAt := fallbackCounter.hit(key, config.Window, time.Now())
	return count, resetAt, nil
}

func countInRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func logRateLimitTriggered(c *gin.Context) {
	security.DefaultLogger().LogRateLimitTriggered(
		c.Request.Context(),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		c.GetString("RequestID"),
		c.FullPath(),
	)
}

func logRateLimitError(c *gin.Context, err error) {
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:       security.EventRateLimitTriggered,
		SubjectType: "system",
		IP:          c.ClientIP(),
		Details: map[string]interface{}{
			"error_type": "redis_error",
			"error":      err.Error(),
		},
	})
}
