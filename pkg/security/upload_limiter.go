package security

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go-applicant-tracker/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter caps certificate uploads per user with Redis sliding windows.
type UploadLimiter struct {
	maxPerMinute int
	maxPerDay    int
	client       func() *goredis.Client
}

// KEYS[1] = window key, ARGV[1] = limit, ARGV[2] = window seconds, ARGV[3] = now
// Returns 1 if allowed, 0 if limited.
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
if redis.call('ZCARD', key) >= limit then
    return 0
end
redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter defaults to 10 uploads/min and 50 uploads/day per user.
func NewUploadLimiter(perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{maxPerMinute: perMin, maxPerDay: perDay, client: redis.Client}
}

// AllowUpload returns (allowed, retryAfter). Without Redis every upload is allowed.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, userID int64) (bool, time.Duration, error) {
	client := ul.client()
	if client == nil {
		return true, 0, nil
	}

	now := time.Now().Unix()
	id := strconv.FormatInt(userID, 10)

	windows := []struct {
		key    string
		limit  int
		window time.Duration
	}{
		{"ratelimit:upload:min:" + id, ul.maxPerMinute, time.Minute},
		{"ratelimit:upload:day:" + id, ul.maxPerDay, 24 * time.Hour},
	}
	for _, w := range windows {
		res, err := client.Eval(ctx, uploadRateLimitScript, []string{w.key}, w.limit, int(w.window.Seconds()), now).Result()
		if err != nil {
			return false, 0, fmt.Errorf("upload limit check failed: %w", err)
		}
		allowed, ok := res.(int64)
		if !ok {
			return false, 0, fmt.Errorf("unexpected result type from rate limit script")
		}
		if allowed != 1 {
			return false, w.window, nil
		}
	}
	return true, 0, nil
}
