package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// QuotaLimiter enforces a per-user quota on expensive profile operations
// (document import, workbook export) using a Redis sliding window.
type QuotaLimiter struct {
	client *goredis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// Lua script for sliding window quota
// KEYS[1] = quota key
// ARGV[1] = max count allowed
// ARGV[2] = window size in seconds
// ARGV[3] = current timestamp
// Returns: 1 if allowed, 0 if over quota
const quotaScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewQuotaLimiter creates a quota limiter. Default: 50 operations per day.
// A nil client disables the quota.
func NewQuotaLimiter(client *goredis.Client, limit int, window time.Duration) *QuotaLimiter {
	if limit <= 0 {
		limit = 50
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &QuotaLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func quotaKey(scope, userID string) string {
	return fmt.Sprintf("quota:%s:user:%s", scope, userID)
}

// Allow records one operation for userID in scope.
// Returns (allowed, retryAfterSeconds, error). Redis errors deny the request.
func (q *QuotaLimiter) Allow(ctx context.Context, scope, userID string) (bool, int, error) {
	if q == nil || q.client == nil || userID == "" {
		return true, 0, nil
	}

	window := int(q.window.Seconds())
	result, err := q.client.Eval(ctx, quotaScript, []string{quotaKey(scope, userID)}, q.limit, window, q.now().Unix()).Result()
	if err != nil {
		return false, 60, fmt.Errorf("quota check failed: %w", err)
	}
	allowed, ok := result.(int64)
	if !ok {
		return false, 60, fmt.Errorf("unexpected result type from quota script")
	}
	if allowed != 1 {
		return false, window, nil
	}
	return true, 0, nil
}

// Remaining returns how many operations userID has left in scope.
func (q *QuotaLimiter) Remaining(ctx context.Context, scope, userID string) (int, error) {
	if q == nil || q.client == nil {
		return q.limitOrZero(), nil
	}

	key := quotaKey(scope, userID)
	now := q.now().Unix()
	q.client.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-int64(q.window.Seconds())))
	count, err := q.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	remaining := q.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (q *QuotaLimiter) limitOrZero() int {
	if q == nil {
		return 0
	}
	return q.limit
}
