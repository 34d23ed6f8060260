package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"devswipe/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen falls back to the in-process limiter if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

// RateLimitConfig describes one limited resource.
type RateLimitConfig struct {
	Name     string
	Limit    int
	Window   time.Duration
	Policy   FailPolicy
	Disabled bool
}

// CheckRateLimit counts one hit for id on resource in a fixed Redis window.
// Returns true if allowed, false if limit exceeded.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}

// localLimiter is the per-process token bucket used without Redis.
type localLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	buckets  map[string]*localBucket
	lastScan time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiter(limit int, window time.Duration) *localLimiter {
	return &localLimiter{
		limit:   rate.Limit(float64(limit) / window.Seconds()),
		burst:   limit,
		buckets: make(map[string]*localBucket),
	}
}

func (l *localLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastScan) > 10*time.Minute {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > 10*time.Minute {
				delete(l.buckets, k)
			}
		}
		l.lastScan = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func callerKey(c *fiber.Ctx) string {
	if uid, ok := c.Locals("userID").(uint); ok {
		return "user:" + strconv.FormatUint(uint64(uid), 10)
	}
	return "ip:" + c.IP()
}

// RateLimit returns a Fiber middleware enforcing cfg.Limit requests per
// cfg.Window per caller. Callers are keyed by authenticated user id when
// available, otherwise by remote IP. Without Redis the limit is enforced per
// process.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig) fiber.Handler {
	if cfg.Disabled || cfg.Limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	local := newLocalLimiter(cfg.Limit, cfg.Window)

	return func(c *fiber.Ctx) error {
		resource := cfg.Name
		if resource == "" {
			resource = c.Path()
		}
		id := callerKey(c)

		store := "redis"
		var allowed bool
		var err error
		if rdb != nil {
			allowed, err = CheckRateLimit(c.UserContext(), rdb, resource, id, cfg.Limit, cfg.Window)
		}
		if rdb == nil || err != nil {
			if err != nil {
				if cfg.Policy == FailClosed {
					Logger.WarnContext(c.UserContext(), "rate limit store unavailable, failing closed",
						slog.String("resource", resource), slog.String("error", err.Error()))
					return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
						"error": "rate limit unavailable",
						"code":  "UNAVAILABLE",
					})
				}
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable, using local limiter",
					slog.String("resource", resource), slog.String("error", err.Error()))
			}
			store = "local"
			allowed = local.allow(resource+"|"+id, time.Now())
		}

		if !allowed {
			observability.RateLimitRejections.WithLabelValues(resource, store).Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
				"code":  "RATE_LIMITED",
			})
		}
		return c.Next()
	}
}
