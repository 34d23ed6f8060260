package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedApp(rdb *redis.Client, cfg RateLimitConfig) *fiber.App {
	app := fiber.New()
	app.Get("/test", RateLimit(rdb, cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func hit(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestCheckRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "login", "ip:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := CheckRateLimit(ctx, rdb, "login", "ip:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// other callers have their own window
	allowed, err = CheckRateLimit(ctx, rdb, "login", "ip:2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	mr.FastForward(2 * time.Minute)
	allowed, err = CheckRateLimit(ctx, rdb, "login", "ip:1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	_, err = CheckRateLimit(ctx, nil, "login", "ip:1", 3, time.Minute)
	assert.Error(t, err)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		app := limitedApp(nil, RateLimitConfig{Name: "t", Limit: 1, Window: time.Minute, Disabled: true})
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, hit(t, app))
		}
	})

	t.Run("Redis store", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer func() { _ = rdb.Close() }()

		app := limitedApp(rdb, RateLimitConfig{Name: "t", Limit: 2, Window: time.Minute})
		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
	})

	t.Run("Local store without redis", func(t *testing.T) {
		app := limitedApp(nil, RateLimitConfig{Name: "t", Limit: 2, Window: time.Hour})
		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
	})

	t.Run("FailOpen falls back to local limiter", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		defer func() { _ = rdb.Close() }()
		mr.Close()

		app := limitedApp(rdb, RateLimitConfig{Name: "t", Limit: 1, Window: time.Hour})
		assert.Equal(t, http.StatusOK, hit(t, app))
		assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
	})

	t.Run("FailClosed with redis down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
		defer func() { _ = rdb.Close() }()
		mr.Close()

		app := limitedApp(rdb, RateLimitConfig{Name: "t", Limit: 5, Window: time.Minute, Policy: FailClosed})
		assert.Equal(t, http.StatusServiceUnavailable, hit(t, app))
	})
}

func TestLocalLimiterEvictsIdleBuckets(t *testing.T) {
	l := newLocalLimiter(1, time.Minute)
	now := time.Now()
	assert.True(t, l.allow("a", now))
	assert.False(t, l.allow("a", now))

	later := now.Add(time.Hour)
	assert.True(t, l.allow("b", later))
	_, stillThere := l.buckets["a"]
	assert.False(t, stillThere)
}
