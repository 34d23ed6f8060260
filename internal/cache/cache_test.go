package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9/maintnotifications"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	c := InitRedis(mr.Addr())
	require.NotNil(t, c)
	assert.Same(t, c, GetClient())
	require.NoError(t, Close())
	assert.Nil(t, GetClient())

	assert.Nil(t, InitRedis(""))
	assert.Nil(t, InitRedis("redis://%%bad"))
}

func TestInitRedis_URL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := InitRedis("redis://" + mr.Addr() + "/0")
	require.NotNil(t, c)
	defer func() { _ = Close() }()
	assert.NoError(t, c.Ping(context.Background()).Err())
}

func TestTokenRevoker(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewClient(mr.Addr())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	r := NewTokenRevoker(c)
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenRevoker_StoreDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewClient(mr.Addr())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	mr.Close()

	_, err = NewTokenRevoker(c).IsRevoked(context.Background(), "jti")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "auth:revoked:abc", RevokedTokenKey("abc"))
	assert.Equal(t, "rl:login:ip:1.2.3.4", RateLimitKey("login", "ip:1.2.3.4"))
	assert.Equal(t, "notifications:user:42", UserChannel(42))
}

func TestNewClientOptions(t *testing.T) {
	c, err := NewClient("redis://:s3cret@cache.internal:6380/2")
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	opts := c.Options()
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "s3cret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	require.NotNil(t, opts.MaintNotificationsConfig)
	assert.Equal(t, maintnotifications.ModeDisabled, opts.MaintNotificationsConfig.Mode)

	plain, err := NewClient("localhost:6379")
	require.NoError(t, err)
	defer func() { _ = plain.Close() }()
	assert.Equal(t, "localhost:6379", plain.Options().Addr)
}
