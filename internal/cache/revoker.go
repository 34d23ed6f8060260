package cache

import (
	"context"
	"log/slog"
	"time"

	"devswipe/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker stores revoked bearer token ids in Redis.
type TokenRevoker struct {
	rdb *redis.Client
}

// NewTokenRevoker returns a revoker backed by rdb.
func NewTokenRevoker(rdb *redis.Client) *TokenRevoker {
	return &TokenRevoker{rdb: rdb}
}

// Revoke marks jti revoked for ttl.
func (r *TokenRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return r.rdb.Set(ctx, RevokedTokenKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether jti was revoked. Store errors are logged and
// returned so the caller can decide.
func (r *TokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, RevokedTokenKey(jti)).Result()
	if err != nil {
		middleware.Logger.WarnContext(ctx, "token revocation lookup failed", slog.String("error", err.Error()))
		return false, err
	}
	return n > 0, nil
}
