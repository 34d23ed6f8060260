package cache

import (
	"fmt"
)

// Redis key layout. Entity reads are never cached; Redis only holds
// short-lived coordination state.
const (
	RevokedTokenPrefix = "auth:revoked:%s"
	RateLimitPrefix    = "rl:%s:%s"
	UserChannelPrefix  = "notifications:user:%d"
	UserChannelPattern = "notifications:user:*"
	BroadcastChannel   = "notifications:broadcast"
)

// RevokedTokenKey is the key marking token id jti as revoked.
func RevokedTokenKey(jti string) string {
	return fmt.Sprintf(RevokedTokenPrefix, jti)
}

// RateLimitKey is the counter key for one caller on one resource.
func RateLimitKey(resource, id string) string {
	return fmt.Sprintf(RateLimitPrefix, resource, id)
}

// UserChannel is the pub/sub channel carrying realtime events for userID.
func UserChannel(userID uint) string {
	return fmt.Sprintf(UserChannelPrefix, userID)
}
