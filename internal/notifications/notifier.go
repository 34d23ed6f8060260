package notifications

import (
	"context"
	"fmt"
	"runtime/debug"

	"devswipe/internal/cache"
	"devswipe/internal/middleware"
	"devswipe/internal/observability"

	"github.com/redis/go-redis/v9"
)

// LocalDelivery hands a payload straight to this process's connections.
type LocalDelivery interface {
	Broadcast(userID uint, payload []byte)
}

// Notifier publishes realtime events. With Redis every instance receives the
// event through its pattern subscription; without Redis events only reach
// clients connected to this process.
type Notifier struct {
	rdb   *redis.Client
	local LocalDelivery
}

// NewNotifier creates a Notifier. Either argument may be nil.
func NewNotifier(rdb *redis.Client, local LocalDelivery) *Notifier {
	return &Notifier{rdb: rdb, local: local}
}

// Distributed reports whether events travel through Redis.
func (n *Notifier) Distributed() bool { return n != nil && n.rdb != nil }

// PublishUser sends a raw payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload []byte) error {
	if n == nil {
		return nil
	}
	if n.rdb == nil {
		if n.local != nil {
			n.local.Broadcast(userID, payload)
		}
		return nil
	}
	return n.rdb.Publish(ctx, cache.UserChannel(userID), payload).Err()
}

// PublishEvent encodes evt and sends it to userID.
func (n *Notifier) PublishEvent(ctx context.Context, userID uint, evt Event) error {
	data, err := evt.Encode()
	if err != nil {
		return err
	}
	if err := n.PublishUser(ctx, userID, data); err != nil {
		return fmt.Errorf("publish %s to user %d: %w", evt.Type, userID, err)
	}
	observability.RealtimeEvents.WithLabelValues(evt.Type).Inc()
	return nil
}

// PublishBroadcast sends a payload to every connected user.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload []byte) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, cache.BroadcastChannel, payload).Err()
}

// StartPatternSubscriber subscribes to every user channel and the broadcast
// channel and calls onMessage for each incoming message until ctx ends.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, cache.UserChannelPattern, cache.BroadcastChannel)
	// Wait for the subscription confirmation so publishes right after
	// start-up are not lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe notifications: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in notification subscriber",
								"panic", r, "stack", string(debug.Stack()))
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
