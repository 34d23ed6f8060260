package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu    sync.Mutex
	sent  []Push
	err   error
	block chan struct{}
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) Send(ctx context.Context, p Push) error {
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, p)
	return g.err
}

func (g *fakeGateway) Sent() []Push {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Push(nil), g.sent...)
}

func TestDispatcher_DeliversAndDrainsOnShutdown(t *testing.T) {
	gw := &fakeGateway{}
	d := NewDispatcher(gw, DispatcherConfig{Workers: 2, QueueSize: 10, Timeout: time.Second})

	for i := 0; i < 5; i++ {
		assert.True(t, d.Enqueue(Push{Token: "t", Title: "New message"}))
	}
	require.NoError(t, d.Shutdown(context.Background()))
	assert.Len(t, gw.Sent(), 5)

	assert.False(t, d.Enqueue(Push{Token: "late"}))
	assert.NoError(t, d.Shutdown(context.Background()))
}

func TestDispatcher_FullQueueDrops(t *testing.T) {
	gw := &fakeGateway{block: make(chan struct{})}
	d := NewDispatcher(gw, DispatcherConfig{Workers: 1, QueueSize: 1, Timeout: time.Second})

	accepted := 0
	for i := 0; i < 5; i++ {
		if d.Enqueue(Push{Token: "t"}) {
			accepted++
		}
	}
	assert.Less(t, accepted, 5)
	assert.GreaterOrEqual(t, accepted, 1)

	close(gw.block)
	require.NoError(t, d.Shutdown(context.Background()))
	assert.Len(t, gw.Sent(), accepted)
}

func TestDispatcher_UnregisteredTokenCallback(t *testing.T) {
	gw := &fakeGateway{err: ErrUnregisteredToken}
	forgotten := make(chan string, 1)
	d := NewDispatcher(gw, DispatcherConfig{
		Workers: 1,
		OnUnregistered: func(_ context.Context, token string) {
			forgotten <- token
		},
	})

	d.Enqueue(Push{Token: "dead-device"})
	select {
	case tok := <-forgotten:
		assert.Equal(t, "dead-device", tok)
	case <-time.After(time.Second):
		t.Fatal("callback not invoked")
	}
	require.NoError(t, d.Shutdown(context.Background()))
}

func TestDispatcher_GatewayFailureIsSwallowed(t *testing.T) {
	gw := &fakeGateway{err: errors.New("vendor down")}
	d := NewDispatcher(gw, DispatcherConfig{Workers: 1})
	assert.True(t, d.Enqueue(Push{Token: "t"}))
	require.NoError(t, d.Shutdown(context.Background()))
	assert.Len(t, gw.Sent(), 1)
	assert.Equal(t, "fake", d.Gateway())
}

func TestDispatcher_ShutdownHonoursContext(t *testing.T) {
	gw := &fakeGateway{block: make(chan struct{})}
	d := NewDispatcher(gw, DispatcherConfig{Workers: 1, Timeout: time.Minute})
	d.Enqueue(Push{Token: "t"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Shutdown(ctx), context.DeadlineExceeded)
	close(gw.block)
}

func TestAPNsNotificationPayload(t *testing.T) {
	g := &APNsGateway{topic: "dev.devswipe.app"}
	n := g.notification(Push{
		Token: "abc",
		Title: "alice",
		Body:  "hey there",
		Data:  map[string]any{"sender_id": 3},
	})
	assert.Equal(t, "abc", n.DeviceToken)
	assert.Equal(t, "dev.devswipe.app", n.Topic)

	raw, err := json.Marshal(n.Payload)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	aps := decoded["aps"].(map[string]any)
	alert := aps["alert"].(map[string]any)
	assert.Equal(t, "alice", alert["title"])
	assert.Equal(t, "hey there", alert["body"])
	assert.Equal(t, float64(3), decoded["sender_id"])
}

func TestLogGateway(t *testing.T) {
	g := &LogGateway{}
	assert.Equal(t, "log", g.Name())
	assert.NoError(t, g.Send(context.Background(), Push{Token: "0123456789"}))
	assert.Equal(t, "456789", tokenSuffix("0123456789"))
}
