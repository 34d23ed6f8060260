package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()

	a1, err := hub.Register(1, nil)
	require.NoError(t, err)
	a2, err := hub.Register(1, nil)
	require.NoError(t, err)
	b, err := hub.Register(2, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, hub.ConnectionCount())
	assert.True(t, hub.IsOnline(1))

	hub.Broadcast(1, []byte("for-one"))
	assert.Equal(t, "for-one", string(<-a1.Send))
	assert.Equal(t, "for-one", string(<-a2.Send))
	assert.Empty(t, b.Send)

	hub.UnregisterClient(a1)
	hub.UnregisterClient(a1)
	assert.True(t, hub.IsOnline(1))
	hub.UnregisterClient(a2)
	assert.False(t, hub.IsOnline(1))
	assert.Equal(t, 1, hub.ConnectionCount())

	require.NoError(t, hub.Shutdown(context.Background()))
	_, ok := <-b.Send
	assert.False(t, ok, "shutdown closes client queues")
	_, err = hub.Register(3, nil)
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestHub_PerUserLimit(t *testing.T) {
	hub := NewHub()
	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(9, nil)
		require.NoError(t, err)
	}
	_, err := hub.Register(9, nil)
	assert.ErrorIs(t, err, ErrUserFull)
	_ = hub.Shutdown(context.Background())
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	c, err := hub.Register(5, nil)
	require.NoError(t, err)

	for i := 0; i < sendBuffer+3; i++ {
		c.TrySend([]byte("x"))
	}
	assert.Len(t, c.Send, sendBuffer)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.NotPanics(t, func() { c.TrySend([]byte("late")) })
}

func TestHub_StartWiringForwardsRedisEvents(t *testing.T) {
	rdb := newTestRedis(t)
	hub := NewHub()
	n := NewNotifier(rdb, hub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := hub.Register(11, nil)
	require.NoError(t, err)
	other, err := hub.Register(12, nil)
	require.NoError(t, err)
	require.NoError(t, hub.StartWiring(ctx, n))

	require.NoError(t, n.PublishEvent(ctx, 11, Event{Type: EventMessagesRead, Payload: MessagesReadPayload{ReaderID: 12, Count: 2}}))
	assert.Eventually(t, func() bool { return len(c.Send) == 1 }, testEventuallyTimeout, testPollInterval)
	assert.JSONEq(t, `{"type":"messages_read","payload":{"reader_id":12,"count":2}}`, string(<-c.Send))
	assert.Empty(t, other.Send)

	require.NoError(t, n.PublishBroadcast(ctx, []byte("everyone")))
	assert.Eventually(t, func() bool { return len(other.Send) == 1 }, testEventuallyTimeout, testPollInterval)

	_ = hub.Shutdown(context.Background())
}

func TestParseUserChannel(t *testing.T) {
	tests := []struct {
		channel string
		want    uint
		ok      bool
	}{
		{"notifications:user:1", 1, true},
		{"notifications:user:100", 100, true},
		{"notifications:user:0", 0, false},
		{"notifications:user:abc", 0, false},
		{"chat:conv:3", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseUserChannel(tt.channel)
		assert.Equal(t, tt.ok, ok, tt.channel)
		assert.Equal(t, tt.want, got, tt.channel)
	}
}
