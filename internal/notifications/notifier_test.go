package notifications

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

type recordingDelivery struct {
	mu   sync.Mutex
	got  map[uint][]string
	fail bool
}

func (r *recordingDelivery) Broadcast(userID uint, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.got == nil {
		r.got = make(map[uint][]string)
	}
	r.got[userID] = append(r.got[userID], string(payload))
}

func (r *recordingDelivery) For(userID uint) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got[userID]...)
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_NilIsNoop(t *testing.T) {
	var n *Notifier
	assert.NoError(t, n.PublishUser(context.Background(), 1, []byte("x")))
	assert.False(t, n.Distributed())

	n = NewNotifier(nil, nil)
	assert.NoError(t, n.PublishEvent(context.Background(), 1, Event{Type: EventNewMessage}))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), func(string, string) {}))
}

func TestNotifier_LocalDeliveryWithoutRedis(t *testing.T) {
	local := &recordingDelivery{}
	n := NewNotifier(nil, local)

	require.NoError(t, n.PublishEvent(context.Background(), 7, Event{Type: EventNewMessage, Payload: map[string]int{"id": 1}}))
	got := local.For(7)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"type":"new_message","payload":{"id":1}}`, got[0])
}

func TestNotifier_PatternSubscriberRoutesByChannel(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb, nil)
	require.True(t, n.Distributed())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type msg struct{ channel, payload string }
	received := make(chan msg, 4)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel, payload string) {
		received <- msg{channel, payload}
	}))

	require.NoError(t, n.PublishUser(ctx, 42, []byte("hello")))
	select {
	case m := <-received:
		assert.Equal(t, "notifications:user:42", m.channel)
		assert.Equal(t, "hello", m.payload)
	case <-time.After(testEventuallyTimeout):
		t.Fatal("no message delivered")
	}

	require.NoError(t, n.PublishBroadcast(ctx, []byte("all")))
	select {
	case m := <-received:
		assert.Equal(t, "notifications:broadcast", m.channel)
	case <-time.After(testEventuallyTimeout):
		t.Fatal("no broadcast delivered")
	}
}

func TestNotifier_SubscriberStopsOnCancel(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb, nil)
	ctx, cancel := context.WithCancel(context.Background())

	payloads := make(chan string, 4)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(_ string, payload string) {
		payloads <- payload
	}))

	require.NoError(t, n.PublishUser(context.Background(), 1, []byte("before-cancel")))
	assert.Eventually(t, func() bool { return len(payloads) == 1 }, testEventuallyTimeout, testPollInterval)

	cancel()
	<-payloads
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, n.PublishUser(context.Background(), 1, []byte("after-cancel")))
	assert.Never(t, func() bool { return len(payloads) > 0 }, 200*time.Millisecond, testPollInterval)
}
