package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"devswipe/internal/featureflags"
	"devswipe/internal/models"
	"devswipe/internal/notifications"
	"devswipe/internal/repository"
	"devswipe/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type chatFixture struct {
	db       *gorm.DB
	svc      *ChatService
	notifier *recordingNotifier
	alice    *models.User
	bob      *models.User
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	n := &recordingNotifier{}
	svc := NewChatService(repository.NewChatRepository(db), repository.NewUserRepository(db), n, PageConfig{Default: 50, Max: 100})
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return &chatFixture{
		db:       db,
		svc:      svc,
		notifier: n,
		alice:    testutil.CreateUser(t, db, "alice@example.com", "alice"),
		bob:      testutil.CreateUser(t, db, "bob@example.com", "bob"),
	}
}

func (f *chatFixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestChatService_SendMessage(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	res, err := f.svc.SendMessage(ctx, SendMessageInput{SenderID: f.alice.ID, ReceiverID: f.bob.ID, Content: "  hi bob  "})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotNil(t, res.Message)
	assert.Equal(t, "hi bob", res.Message.Content)
	assert.Equal(t, models.MessageTypeText, res.Message.MessageType)
	assert.Equal(t, "alice", res.Message.Sender.Username)
	assert.Equal(t, "bob", res.Message.Receiver.Username)
	assert.False(t, res.Message.IsRead)

	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, res.Message.ID, f.notifier.messages[0].ID)

	reply, err := f.svc.SendMessage(ctx, SendMessageInput{SenderID: f.bob.ID, ReceiverID: f.alice.ID, Content: "hey"})
	require.NoError(t, err)
	assert.Equal(t, res.Message.ConversationID, reply.Message.ConversationID, "pair order does not matter")
	assert.Equal(t, int64(1), f.count(t, &models.Conversation{}))
}

func TestChatService_SendMessageTaggedFailures(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	res, err := f.svc.SendMessage(ctx, SendMessageInput{SenderID: f.alice.ID, ReceiverID: f.alice.ID, Content: "me"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, FailureSelfMessageRejected, res.Failure)
	assert.NotEmpty(t, res.Error)

	res, err = f.svc.SendMessage(ctx, SendMessageInput{SenderID: f.alice.ID, ReceiverID: 9999, Content: "anyone?"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, FailureReceiverNotFound, res.Failure)

	assert.Zero(t, f.count(t, &models.Message{}))
	assert.Zero(t, f.count(t, &models.Conversation{}))
	assert.Empty(t, f.notifier.messages)
}

func TestChatService_SendMessageValidation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   SendMessageInput
	}{
		{"empty", SendMessageInput{Content: "   "}},
		{"too long", SendMessageInput{Content: strings.Repeat("é", maxMessageContentLen+1)}},
		{"unknown type", SendMessageInput{Content: "x", Type: "video"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.SenderID, tt.in.ReceiverID = f.alice.ID, f.bob.ID
			_, err := f.svc.SendMessage(ctx, tt.in)
			assertCode(t, err, models.CodeValidation)
		})
	}

	res, err := f.svc.SendMessage(ctx, SendMessageInput{
		SenderID: f.alice.ID, ReceiverID: f.bob.ID,
		Content: strings.Repeat("é", maxMessageContentLen), Type: models.MessageTypeImage,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestChatService_ConversationsAndUnread(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()
	carol := testutil.CreateUser(t, f.db, "carol@example.com", "carol")

	send := func(from, to *models.User, content string) {
		res, err := f.svc.SendMessage(ctx, SendMessageInput{SenderID: from.ID, ReceiverID: to.ID, Content: content})
		require.NoError(t, err)
		require.True(t, res.Success)
	}
	send(f.alice, f.bob, "a1")
	send(f.alice, f.bob, "a2")
	send(f.bob, f.alice, "b1")
	send(carol, f.bob, "c1")

	convs, err := f.svc.GetConversations(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "carol", convs[0].OtherUser.Username)
	assert.Equal(t, int64(1), convs[0].UnreadCount)
	assert.Equal(t, "alice", convs[1].OtherUser.Username)
	assert.Equal(t, "b1", convs[1].LastMessage)
	assert.Equal(t, int64(2), convs[1].UnreadCount)

	total, err := f.svc.GetUnreadCount(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	n, err := f.svc.MarkMessagesAsRead(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.Len(t, f.notifier.reads, 1)
	assert.Equal(t, readEvent{senderID: f.alice.ID, readerID: f.bob.ID, count: 2}, f.notifier.reads[0])

	n, err = f.svc.MarkMessagesAsRead(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, f.notifier.reads, 1, "nothing changed, nothing published")

	total, err = f.svc.GetUnreadCount(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	aliceTotal, err := f.svc.GetUnreadCount(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceTotal, "reading bob's inbox leaves alice's alone")
}

func TestChatService_GetConversationMessagesPaging(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		from, to := f.alice, f.bob
		if i%2 == 1 {
			from, to = to, from
		}
		_, err := f.svc.SendMessage(ctx, SendMessageInput{SenderID: from.ID, ReceiverID: to.ID, Content: string(rune('a' + i))})
		require.NoError(t, err)
	}

	page, err := f.svc.GetConversationMessages(ctx, f.bob.ID, f.alice.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 2, page.Size)
	assert.True(t, page.HasMore)
	require.Len(t, page.Messages, 2)
	assert.Equal(t, "a", page.Messages[0].Content)
	assert.Equal(t, "b", page.Messages[1].Content)

	page, err = f.svc.GetConversationMessages(ctx, f.alice.ID, f.bob.ID, 2, 2)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, "e", page.Messages[0].Content)

	page, err = f.svc.GetConversationMessages(ctx, f.alice.ID, f.bob.ID, -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 50, page.Size)
	assert.Len(t, page.Messages, 5)

	page, err = f.svc.GetConversationMessages(ctx, f.alice.ID, f.bob.ID, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, page.Size)
}

type failingGateway struct{}

func (failingGateway) Name() string { return "failing" }
func (failingGateway) Send(context.Context, notifications.Push) error {
	return errors.New("gateway unavailable")
}

func TestChatService_FailingPushNeverFailsSend(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := repository.NewUserRepository(db)
	dispatcher := notifications.NewDispatcher(failingGateway{}, notifications.DispatcherConfig{Workers: 1})
	notifier := NewNotificationService(users, dispatcher, nil, featureflags.NewManager(""))
	svc := NewChatService(repository.NewChatRepository(db), users, notifier, PageConfig{})

	alice := testutil.CreateUser(t, db, "alice@example.com", "alice")
	bob := testutil.CreateUser(t, db, "bob@example.com", "bob")
	require.NoError(t, users.SetPushToken(context.Background(), bob.ID, "bob-device"))

	res, err := svc.SendMessage(context.Background(), SendMessageInput{SenderID: alice.ID, ReceiverID: bob.ID, Content: "ping"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NoError(t, dispatcher.Shutdown(context.Background()))
}
