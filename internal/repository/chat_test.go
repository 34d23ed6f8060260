package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"devswipe/internal/models"
	"devswipe/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_FindOrCreateConversation(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com", "alice")
	bob := testutil.CreateUser(t, db, "bob@example.com", "bob")

	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first, err := repo.FindOrCreateConversation(ctx, bob.ID, alice.ID, "hi", t0)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, first.User1ID)
	assert.Equal(t, bob.ID, first.User2ID)

	t1 := t0.Add(time.Minute)
	second, err := repo.FindOrCreateConversation(ctx, alice.ID, bob.ID, "hello back", t1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "hello back", second.LastMessage)
	require.NotNil(t, second.LastMessageAt)
	assert.True(t, second.LastMessageAt.Equal(t1))

	var count int64
	db.Model(&models.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)

	byPair, err := repo.GetConversationByPair(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, byPair.ID)

	_, err = repo.GetConversationByPair(ctx, alice.ID, 999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestChatRepository_ConcurrentFirstMessages(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com", "alice")
	bob := testutil.CreateUser(t, db, "bob@example.com", "bob")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := alice.ID, bob.ID
			if i%2 == 1 {
				from, to = to, from
			}
			err := repo.RecordMessage(ctx, &models.Message{
				SenderID:    from,
				ReceiverID:  to,
				Content:     "ping",
				MessageType: models.MessageTypeText,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	var convs, msgs int64
	db.Model(&models.Conversation{}).Count(&convs)
	db.Model(&models.Message{}).Count(&msgs)
	assert.Equal(t, int64(1), convs)
	assert.Equal(t, int64(8), msgs)
}

func TestChatRepository_MessagesAndReadState(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com", "alice")
	bob := testutil.CreateUser(t, db, "bob@example.com", "bob")
	carol := testutil.CreateUser(t, db, "carol@example.com", "carol")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	send := func(from, to uint, content string, offset time.Duration) *models.Message {
		m := &models.Message{
			SenderID:    from,
			ReceiverID:  to,
			Content:     content,
			MessageType: models.MessageTypeText,
			CreatedAt:   base.Add(offset),
		}
		require.NoError(t, repo.RecordMessage(ctx, m))
		return m
	}

	m1 := send(alice.ID, bob.ID, "one", 0)
	send(bob.ID, alice.ID, "two", time.Second)
	send(alice.ID, bob.ID, "three", 2*time.Second)
	send(carol.ID, bob.ID, "from carol", 3*time.Second)

	require.NotNil(t, m1.Sender)
	assert.Equal(t, "alice", m1.Sender.Username)
	require.NotNil(t, m1.Receiver)
	assert.NotZero(t, m1.ConversationID)
	assert.False(t, m1.IsRead)

	t.Run("history is ordered oldest first in both directions", func(t *testing.T) {
		msgs, err := repo.ListMessagesBetween(ctx, bob.ID, alice.ID, 50, 0)
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, []string{"one", "two", "three"}, []string{msgs[0].Content, msgs[1].Content, msgs[2].Content})

		page, err := repo.ListMessagesBetween(ctx, alice.ID, bob.ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "three", page[0].Content)
	})

	t.Run("unread counts group by sender", func(t *testing.T) {
		counts, err := repo.UnreadCountsBySender(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[alice.ID])
		assert.Equal(t, int64(1), counts[carol.ID])

		total, err := repo.CountUnread(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("mark read only touches one sender and is idempotent", func(t *testing.T) {
		n, err := repo.MarkReadFrom(ctx, bob.ID, alice.ID, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.MarkReadFrom(ctx, bob.ID, alice.ID, base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Zero(t, n)

		total, err := repo.CountUnread(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		got, err := repo.GetMessageByID(ctx, m1.ID)
		require.NoError(t, err)
		assert.True(t, got.IsRead)
		require.NotNil(t, got.ReadAt)

		aliceUnread, err := repo.CountUnread(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), aliceUnread)
	})

	t.Run("conversations list newest first with participants", func(t *testing.T) {
		convs, err := repo.ListConversations(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, convs, 2)
		assert.Equal(t, "from carol", convs[0].LastMessage)
		assert.Equal(t, "three", convs[1].LastMessage)
		other := convs[0].OtherUser(bob.ID)
		require.NotNil(t, other)
		assert.Equal(t, carol.ID, other.ID)
		assert.NotNil(t, other.Profile)
	})

	t.Run("missing message", func(t *testing.T) {
		_, err := repo.GetMessageByID(ctx, 4242)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}
