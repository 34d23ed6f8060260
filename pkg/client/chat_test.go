package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat/messages", func(w http.ResponseWriter, r *http.Request) {
		var in SendRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		switch in.ReceiverID {
		case 2:
			writeJSON(w, http.StatusCreated, SendResult{Success: true, Message: &Message{ID: 11, Content: in.Content}})
		case 1:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot message yourself", "code": FailureSelfMessageRejected})
		case 404:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "receiver not found", "code": FailureReceiverNotFound})
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Validation failed", "code": "VALIDATION_ERROR"})
		}
	})
	c := newTestClient(t, mux)
	ctx := context.Background()
	s := signedIn()

	res, err := c.SendMessage(ctx, s, SendRequest{ReceiverID: 2, Content: "hi"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "hi", res.Message.Content)

	res, err = c.SendMessage(ctx, s, SendRequest{ReceiverID: 1, Content: "me"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, FailureSelfMessageRejected, res.Failure)
	assert.Nil(t, res.Message)

	res, err = c.SendMessage(ctx, s, SendRequest{ReceiverID: 404, Content: "who"})
	require.NoError(t, err)
	assert.Equal(t, FailureReceiverNotFound, res.Failure)

	_, err = c.SendMessage(ctx, s, SendRequest{ReceiverID: 3})
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestConversationEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/chat/conversations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []ConversationSummary{{ConversationID: 5, UnreadCount: 2, OtherUser: PublicUser{ID: 2}}})
	})
	mux.HandleFunc("GET /api/chat/messages/{other}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.PathValue("other"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "2", r.URL.Query().Get("size"))
		writeJSON(w, http.StatusOK, MessagePage{Messages: []Message{{ID: 3}}, Page: 1, Size: 2})
	})
	mux.HandleFunc("POST /api/chat/messages/{other}/mark-as-read", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int64{"updated": 2})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()
	s := signedIn()

	convs, err := c.Conversations(ctx, s)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, int64(2), convs[0].UnreadCount)

	page, err := c.Messages(ctx, s, 2, 1, 2)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Len(t, page.Messages, 1)

	n, err := c.MarkAsRead(ctx, s, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestPushTokensFlagsAndUpload(t *testing.T) {
	var registered string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/notifications/register-token", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		registered = body["token"]
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	mux.HandleFunc("POST /api/notifications/unregister-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/feature-flags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"push_notifications": true, "image_webp": false})
	})
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "avatar.png", hdr.Filename)
		writeJSON(w, http.StatusCreated, UploadResult{URL: "http://cdn/x.png", Key: "x.png", Size: int64(len(data))})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()
	s := signedIn()

	require.NoError(t, c.RegisterPushToken(ctx, s, "device-1"))
	assert.Equal(t, "device-1", registered)
	require.NoError(t, c.UnregisterPushToken(ctx, s))

	flags, err := c.FeatureFlags(ctx, s)
	require.NoError(t, err)
	assert.True(t, flags["push_notifications"])
	assert.False(t, flags["image_webp"])

	up, err := c.Upload(ctx, s, "avatar.png", strings.NewReader("fake-png"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), up.Size)
	assert.Equal(t, "x.png", up.Key)
}
