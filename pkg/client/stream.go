package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// StreamNotifications opens the realtime WebSocket for the caller and calls
// fn for every event until ctx ends, fn returns an error or the server
// closes the connection. It returns ctx.Err() when the context ended, fn's
// error when fn stopped the stream and nil on a normal server close.
func (c *Client) StreamNotifications(ctx context.Context, s *Session, fn func(Event) error) error {
	if err := requireSession(s); err != nil {
		return err
	}

	u := *c.baseURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = c.baseURL.Path + apiPrefix + "/ws"
	u.RawQuery = "token=" + s.Token()

	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	conn, resp, err := c.dialer.DialContext(ctx, u.String(), header)
	if resp != nil && resp.Body != nil {
		if err != nil && resp.StatusCode >= http.StatusBadRequest {
			apiErr := decodeResponse(resp, nil)
			_ = resp.Body.Close()
			return apiErr
		}
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial realtime stream: %w", err)
	}

	// Closing the connection is the only way to unblock ReadMessage.
	var once sync.Once
	closeConn := func() {
		once.Do(func() {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
		})
	}
	defer closeConn()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			closeConn()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read realtime stream: %w", err)
		}

		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil || evt.Type == "" {
			continue
		}
		if err := fn(evt); err != nil {
			if errors.Is(err, ErrStopStream) {
				return nil
			}
			return err
		}
	}
}

// ErrStopStream may be returned by a StreamNotifications callback to end
// the stream without an error.
var ErrStopStream = errors.New("client: stop stream")
