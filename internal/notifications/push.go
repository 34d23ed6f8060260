package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// ErrUnregisteredToken means the gateway will never deliver to this token
// again and it should be forgotten.
var ErrUnregisteredToken = errors.New("push token is no longer valid")

// Push is one notification addressed to a device.
type Push struct {
	Token string
	Title string
	Body  string
	Data  map[string]any
}

// PushGateway delivers pushes to a vendor service.
type PushGateway interface {
	Name() string
	Send(ctx context.Context, p Push) error
}

// LogGateway records pushes instead of sending them. It is used when no
// vendor credentials are configured.
type LogGateway struct {
	Log *slog.Logger
}

func (g *LogGateway) Name() string { return "log" }

func (g *LogGateway) Send(ctx context.Context, p Push) error {
	if g.Log != nil {
		g.Log.InfoContext(ctx, "push notification (not sent)",
			"token_suffix", tokenSuffix(p.Token), "title", p.Title, "body", p.Body)
	}
	return nil
}

// APNsConfig holds token-based authentication settings for Apple push.
type APNsConfig struct {
	KeyPath    string
	KeyID      string
	TeamID     string
	Topic      string
	Production bool
}

// APNsGateway sends pushes through Apple Push Notification service.
type APNsGateway struct {
	client *apns2.Client
	topic  string
}

// NewAPNsGateway loads the .p8 signing key and builds a token client.
func NewAPNsGateway(cfg APNsConfig) (*APNsGateway, error) {
	authKey, err := token.AuthKeyFromFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("read APNs auth key: %w", err)
	}
	authToken := &token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	}
	client := apns2.NewTokenClient(authToken)
	if cfg.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}
	return &APNsGateway{client: client, topic: cfg.Topic}, nil
}

func (g *APNsGateway) Name() string { return "apns" }

func (g *APNsGateway) Send(ctx context.Context, p Push) error {
	res, err := g.client.PushWithContext(ctx, g.notification(p))
	if err != nil {
		return fmt.Errorf("apns push: %w", err)
	}
	if res.Sent() {
		return nil
	}
	switch res.Reason {
	case apns2.ReasonBadDeviceToken, apns2.ReasonUnregistered, apns2.ReasonDeviceTokenNotForTopic:
		return ErrUnregisteredToken
	}
	return fmt.Errorf("apns rejected push: %d %s", res.StatusCode, res.Reason)
}

func (g *APNsGateway) notification(p Push) *apns2.Notification {
	pl := payload.NewPayload().AlertTitle(p.Title).AlertBody(p.Body).Sound("default")
	for k, v := range p.Data {
		pl = pl.Custom(k, v)
	}
	return &apns2.Notification{
		DeviceToken: p.Token,
		Topic:       g.topic,
		Payload:     pl,
		Priority:    apns2.PriorityHigh,
	}
}

func tokenSuffix(t string) string {
	if len(t) <= 6 {
		return t
	}
	return t[len(t)-6:]
}
