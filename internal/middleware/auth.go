// Package middleware provides the Fiber middleware shared by all routes:
// authentication, logging, tracing, rate limiting and request deadlines.
package middleware

import (
	"context"
	"errors"
	"strings"

	"devswipe/internal/auth"
	"devswipe/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired.
const (
	LocalUserID = "userID"
	LocalUser   = "user"
	LocalClaims = "claims"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// UserResolver loads the account a verified token refers to.
type UserResolver func(ctx context.Context, email string) (*models.User, error)

// AuthOptions tune where AuthRequired looks for the token.
type AuthOptions struct {
	// AllowQueryToken accepts ?token= for clients that cannot set headers,
	// such as browser WebSocket handshakes.
	AllowQueryToken bool
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", errors.New("Authorization header required")
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("Invalid authorization header format")
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError(msg))
}

// AuthRequired verifies the bearer token, re-resolves the caller by the email
// it carries and stores the user in locals. There is no server-side session:
// every request repeats the lookup.
func AuthRequired(verifier TokenVerifier, resolve UserResolver, opts AuthOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c)
		if err != nil && opts.AllowQueryToken {
			if q := c.Query("token"); q != "" {
				token, err = q, nil
			}
		}
		if err != nil {
			return unauthorized(c, err.Error())
		}

		ctx := c.UserContext()
		claims, err := verifier.Verify(ctx, token)
		if err != nil {
			if errors.Is(err, auth.ErrRevokedToken) {
				return unauthorized(c, "Token has been revoked")
			}
			return unauthorized(c, "Invalid or expired token")
		}

		user, err := resolve(ctx, claims.Email())
		if err != nil {
			if models.IsCode(err, models.CodeNotFound) {
				return unauthorized(c, "User no longer exists")
			}
			Logger.ErrorContext(ctx, "failed to resolve authenticated user", "error", err.Error())
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUser, user)
		c.Locals(LocalClaims, claims)
		c.SetUserContext(context.WithValue(ctx, UserIDKey, user.ID))
		return c.Next()
	}
}
