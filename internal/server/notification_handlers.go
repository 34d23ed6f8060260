package server

import (
	"github.com/gofiber/fiber/v2"
)

// PushTokenRequest registers a device for push notifications.
type PushTokenRequest struct {
	Token string `json:"token"`
}

// RegisterPushToken handles POST /api/notifications/register-token
// @Summary Register a push token
// @Description The token is moved away from any other account that held it
// @Tags notifications
// @Accept json
// @Security BearerAuth
// @Param request body PushTokenRequest true "Device token"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Router /notifications/register-token [post]
func (s *Server) RegisterPushToken(c *fiber.Ctx) error {
	var req PushTokenRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if err := s.notificationService.RegisterToken(c.UserContext(), callerID(c), req.Token); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnregisterPushToken handles POST /api/notifications/unregister-token
// @Summary Clear the caller's push token
// @Tags notifications
// @Security BearerAuth
// @Success 204
// @Router /notifications/unregister-token [post]
func (s *Server) UnregisterPushToken(c *fiber.Ctx) error {
	if err := s.notificationService.UnregisterToken(c.UserContext(), callerID(c)); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFeatureFlags handles GET /api/feature-flags
// @Summary Feature flags evaluated for the caller
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Router /feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(s.featureFlags.Snapshot(callerID(c)))
}
