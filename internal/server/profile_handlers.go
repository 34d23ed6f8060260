package server

import (
	"devswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile
// @Summary Caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileView
// @Router /profile [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	view, err := s.profileService.GetMine(c.UserContext(), callerID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(view)
}

// GetUserProfile handles GET /api/profile/:userId
// @Summary Another user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} models.ProfileView
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{userId} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}
	view, err := s.profileService.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(view)
}

// SaveMyProfile handles POST and PUT /api/profile. Only the supplied fields
// change; the profile is created first when missing.
// @Summary Create or patch the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProfilePatch true "Fields to change"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [put]
func (s *Server) SaveMyProfile(c *fiber.Ctx) error {
	var req service.ProfilePatch
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	profile, err := s.profileService.Save(c.UserContext(), callerID(c), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(profile)
}

// CompleteOnboarding handles POST /api/profile/complete-onboarding
// @Summary Mark onboarding as completed
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserProfile
// @Router /profile/complete-onboarding [post]
func (s *Server) CompleteOnboarding(c *fiber.Ctx) error {
	profile, err := s.profileService.CompleteOnboarding(c.UserContext(), callerID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(profile)
}
