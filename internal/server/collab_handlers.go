package server

import (
	"strings"

	"devswipe/internal/models"
	"devswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListCollabs handles GET /api/collaborations
// @Summary List collaboration posts
// @Tags collaborations
// @Produce json
// @Param skill query string false "Skill the post needs"
// @Param status query string false "active, filled, completed or cancelled"
// @Param q query string false "Text search over title and description"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} ListResponse[models.CollabPost]
// @Failure 400 {object} models.ErrorResponse
// @Router /collaborations [get]
func (s *Server) ListCollabs(c *fiber.Ctx) error {
	page := parsePagination(c, defaultListLimit)
	items, total, err := s.collabService.List(c.UserContext(), models.CollabFilter{
		Skill:  strings.TrimSpace(c.Query("skill")),
		Status: models.CollabStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		Search: strings.TrimSpace(c.Query("q")),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(newListResponse(items, total, page))
}

// GetCollab handles GET /api/collaborations/:id
// @Summary Get a collaboration post
// @Tags collaborations
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.CollabPost
// @Failure 404 {object} models.ErrorResponse
// @Router /collaborations/{id} [get]
func (s *Server) GetCollab(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	post, err := s.collabService.GetByID(c.UserContext(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(post)
}

// GetUserCollabs handles GET /api/collaborations/user/:userId
// @Summary Collaboration posts by owner
// @Tags collaborations
// @Produce json
// @Param userId path int true "Owner ID"
// @Success 200 {object} ListResponse[models.CollabPost]
// @Router /collaborations/user/{userId} [get]
func (s *Server) GetUserCollabs(c *fiber.Ctx) error {
	ownerID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}
	return s.listCollabsByOwner(c, ownerID)
}

// GetMyCollabs handles GET /api/collaborations/mine
// @Summary Caller's collaboration posts
// @Tags collaborations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListResponse[models.CollabPost]
// @Router /collaborations/mine [get]
func (s *Server) GetMyCollabs(c *fiber.Ctx) error {
	return s.listCollabsByOwner(c, callerID(c))
}

func (s *Server) listCollabsByOwner(c *fiber.Ctx, ownerID uint) error {
	page := parsePagination(c, defaultListLimit)
	items, total, err := s.collabService.ListByOwner(c.UserContext(), ownerID, page.Limit, page.Offset)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(newListResponse(items, total, page))
}

// CreateCollab handles POST /api/collaborations
// @Summary Post a collaboration request
// @Tags collaborations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateCollabInput true "Post"
// @Success 201 {object} models.CollabPost
// @Failure 400 {object} models.ErrorResponse
// @Router /collaborations [post]
func (s *Server) CreateCollab(c *fiber.Ctx) error {
	var req service.CreateCollabInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	post, err := s.collabService.Create(c.UserContext(), callerID(c), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateCollab handles PUT /api/collaborations/:id
// @Summary Patch a collaboration post
// @Description Only supplied fields change. Owner only.
// @Tags collaborations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body service.CollabPatch true "Fields to change"
// @Success 200 {object} models.CollabPost
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /collaborations/{id} [put]
func (s *Server) UpdateCollab(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req service.CollabPatch
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	post, err := s.collabService.Update(c.UserContext(), service.UpdateCollabInput{
		CallerID: callerID(c),
		ID:       id,
		Patch:    req,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(post)
}

// DeleteCollab handles DELETE /api/collaborations/:id
// @Summary Delete a collaboration post
// @Tags collaborations
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Router /collaborations/{id} [delete]
func (s *Server) DeleteCollab(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.collabService.Delete(c.UserContext(), callerID(c), id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
