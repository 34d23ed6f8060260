package server

import (
	"strings"

	"devswipe/internal/models"
	"devswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListProjects handles GET /api/projects
// @Summary List projects
// @Description Newest first, optionally filtered by tag, difficulty and a text query
// @Tags projects
// @Produce json
// @Param tag query string false "Tag the project must carry"
// @Param difficulty query string false "beginner, intermediate or advanced"
// @Param q query string false "Text search over title and preview"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} ListResponse[models.Project]
// @Router /projects [get]
func (s *Server) ListProjects(c *fiber.Ctx) error {
	page := parsePagination(c, defaultListLimit)
	items, total, err := s.projectService.List(c.UserContext(), models.ProjectFilter{
		Tag:        strings.TrimSpace(c.Query("tag")),
		Difficulty: strings.TrimSpace(c.Query("difficulty")),
		Search:     strings.TrimSpace(c.Query("q")),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(newListResponse(items, total, page))
}

// GetProject handles GET /api/projects/:id
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} models.ErrorResponse
// @Router /projects/{id} [get]
func (s *Server) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	project, err := s.projectService.GetByID(c.UserContext(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(project)
}

// GetUserProjects handles GET /api/projects/user/:userId
// @Summary Projects by owner
// @Tags projects
// @Produce json
// @Param userId path int true "Owner ID"
// @Success 200 {object} ListResponse[models.Project]
// @Router /projects/user/{userId} [get]
func (s *Server) GetUserProjects(c *fiber.Ctx) error {
	ownerID, err := parseID(c, "userId")
	if err != nil {
		return nil
	}
	return s.listProjectsByOwner(c, ownerID)
}

// GetMyProjects handles GET /api/projects/mine
// @Summary Caller's projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListResponse[models.Project]
// @Router /projects/mine [get]
func (s *Server) GetMyProjects(c *fiber.Ctx) error {
	return s.listProjectsByOwner(c, callerID(c))
}

func (s *Server) listProjectsByOwner(c *fiber.Ctx, ownerID uint) error {
	page := parsePagination(c, defaultListLimit)
	items, total, err := s.projectService.ListByOwner(c.UserContext(), ownerID, page.Limit, page.Offset)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(newListResponse(items, total, page))
}

// CreateProject handles POST /api/projects
// @Summary Post a project idea
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateProjectInput true "Project"
// @Success 201 {object} models.Project
// @Failure 400 {object} models.ErrorResponse
// @Router /projects [post]
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req service.CreateProjectInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	project, err := s.projectService.Create(c.UserContext(), callerID(c), req)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject handles PUT /api/projects/:id
// @Summary Patch a project
// @Description Only supplied fields change. Owner only.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body service.ProjectPatch true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /projects/{id} [put]
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req service.ProjectPatch
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	project, err := s.projectService.Update(c.UserContext(), service.UpdateProjectInput{
		CallerID: callerID(c),
		ID:       id,
		Patch:    req,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(project)
}

// DeleteProject handles DELETE /api/projects/:id
// @Summary Delete a project
// @Tags projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Router /projects/{id} [delete]
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.projectService.Delete(c.UserContext(), callerID(c), id); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
