package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"devswipe/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := map[string]string{
		"id":          "ID",
		"userId":      "user ID",
		"otherUserId": "other user ID",
		"slug":        "slug",
	}
	for in, want := range tests {
		assert.Equal(t, want, humanizeParam(in), in)
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  Pagination
	}{
		{"", Pagination{Limit: defaultListLimit}},
		{"?limit=5&offset=10", Pagination{Limit: 5, Offset: 10}},
		{"?limit=0&offset=-3", Pagination{Limit: defaultListLimit}},
		{"?limit=1000", Pagination{Limit: maxPaginationLimit}},
		{"?limit=abc", Pagination{Limit: defaultListLimit}},
	}

	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c, defaultListLimit)
		return c.SendStatus(fiber.StatusOK)
	})

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, tt.want, got, tt.query)
	}
}

func TestFailMapping(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/:kind", func(c *fiber.Ctx) error {
		switch c.Params("kind") {
		case "notfound":
			return s.fail(c, models.NewNotFoundError("Project", 7))
		case "forbidden":
			return s.fail(c, models.NewForbiddenError("Not yours"))
		default:
			return s.fail(c, errors.New("connection refused by db at 10.0.0.5"))
		}
	})

	tests := []struct {
		kind   string
		status int
		code   string
	}{
		{"notfound", http.StatusNotFound, models.CodeNotFound},
		{"forbidden", http.StatusForbidden, models.CodeForbidden},
		{"boom", http.StatusInternalServerError, models.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			status, body := send(t, app, httptest.NewRequest(http.MethodGet, "/"+tt.kind, nil))
			assert.Equal(t, tt.status, status)
			resp := decode[models.ErrorResponse](t, body)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotContains(t, resp.Error, "10.0.0.5")
		})
	}
}
