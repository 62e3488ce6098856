package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tweetnest/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 25)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	tests := []struct {
		name   string
		url    string
		limit  float64
		offset float64
	}{
		{"defaults", "/items", 25, 0},
		{"custom", "/items?limit=10&offset=30", 10, 30},
		{"negative values fall back", "/items?limit=-5&offset=-3", 25, 0},
		{"limit is capped", "/items?limit=5000", 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body map[string]float64
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.limit, body["limit"])
			assert.Equal(t, tt.offset, body["offset"])
		})
	}
}

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	s := &Server{}
	app := fiber.New()

	tests := []struct {
		err    error
		status int
	}{
		{models.NewValidationError("bad"), http.StatusBadRequest},
		{models.NewNotFoundMessage("missing"), http.StatusNotFound},
		{models.NewUnauthorizedError("who"), http.StatusUnauthorized},
		{models.NewForbiddenError("no"), http.StatusForbidden},
		{models.NewConflictError("taken"), http.StatusConflict},
		{models.NewInternalError(assert.AnError), http.StatusInternalServerError},
	}
	for i, tt := range tests {
		tt := tt
		path := fmt.Sprintf("/err/%d", i)
		app.Get(path, func(c *fiber.Ctx) error {
			return s.respondServiceError(c, tt.err)
		})

		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode)
	}
}

func TestParseIDInvalid(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		if _, err := s.parseID(c, "id"); err != nil {
			return nil
		}
		return c.SendStatus(http.StatusOK)
	})

	for _, raw := range []string{"abc", "0", "-4"} {
		req := httptest.NewRequest(http.MethodGet, "/things/"+raw, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, raw)
	}
}
