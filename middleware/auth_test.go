package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"snake-arena/models"
	"snake-arena/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier map[string]uint

func (f fakeVerifier) Verify(token string) (uint, error) {
	id, ok := f[token]
	if !ok {
		return 0, services.ErrUnauthorized
	}
	return id, nil
}

type fakeUsers struct {
	users map[uint]*models.User
	err   error
}

func (f fakeUsers) GetUser(_ context.Context, id uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", services.ErrNotFound)
	}
	return u, nil
}

func newAuthApp(users fakeUsers) *fiber.App {
	app := fiber.New()
	tokens := fakeVerifier{"good": 1, "orphan": 2}
	app.Get("/me", RequireAuth(tokens, users), func(c *fiber.Ctx) error {
		return c.JSON(CurrentUser(c))
	})
	return app
}

func errorBody(t *testing.T, body io.Reader) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out["error"]
}

func TestRequireAuth(t *testing.T) {
	users := fakeUsers{users: map[uint]*models.User{1: {ID: 1, Username: "alice"}}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "not authenticated"},
		{"wrong scheme", "Basic Zm9vOmJhcg==", fiber.StatusUnauthorized, "invalid authentication credentials"},
		{"bearer without token", "Bearer ", fiber.StatusUnauthorized, "invalid authentication credentials"},
		{"unknown token", "Bearer nope", fiber.StatusUnauthorized, "invalid authentication credentials"},
		{"token for deleted user", "Bearer orphan", fiber.StatusUnauthorized, "invalid authentication credentials"},
		{"valid", "Bearer good", fiber.StatusOK, ""},
		{"scheme is case-insensitive", "bearer good", fiber.StatusOK, ""},
	}

	app := newAuthApp(users)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, errorBody(t, resp.Body))
				return
			}
			var u models.User
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&u))
			assert.Equal(t, "alice", u.Username)
		})
	}
}

func TestRequireAuth_StoreFailureIs500(t *testing.T) {
	app := newAuthApp(fakeUsers{err: errors.New("db down")})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	app := fiber.New()
	app.Use(RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	for _, path := range []string{"/ok", "/missing"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	out := buf.String()
	assert.True(t, strings.Contains(out, "level=INFO") && strings.Contains(out, "path=/ok") && strings.Contains(out, "status=200"), out)
	assert.True(t, strings.Contains(out, "level=WARN") && strings.Contains(out, "path=/missing") && strings.Contains(out, "status=404"), out)
}
