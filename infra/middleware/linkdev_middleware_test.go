package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/metrics"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	users map[string]*domain.User
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, apperr.Unauthorized("")
}

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(Recover())
	app.Use(RequestID())
	return app
}

func decodeError(t *testing.T, body io.Reader) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{"app error", apperr.NotFound("Job"), 404, apperr.CodeNotFound, "Job not found"},
		{"conflict", apperr.Conflict("Already applied to this job"), 409, apperr.CodeConflict, "Already applied to this job"},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"), 405, "METHOD_NOT_ALLOWED", "Method Not Allowed"},
		{"unexpected", errors.New("boom"), 500, apperr.CodeInternalError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeError(t, resp.Body)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantDetail, body.Detail)
			assert.Equal(t, body.Detail, body.Error.Message)
			assert.NotEmpty(t, body.RequestID)
			assert.Equal(t, body.RequestID, resp.Header.Get(HeaderRequestID))
		})
	}
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return apperr.ValidationFailed("email: field required").
			WithDetail("fields", map[string]string{"email": "field required"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body := decodeError(t, resp.Body)
	fields, ok := body.Error.Details["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "field required", fields["email"])
}

func TestRequestID_PropagatesIncomingHeader(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalsRequestID).(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "req-123", string(data))
	assert.Equal(t, "req-123", resp.Header.Get(HeaderRequestID))
}

func TestRecover(t *testing.T) {
	app := newTestApp()
	app.Get("/", func(c *fiber.Ctx) error { panic("kaboom") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, apperr.CodeInternalError, decodeError(t, resp.Body).Error.Code)
}

func TestAuthenticate(t *testing.T) {
	alice := &domain.User{ID: "u-alice", Email: "alice@example.com", Role: domain.RoleJobSeeker}
	auth := fakeAuthenticator{users: map[string]*domain.User{"good-token": alice}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", 401},
		{"wrong scheme", "Basic good-token", 401},
		{"no token", "Bearer", 401},
		{"unknown token", "Bearer bad-token", 401},
		{"valid", "Bearer good-token", 200},
		{"lower-case scheme", "bearer good-token", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/me", Authenticate(auth), func(c *fiber.Ctx) error {
				user, ok := CurrentUser(c)
				if !ok {
					return errors.New("no user in locals")
				}
				return c.SendString(user.ID)
			})

			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == 401 {
				assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
				return
			}
			data, _ := io.ReadAll(resp.Body)
			assert.Equal(t, alice.ID, string(data))
		})
	}
}

func TestAuthenticate_SkipsPreflight(t *testing.T) {
	app := newTestApp()
	app.Options("/me", Authenticate(fakeAuthenticator{}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("OPTIONS", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	m := metrics.New()
	app := newTestApp()
	app.Use(Metrics(m))
	app.Get("/jobs/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "missing" {
			return apperr.NotFound("Job")
		}
		return c.SendStatus(fiber.StatusOK)
	})

	for _, path := range []string{"/jobs/a", "/jobs/b", "/jobs/missing"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/jobs/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/jobs/:id", "404")))
}

func TestValidateContentType(t *testing.T) {
	app := newTestApp()
	app.Use(ValidateContentType())
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	tests := []struct {
		name        string
		contentType string
		body        string
		want        int
	}{
		{"json", "application/json", `{}`, 200},
		{"json with charset", "application/json; charset=utf-8", `{}`, 200},
		{"empty body", "", "", 200},
		{"xml", "application/xml", "<a/>", 415},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(fiber.HeaderContentType, tt.contentType)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer a b", "", false},
		{"Token abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		if token != tt.token || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, token, ok, tt.token, tt.ok)
		}
	}
}
