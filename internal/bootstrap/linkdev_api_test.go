package bootstrap

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/MASTER-2222/linkedin/adapter/out/memory"
	"github.com/MASTER-2222/linkedin/config"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "0",
		Environment:      "test",
		APIPrefix:        "/api",
		LogLevel:         "error",
		MongoURL:         "mongodb://unused",
		MongoDBName:      "linkdev_test",
		JWTSecret:        "test-secret",
		JWTExpireMinutes: 30,
		BcryptCost:       4,
		AllowedOrigins:   []string{"*"},
	}
}

type client struct {
	t   *testing.T
	app *fiber.App
}

func newClient(t *testing.T) *client {
	t.Helper()
	deps := NewMemoryDependencies(testConfig(), memory.NewStore())
	return &client{t: t, app: NewAPI(deps)}
}

// do sends a JSON request and decodes the response body into out when non-nil.
func (c *client) do(method, path, token string, body any, out any) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type tokenBody struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

func (c *client) register(email, role string) tokenBody {
	c.t.Helper()
	var tok tokenBody
	status := c.do("POST", "/api/auth/register", "", map[string]string{
		"email":      email,
		"password":   "s3cret-pass",
		"first_name": "Test",
		"last_name":  "User",
		"role":       role,
	}, &tok)
	require.Equal(c.t, 200, status)
	require.NotEmpty(c.t, tok.AccessToken)
	return tok
}

func TestAPI_JobApplicationScenario(t *testing.T) {
	c := newClient(t)

	alice := c.register("alice@x.com", "job_seeker")
	bob := c.register("bob@x.com", "recruiter")
	assert.Equal(t, "bearer", alice.TokenType)
	assert.Equal(t, "recruiter", bob.User.Role)

	var job struct {
		ID                string `json:"id"`
		PostedBy          string `json:"posted_by"`
		Status            string `json:"status"`
		ApplicationsCount int    `json:"applications_count"`
	}
	status := c.do("POST", "/api/jobs", bob.AccessToken, map[string]any{
		"title":       "X",
		"company":     "Acme",
		"description": "Build things",
		"location":    "Remote",
	}, &job)
	require.Equal(t, 200, status)
	assert.Equal(t, bob.User.ID, job.PostedBy)
	assert.Equal(t, "active", job.Status)

	var msg struct {
		Message string `json:"message"`
	}
	status = c.do("POST", "/api/jobs/"+job.ID+"/apply", alice.AccessToken, map[string]string{"cover_letter": "hello"}, &msg)
	require.Equal(t, 200, status)
	assert.Equal(t, "Application submitted successfully", msg.Message)

	var errBody struct {
		Detail string `json:"detail"`
	}
	status = c.do("POST", "/api/jobs/"+job.ID+"/apply", alice.AccessToken, map[string]string{"cover_letter": "again"}, &errBody)
	assert.Equal(t, 409, status)
	assert.Equal(t, "Already applied to this job", errBody.Detail)

	status = c.do("GET", "/api/jobs/"+job.ID+"/applications", alice.AccessToken, nil, nil)
	assert.Equal(t, 403, status)

	var apps []struct {
		ApplicantID string  `json:"applicant_id"`
		CoverLetter *string `json:"cover_letter"`
		Status      string  `json:"status"`
	}
	status = c.do("GET", "/api/jobs/"+job.ID+"/applications", bob.AccessToken, nil, &apps)
	require.Equal(t, 200, status)
	require.Len(t, apps, 1)
	assert.Equal(t, alice.User.ID, apps[0].ApplicantID)
	require.NotNil(t, apps[0].CoverLetter)
	assert.Equal(t, "hello", *apps[0].CoverLetter)
	assert.Equal(t, "pending", apps[0].Status)

	// The counter moved exactly once despite the rejected second apply.
	status = c.do("GET", "/api/jobs/"+job.ID, "", nil, &job)
	require.Equal(t, 200, status)
	assert.Equal(t, 1, job.ApplicationsCount)
}

func TestAPI_AuthFailures(t *testing.T) {
	c := newClient(t)
	c.register("alice@x.com", "job_seeker")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"duplicate email", "POST", "/api/auth/register", "", map[string]string{
			"email": "ALICE@x.com", "password": "pw", "first_name": "A", "last_name": "B",
		}, 409},
		{"invalid email", "POST", "/api/auth/register", "", map[string]string{
			"email": "not-an-email", "password": "pw", "first_name": "A", "last_name": "B",
		}, 400},
		{"wrong password", "POST", "/api/auth/login", "", map[string]string{
			"email": "alice@x.com", "password": "nope",
		}, 401},
		{"no token", "GET", "/api/users/me", "", nil, 401},
		{"garbage token", "GET", "/api/users/me", "not.a.jwt", nil, 401},
		{"post job without token", "POST", "/api/jobs", "", nil, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.do(tt.method, tt.path, tt.token, tt.body, nil))
		})
	}
}

func TestAPI_ConnectionsAndFeed(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice@x.com", "job_seeker")
	bob := c.register("bob@x.com", "recruiter")

	// Seekers cannot post jobs.
	status := c.do("POST", "/api/jobs", alice.AccessToken, map[string]any{
		"title": "X", "company": "Acme", "description": "d", "location": "l",
	}, nil)
	assert.Equal(t, 403, status)

	// receiver_id via query string
	status = c.do("POST", "/api/connections/request?receiver_id="+bob.User.ID, alice.AccessToken, nil, nil)
	require.Equal(t, 200, status)
	status = c.do("POST", "/api/connections/request", bob.AccessToken, map[string]string{"receiver_id": alice.User.ID}, nil)
	assert.Equal(t, 409, status)

	var incoming []struct {
		ID       string `json:"id"`
		SenderID string `json:"sender_id"`
	}
	require.Equal(t, 200, c.do("GET", "/api/connections/requests", bob.AccessToken, nil, &incoming))
	require.Len(t, incoming, 1)
	assert.Equal(t, alice.User.ID, incoming[0].SenderID)

	respond := "/api/connections/" + incoming[0].ID + "/respond"
	assert.Equal(t, 400, c.do("PUT", respond, bob.AccessToken, nil, nil))
	assert.Equal(t, 404, c.do("PUT", respond+"?accept=true", alice.AccessToken, nil, nil))

	var msg struct {
		Message string `json:"message"`
	}
	require.Equal(t, 200, c.do("PUT", respond+"?accept=true", bob.AccessToken, nil, &msg))
	assert.Equal(t, "Connection request accepted", msg.Message)

	var peers []struct {
		ID               string `json:"id"`
		ConnectionsCount int    `json:"connections_count"`
	}
	require.Equal(t, 200, c.do("GET", "/api/connections", alice.AccessToken, nil, &peers))
	require.Len(t, peers, 1)
	assert.Equal(t, bob.User.ID, peers[0].ID)
	assert.Equal(t, 1, peers[0].ConnectionsCount)

	// Feed: like twice nets zero.
	var p struct {
		ID string `json:"id"`
	}
	require.Equal(t, 200, c.do("POST", "/api/posts", alice.AccessToken, map[string]string{"content": "Hello network"}, &p))

	var like struct {
		Message string `json:"message"`
		Liked   bool   `json:"liked"`
	}
	require.Equal(t, 200, c.do("POST", "/api/posts/"+p.ID+"/like", bob.AccessToken, nil, &like))
	assert.True(t, like.Liked)
	require.Equal(t, 200, c.do("POST", "/api/posts/"+p.ID+"/like", bob.AccessToken, nil, &like))
	assert.False(t, like.Liked)
	assert.Equal(t, "Post unliked", like.Message)

	var feed []struct {
		ID         string `json:"id"`
		LikesCount int    `json:"likes_count"`
	}
	require.Equal(t, 200, c.do("GET", "/api/posts?limit=500", bob.AccessToken, nil, &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, 0, feed[0].LikesCount)

	var stats map[string]any
	require.Equal(t, 200, c.do("GET", "/api/dashboard/stats", alice.AccessToken, nil, &stats))
	assert.Equal(t, float64(1), stats["connections"])
	assert.Equal(t, float64(1), stats["posts"])
	assert.Contains(t, stats, "applications_sent")
	assert.NotContains(t, stats, "jobs_posted")

	assert.Equal(t, 403, c.do("GET", "/api/admin/stats", alice.AccessToken, nil, nil))
}

func TestAPI_LegacyAndOperational(t *testing.T) {
	c := newClient(t)

	var banner struct {
		Message string `json:"message"`
	}
	require.Equal(t, 200, c.do("GET", "/api/", "", nil, &banner))
	assert.Equal(t, "LINKDEV API - Professional Networking Platform", banner.Message)

	var check struct {
		ID         string `json:"id"`
		ClientName string `json:"client_name"`
	}
	require.Equal(t, 200, c.do("POST", "/api/status?client_name=probe", "", nil, &check))
	assert.Equal(t, "probe", check.ClientName)
	assert.NotEmpty(t, check.ID)

	var checks []map[string]any
	require.Equal(t, 200, c.do("GET", "/api/status", "", nil, &checks))
	assert.Len(t, checks, 1)

	assert.Equal(t, 200, c.do("GET", "/health", "", nil, nil))
	assert.Equal(t, 200, c.do("GET", "/ready", "", nil, nil))

	resp, err := c.app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(data), "linkdev_http_requests_total")
}
