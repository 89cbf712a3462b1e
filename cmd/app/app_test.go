package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypefeed/internal/config"
	"hypefeed/internal/models"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		DB:                config.DB{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
		PasswordScheme:    config.PasswordPlaintext,
		FeedDegradedEmpty: true,
	}

	db, services, err := App(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDB() })

	srv := httptest.NewServer(Handler(db, services, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func feed(t *testing.T, srv *httptest.Server, viewer int64) []models.FeedPost {
	t.Helper()

	var posts []models.FeedPost
	status := call(t, srv, http.MethodGet, fmt.Sprintf("/posts?user_id=%d", viewer), nil, &posts)
	require.Equal(t, http.StatusOK, status)
	return posts
}

func TestScenario_RegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	var registered models.Identity
	status := call(t, srv, http.MethodPost, "/register", models.CredentialsRequest{Username: "ana", Password: "Abc12!"}, &registered)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "ana", registered.Username)

	var loggedIn models.Identity
	status = call(t, srv, http.MethodPost, "/login", models.CredentialsRequest{Username: "ana", Password: "Abc12!"}, &loggedIn)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, registered, loggedIn)

	var failure models.ErrorResponse
	status = call(t, srv, http.MethodPost, "/login", models.CredentialsRequest{Username: "ana", Password: "wrong"}, &failure)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials.", failure.Error)

	status = call(t, srv, http.MethodPost, "/register", models.CredentialsRequest{Username: "ana", Password: "different"}, &failure)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists.", failure.Error)
}

func TestScenario_RegisterThenLoginReturnsSameID(t *testing.T) {
	srv := newTestServer(t)

	pairs := []models.CredentialsRequest{
		{Username: "a", Password: "b"},
		{Username: "User With Spaces", Password: "p@ss word"},
		{Username: "ünïcødé", Password: "🔥🔥🔥"},
		{Username: "A", Password: "b"},
	}

	for _, p := range pairs {
		var registered, loggedIn models.Identity
		require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/register", p, &registered))
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/login", p, &loggedIn))
		assert.Equal(t, registered.ID, loggedIn.ID, p.Username)
	}
}

func TestScenario_PostsAndHypes(t *testing.T) {
	srv := newTestServer(t)

	var ana, bob models.Identity
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/register", models.CredentialsRequest{Username: "ana", Password: "Abc12!"}, &ana))
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/register", models.CredentialsRequest{Username: "bob", Password: "Abc12!"}, &bob))

	var created models.CreatePostResponse
	status := call(t, srv, http.MethodPost, "/posts", models.CreatePostRequest{UserID: ana.ID, Content: "hello"}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(1), created.ID)

	posts := feed(t, srv, bob.ID)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Content)
	assert.Equal(t, "ana", posts[0].Username)
	assert.Zero(t, posts[0].HypeCount)
	assert.False(t, posts[0].UserHyped)

	var hype models.HypeResponse
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/hypes", models.ToggleHypeRequest{UserID: bob.ID, PostID: created.ID}, &hype))
	assert.Equal(t, models.HypeAdded, hype.Action)

	posts = feed(t, srv, bob.ID)
	assert.Equal(t, int64(1), posts[0].HypeCount)
	assert.True(t, posts[0].UserHyped)

	// ana sees the count but not bob's flag
	posts = feed(t, srv, ana.ID)
	assert.Equal(t, int64(1), posts[0].HypeCount)
	assert.False(t, posts[0].UserHyped)

	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/hypes", models.ToggleHypeRequest{UserID: bob.ID, PostID: created.ID}, &hype))
	assert.Equal(t, models.HypeRemoved, hype.Action)

	posts = feed(t, srv, bob.ID)
	assert.Zero(t, posts[0].HypeCount)
	assert.False(t, posts[0].UserHyped)

	// unknown post: nothing changes and the caller is not told why
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/hypes", models.ToggleHypeRequest{UserID: bob.ID, PostID: 404}, &hype))
	assert.Equal(t, models.HypeNone, hype.Action)
}

func TestScenario_EmptyContentWritesNothing(t *testing.T) {
	srv := newTestServer(t)

	var ana models.Identity
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/register", models.CredentialsRequest{Username: "ana", Password: "Abc12!"}, &ana))

	for _, content := range []string{"", "   ", "\t\n"} {
		var failure models.ErrorResponse
		status := call(t, srv, http.MethodPost, "/posts", models.CreatePostRequest{UserID: ana.ID, Content: content}, &failure)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.NotEmpty(t, failure.Error)
	}

	assert.Empty(t, feed(t, srv, ana.ID))
}

func TestScenario_FeedNewestFirst(t *testing.T) {
	srv := newTestServer(t)

	var ana models.Identity
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/register", models.CredentialsRequest{Username: "ana", Password: "Abc12!"}, &ana))

	for i := range 5 {
		var created models.CreatePostResponse
		require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/posts", models.CreatePostRequest{UserID: ana.ID, Content: fmt.Sprintf("post %d", i)}, &created))
	}

	posts := feed(t, srv, 0)
	require.Len(t, posts, 5)
	for i := 1; i < len(posts); i++ {
		assert.GreaterOrEqual(t, posts[i-1].Timestamp, posts[i].Timestamp)
		assert.Greater(t, posts[i-1].ID, posts[i].ID)
	}
	assert.Equal(t, "post 4", posts[0].Content)
}

func TestHandler_Middleware(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var health models.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.True(t, health.OK)
	assert.Equal(t, "up", health.Database)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(config.Log{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"k":"v"`)

	buf.Reset()
	NewLogger(config.Log{Level: "debug", Format: "text"}, &buf).Debug("details")
	assert.Contains(t, buf.String(), "msg=details")
}
