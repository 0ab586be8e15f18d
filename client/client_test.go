package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/web"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "client-test-secret")
	cfg := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	require.NoError(t, database.InitDB(cfg))
	t.Cleanup(func() { _ = database.CloseDB() })

	auth, err := service.NewAuthService()
	require.NoError(t, err)
	engine, err := web.NewEngine(web.EngineOptions{Auth: auth, CORSOrigins: []string{"*"}})
	require.NoError(t, err)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	s, err := OpenSession(&MemoryStore{})
	require.NoError(t, err)
	return New(baseURL, s)
}

func TestClientApplicantFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	users := service.UserService{}
	_, err := users.CreateAdmin("Boss", "boss@example.com", "password1")
	require.NoError(t, err)
	admin := newTestClient(t, srv.URL)
	_, err = admin.Login(ctx, "boss@example.com", "password1")
	require.NoError(t, err)
	assert.True(t, admin.Session().IsAdmin())
	job, err := admin.CreateJob(ctx, service.JobInput{Title: "Engineer", Company: "Acme", Description: "Build", Location: "Remote"})
	require.NoError(t, err)

	c := newTestClient(t, srv.URL)
	_, err = c.Profile(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = c.Register(ctx, "Ann", "ann@example.com", "password1")
	require.NoError(t, err)
	_, err = c.Register(ctx, "Ann", "ann@example.com", "password1")
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User already exists", apiErr.Message)

	u, err := c.Login(ctx, "ann@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.False(t, c.Session().IsAdmin())

	_, err = c.UpdateProfile(ctx, service.UserPatch{Profile: &service.ProfilePatch{Skills: ptr("Go")}})
	require.NoError(t, err)

	app, err := c.ApplyWithProfile(ctx, job.ID, "Hello")
	require.NoError(t, err)
	var resume model.Profile
	require.NoError(t, json.Unmarshal([]byte(app.Resume), &resume))
	assert.Equal(t, "Go", resume.Skills)

	_, err = c.CreateJob(ctx, service.JobInput{Title: "x"})
	assert.True(t, IsStatus(err, http.StatusForbidden))

	mine, err := c.MyApplications(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Engineer", mine[0].Job.Title)

	_, err = admin.SetApplicationStatus(ctx, app.ID, model.StatusApproved)
	require.NoError(t, err)
	mine, err = c.MyApplications(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, mine[0].Status)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.Session().LoggedIn())
	_, err = c.MyApplications(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClientPasswordReset(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := newTestClient(t, srv.URL)

	_, err := c.Register(ctx, "Ann", "ann@example.com", "password1")
	require.NoError(t, err)
	token, err := c.ForgotPassword(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NoError(t, c.ResetPassword(ctx, token, "changed99"))
	assert.True(t, IsStatus(c.ResetPassword(ctx, token, "again999"), http.StatusBadRequest))

	_, err = c.Login(ctx, "ann@example.com", "changed99")
	assert.NoError(t, err)
}

func TestFileStore(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), "cc", "session.json")}

	s, err := OpenSession(store)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.AuthHeader())

	require.NoError(t, s.Set("tok", &SessionUser{ID: "1", Name: "Ann", Role: "admin"}))

	reopened, err := OpenSession(store)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", reopened.AuthHeader())
	assert.True(t, reopened.IsAdmin())

	require.NoError(t, reopened.Clear())
	require.NoError(t, reopened.Clear(), "clearing twice is fine")
	again, err := OpenSession(store)
	require.NoError(t, err)
	assert.False(t, again.LoggedIn())
	assert.Nil(t, again.User())
}

func ptr[T any](v T) *T { return &v }
