package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/careerconnect/careerconnect/caching"
	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/web/middleware"
	"github.com/careerconnect/careerconnect/web/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	auth   *service.AuthService
}

func newTestAPI(t *testing.T, store middleware.Counter, limit int) *testAPI {
	t.Helper()
	t.Setenv("JWT_SECRET", "web-test-secret")
	cfg := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	require.NoError(t, database.InitDB(cfg))
	t.Cleanup(func() { _ = database.CloseDB() })

	auth, err := service.NewAuthService()
	require.NoError(t, err)
	engine, err := NewEngine(EngineOptions{
		Auth:        auth,
		RateStore:   store,
		RateLimit:   limit,
		CORSOrigins: []string{"http://localhost:5173"},
	})
	require.NoError(t, err)
	return &testAPI{t: t, engine: engine, auth: auth}
}

func (a *testAPI) do(method, path, token string, body any, headers ...string) (int, map[string]any) {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (a *testAPI) register(name, email string) string {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/users/register", "", gin.H{"name": name, "email": email, "password": "password1"})
	require.Equal(a.t, http.StatusCreated, code, body)
	user := body["user"].(map[string]any)
	return user["id"].(string)
}

func (a *testAPI) login(email string) string {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/users/login", "", gin.H{"email": email, "password": "password1"})
	require.Equal(a.t, http.StatusOK, code, body)
	return body["token"].(string)
}

func (a *testAPI) adminToken() string {
	a.t.Helper()
	users := service.UserService{}
	_, err := users.CreateAdmin("Boss", "boss@example.com", "password1")
	require.NoError(a.t, err)
	return a.login("boss@example.com")
}

func (a *testAPI) createJob(token, title string) string {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/jobs", token, gin.H{
		"title": title, "company": "Acme", "description": "Build things", "location": "Remote", "salary": 100,
	})
	require.Equal(a.t, http.StatusCreated, code, body)
	return body["job"].(map[string]any)["id"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t, nil, 0)

	code, body := api.do(http.MethodPost, "/api/users/register", "", gin.H{"name": "Ann", "email": "Ann@Example.com", "password": "password1"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User created successfully!", body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "password")

	code, body = api.do(http.MethodPost, "/api/users/register", "", gin.H{"name": "Ann", "email": "ann@example.com", "password": "password1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists", body["message"])
	assert.Equal(t, false, body["success"])

	code, body = api.do(http.MethodPost, "/api/users/login", "", gin.H{"email": "ann@example.com", "password": "password1"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful!", body["message"])
	assert.NotEmpty(t, body["token"])
	loginUser := body["user"].(map[string]any)
	assert.ElementsMatch(t, []string{"id", "name", "email", "role"}, keys(loginUser))

	_, wrongPassword := api.do(http.MethodPost, "/api/users/login", "", gin.H{"email": "ann@example.com", "password": "nope-nope"})
	_, unknownEmail := api.do(http.MethodPost, "/api/users/login", "", gin.H{"email": "ghost@example.com", "password": "password1"})
	assert.Equal(t, "Invalid Email or Password", wrongPassword["message"])
	assert.Equal(t, wrongPassword, unknownEmail)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestBearerRequired(t *testing.T) {
	api := newTestAPI(t, nil, 0)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := api.do(http.MethodGet, "/api/users/profile", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, "Not authorized, token missing or invalid", body["message"])
			assert.NotContains(t, body, "error")
		})
	}
}

func TestProfileLifecycle(t *testing.T) {
	api := newTestAPI(t, nil, 0)
	api.register("Ann", "ann@example.com")
	token := api.login("ann@example.com")

	code, body := api.do(http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ann", body["name"])

	code, body = api.do(http.MethodPut, "/api/users/update", token, gin.H{
		"name":    "Ann Lee",
		"profile": gin.H{"skills": "Python, data"},
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "User updated successfully", body["message"])
	assert.Equal(t, "Ann Lee", body["user"].(map[string]any)["name"])

	code, _ = api.do(http.MethodPut, "/api/users/update", token, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusBadRequest, code, "unknown keys are rejected")
	code, _ = api.do(http.MethodPut, "/api/users/update", token, gin.H{"profile": gin.H{"hobby": "chess"}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(http.MethodGet, "/api/users/recommendations", token, nil)
	require.Equal(t, http.StatusOK, code)
	sections := body["sections"].([]any)
	require.Len(t, sections, 4)
	first := sections[0].(map[string]any)["items"].([]any)
	assert.Equal(t, "Focus on Python libraries like Pandas and NumPy.", first[0])

	code, body = api.do(http.MethodDelete, "/api/users/delete", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User account deleted successfully", body["message"])

	code, _ = api.do(http.MethodGet, "/api/users/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = api.do(http.MethodGet, "/api/applications/my", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminOnlyRoutes(t *testing.T) {
	api := newTestAPI(t, nil, 0)
	api.register("Ann", "ann@example.com")
	member := api.login("ann@example.com")
	admin := api.adminToken()

	routes := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/jobs"},
		{http.MethodPut, "/api/jobs/x"},
		{http.MethodDelete, "/api/jobs/x"},
		{http.MethodGet, "/api/users/all"},
		{http.MethodGet, "/api/applications/admin/all"},
		{http.MethodPut, "/api/applications/admin/status/x"},
		{http.MethodDelete, "/api/applications/admin/delete/x"},
		{http.MethodGet, "/api/admin/audit"},
		{http.MethodGet, "/api/admin/status"},
		{http.MethodGet, "/api/admin/logs"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			code, body := api.do(r.method, r.path, member, gin.H{})
			assert.Equal(t, http.StatusForbidden, code)
			assert.Equal(t, "Access denied: admin only", body["message"])
			code, _ = api.do(r.method, r.path, "", gin.H{})
			assert.Equal(t, http.StatusUnauthorized, code)
		})
	}

	code, body := api.do(http.MethodGet, "/api/users/all", admin, nil)
	assert.Equal(t, http.StatusOK, code, body)
	code, body = api.do(http.MethodGet, "/api/admin/status", admin, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, config.GetName(), body["name"])
}

func TestJobsAndApplications(t *testing.T) {
	api := newTestAPI(t, nil, 0)
	api.register("Ann", "ann@example.com")
	member := api.login("ann@example.com")
	admin := api.adminToken()

	code, body := api.do(http.MethodPost, "/api/jobs", admin, gin.H{"title": "Engineer", "company": " "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "All required fields must be filled", body["message"])

	jobID := api.createJob(admin, "Engineer")

	code, body = api.do(http.MethodGet, "/api/jobs/"+jobID, "", nil)
	require.Equal(t, http.StatusOK, code)
	poster := body["postedBy"].(map[string]any)
	assert.Equal(t, "Boss", poster["name"])
	assert.Equal(t, "boss@example.com", poster["email"])

	code, body = api.do(http.MethodPut, "/api/jobs/"+jobID, admin, gin.H{"location": "Berlin"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Job updated successfully!", body["message"])
	assert.Equal(t, "Berlin", body["job"].(map[string]any)["location"])

	code, _ = api.do(http.MethodPost, "/api/applications/apply/missing", member, gin.H{"resume": "r"})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = api.do(http.MethodPost, "/api/applications/apply/"+jobID, member, gin.H{"resume": "r", "coverLetter": "hi"})
	require.Equal(t, http.StatusCreated, code, body)
	app := body["application"].(map[string]any)
	assert.Equal(t, "Pending", app["status"])
	appID := app["id"].(string)

	code, body = api.do(http.MethodPost, "/api/applications/apply/"+jobID, member, gin.H{"resume": "r"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "You already applied for this job", body["message"])

	code, body = api.do(http.MethodGet, "/api/applications/my", member, nil)
	require.Equal(t, http.StatusOK, code)
	mine := body["applications"].([]any)
	require.Len(t, mine, 1)
	assert.Equal(t, "Engineer", mine[0].(map[string]any)["job"].(map[string]any)["title"])

	code, body = api.do(http.MethodPut, "/api/applications/admin/status/"+appID, admin, gin.H{"status": "Hired"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, body = api.do(http.MethodPut, "/api/applications/admin/status/"+appID, admin, gin.H{"status": "Approved"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Status updated successfully!", body["message"])

	code, body = api.do(http.MethodGet, "/api/applications/admin/all", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])
	all := body["applications"].([]any)
	assert.Equal(t, "Approved", all[0].(map[string]any)["status"])
	assert.Equal(t, "Ann", all[0].(map[string]any)["user"].(map[string]any)["name"])

	code, _ = api.do(http.MethodDelete, "/api/applications/admin/delete/"+appID, admin, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = api.do(http.MethodDelete, "/api/applications/admin/delete/"+appID, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.do(http.MethodDelete, "/api/jobs/"+jobID, admin, nil)
	assert.Equal(t, http.StatusOK, code)
	code, body = api.do(http.MethodDelete, "/api/jobs/"+jobID, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Job not found", body["message"])

	code, body = api.do(http.MethodGet, "/api/admin/audit?resource=job", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["total"], "create, update and the successful delete")
	logs := body["logs"].([]any)
	assert.Equal(t, "DELETE", logs[0].(map[string]any)["action"])
	assert.Equal(t, jobID, logs[0].(map[string]any)["resourceId"])
}

func TestPasswordResetFlow(t *testing.T) {
	api := newTestAPI(t, nil, 0)
	api.register("Ann", "ann@example.com")
	accessToken := api.login("ann@example.com")

	code, body := api.do(http.MethodPost, "/api/users/forgot-password", "", gin.H{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User not found!", body["message"])

	code, body = api.do(http.MethodPost, "/api/users/forgot-password", "", gin.H{"email": "ann@example.com"})
	require.Equal(t, http.StatusOK, code)
	resetToken := body["resetToken"].(string)

	code, _ = api.do(http.MethodGet, "/api/users/profile", resetToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code, "reset tokens are not bearer tokens")

	code, body = api.do(http.MethodPost, "/api/users/reset-password/"+accessToken, "", gin.H{"newPassword": "brandnew1"})
	assert.Equal(t, http.StatusBadRequest, code, "access tokens cannot reset passwords")
	assert.Equal(t, "Invalid token or user not found", body["message"])

	code, body = api.do(http.MethodPost, "/api/users/reset-password/"+resetToken, "", gin.H{"newPassword": "brandnew1"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Password reset successful!", body["message"])

	code, _ = api.do(http.MethodPost, "/api/users/reset-password/"+resetToken, "", gin.H{"newPassword": "another1"})
	assert.Equal(t, http.StatusBadRequest, code, "single use")

	code, _ = api.do(http.MethodPost, "/api/users/login", "", gin.H{"email": "ann@example.com", "password": "brandnew1"})
	assert.Equal(t, http.StatusOK, code)
}

func TestLoginRateLimit(t *testing.T) {
	store := caching.NewCache()
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Flush() })
	api := newTestAPI(t, store, 2)

	for i := 0; i < 2; i++ {
		code, _ := api.do(http.MethodPost, "/api/users/login", "", gin.H{"email": "a@example.com", "password": "password1"})
		assert.Equal(t, http.StatusBadRequest, code)
	}
	code, body := api.do(http.MethodPost, "/api/users/login", "", gin.H{"email": "a@example.com", "password": "password1"})
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.NotEmpty(t, body["message"])

	code, _ = api.do(http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusOK, code, "other routes are not limited")
}

func TestLocalizedMessages(t *testing.T) {
	api := newTestAPI(t, nil, 0)
	api.register("Ann", "ann@example.com")

	_, body := api.do(http.MethodPost, "/api/users/register", "", gin.H{"name": "Ann", "email": "ann@example.com", "password": "password1"}, "Accept-Language", "es-ES,es;q=0.9")
	assert.Equal(t, "El usuario ya existe", body["message"])

	_, body = api.do(http.MethodPost, "/api/users/register?lang=ru-RU", "", gin.H{"name": "Bob", "email": "bob@example.com", "password": "abc"})
	assert.Equal(t, "Пароль должен содержать не менее 6 символов", body["message"])

	_, body = api.do(http.MethodPost, "/api/users/register", "", gin.H{"name": "Bob", "email": "bob@example.com", "password": "abc"})
	assert.Equal(t, "Password must be at least 6 characters", body["message"])
}

func TestMiscRoutes(t *testing.T) {
	api := newTestAPI(t, nil, 0)

	code, body := api.do(http.MethodGet, "/api/test", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Backend", body["message"])

	code, body = api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, body = api.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Route not found", body["message"])

	code, _ = api.do(http.MethodPost, "/api/users/register", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, code)
}
