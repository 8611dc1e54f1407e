package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-dashboard-api/pkg/config"
)

const demoEmail = "faculty@university.edu"

type envelope struct {
	Data       json.RawMessage        `json:"data"`
	Pagination map[string]int         `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
	Error      *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:       "test",
		APIPrefix: "/api/v1",
		PageSize:  10,
		Store:     config.StoreConfig{Driver: config.StoreMemory},
		JWT:       config.JWTConfig{Secret: "test-secret", Expiration: time.Hour},
		Cache:     config.CacheConfig{Enabled: true, TTL: time.Minute},
		Exports: config.ExportsConfig{
			StorageDir:      t.TempDir(),
			SignedURLSecret: "exports-secret",
			SignedURLTTL:    time.Minute,
		},
		Demo: config.DemoConfig{Email: demoEmail, Name: "Dr. Rajesh Kumar"},
		Attendance: config.AttendanceConfig{
			Seed:      42,
			ClassDays: 22,
			StartDate: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := New(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func do(t *testing.T, app *App, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func login(t *testing.T, app *App) string {
	t.Helper()
	rec := do(t, app, http.MethodPost, "/api/v1/auth/login", "", `{"email":"Faculty@University.edu","password":"demo"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestRouterPublicEndpoints(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/metrics", "", "").Code)

	rec := do(t, app, http.MethodGet, "/api/v1/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
}

func TestRouterRequiresToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/dashboard", "/api/v1/students", "/api/v1/attendance", "/api/v1/notices"} {
		rec := do(t, app, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouterLoginRejectsUnknownFaculty(t *testing.T) {
	app := newTestApp(t)

	rec := do(t, app, http.MethodPost, "/api/v1/auth/login", "", `{"email":"someone@else.edu","password":"demo"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterStudentsFlow(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	rec := do(t, app, http.MethodGet, "/api/v1/students", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, 5, env.Pagination["total_count"])
	assert.Equal(t, 1, env.Pagination["total_pages"])

	rec = do(t, app, http.MethodPost, "/api/v1/students", token,
		`{"name":"Kavya Iyer","roll_number":"CS-B-099","email":"kavya.iyer@university.edu","phone":"9876500000","batch":"CS-B"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, app, http.MethodGet, "/api/v1/students?search=kavya", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode(t, rec).Pagination["total_count"])

	rec = do(t, app, http.MethodGet, "/api/v1/students/export?batch=CS-B", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "students_")
	assert.Contains(t, rec.Body.String(), "Kavya Iyer")
}

func TestRouterStudentsHugeLimit(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	rec := do(t, app, http.MethodGet, "/api/v1/students?limit=9223372036854775807", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, 100, env.Pagination["page_size"])
	assert.Equal(t, 5, env.Pagination["total_count"])
	assert.Equal(t, 1, env.Pagination["total_pages"])

	rec = do(t, app, http.MethodDelete, "/api/v1/students/1", token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouterDashboardAndTimetable(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	rec := do(t, app, http.MethodGet, "/api/v1/dashboard", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		TotalStudents int `json:"total_students"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &summary))
	assert.Equal(t, 5, summary.TotalStudents)

	rec = do(t, app, http.MethodGet, "/api/v1/timetable", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var week []struct {
		Day string `json:"day"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &week))
	assert.Len(t, week, 5)

	rec = do(t, app, http.MethodGet, "/api/v1/timetable?day=caturday", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterNoticesResetUnseen(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	unseen := func() int {
		rec := do(t, app, http.MethodGet, "/api/v1/notices/unseen", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Unseen int `json:"unseen"`
		}
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &body))
		return body.Unseen
	}

	assert.Equal(t, 5, unseen())
	require.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/api/v1/notices", token, "").Code)
	assert.Equal(t, 0, unseen())
}

func TestRouterLogoutInvalidatesToken(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	require.Equal(t, http.StatusNoContent, do(t, app, http.MethodPost, "/api/v1/auth/logout", token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, app, http.MethodGet, "/api/v1/dashboard", token, "").Code)
}

func TestRouterArchivedExportDownload(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	rec := do(t, app, http.MethodPost, "/api/v1/exports", token, `{"kind":"attendance","format":"pdf"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var archived struct {
		FileName string `json:"file_name"`
		URL      string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &archived))
	require.True(t, strings.HasPrefix(archived.URL, "/api/v1/exports/"), archived.URL)

	rec = do(t, app, http.MethodGet, archived.URL, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), archived.FileName)

	assert.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/api/v1/exports/forged", "", "").Code)
}

func TestNewRejectsUnknownStoreDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = "cassandra"

	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)
}
