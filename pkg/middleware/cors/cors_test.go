package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(opts))
	r.GET("/students", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestListedOriginGetsCredentials(t *testing.T) {
	r := newEngine(Options{AllowedOrigins: []string{"https://dashboard.university.edu/"}})

	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.Header.Set("Origin", "https://dashboard.university.edu")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://dashboard.university.edu", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Content-Disposition, X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestWildcardOmitsCredentials(t *testing.T) {
	r := newEngine(Options{})

	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestPreflight(t *testing.T) {
	r := newEngine(Options{AllowedOrigins: []string{"https://dashboard.university.edu"}, MaxAge: 120})

	tests := []struct {
		name   string
		origin string
		status int
	}{
		{name: "listed origin", origin: "https://dashboard.university.edu", status: http.StatusNoContent},
		{name: "unlisted origin", origin: "https://evil.example", status: http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/students", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusNoContent {
				assert.Equal(t, "120", rec.Header().Get("Access-Control-Max-Age"))
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}

func TestUnlistedSimpleRequestPassesWithoutHeaders(t *testing.T) {
	r := newEngine(Options{AllowedOrigins: []string{"https://dashboard.university.edu"}})

	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
