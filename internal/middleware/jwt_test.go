package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
	"github.com/noah-isme/faculty-dashboard-api/pkg/logger"
)

type fakeAuthenticator struct {
	token string
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*models.JWTClaims, error) {
	if token != f.token {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}
	return &models.JWTClaims{Email: "faculty@university.edu"}, nil
}

func jwtRouter(auth tokenAuthenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWT(auth), func(c *gin.Context) {
		claims, ok := CurrentFaculty(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, claims.Email+"|"+c.GetString(logger.FacultyKey))
	})
	return router
}

func TestJWTMiddleware(t *testing.T) {
	router := jwtRouter(fakeAuthenticator{token: "good"})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", status: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer stale", status: http.StatusUnauthorized},
		{name: "valid token", header: "bearer good", status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestJWTMiddlewareStoresFaculty(t *testing.T) {
	router := jwtRouter(fakeAuthenticator{token: "good"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(rec, req)

	assert.Equal(t, "faculty@university.edu|faculty@university.edu", rec.Body.String())
}
