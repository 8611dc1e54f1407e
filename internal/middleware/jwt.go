package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
	"github.com/noah-isme/faculty-dashboard-api/pkg/logger"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

// ContextFacultyKey is the gin context key storing JWT claims.
const ContextFacultyKey = "currentFaculty"

type tokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid access token backed by an open session.
func JWT(auth tokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing or invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextFacultyKey, claims)
		c.Set(logger.FacultyKey, claims.Email)
		c.Next()
	}
}

// CurrentFaculty returns the claims stored by JWT.
func CurrentFaculty(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(ContextFacultyKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok && claims != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
