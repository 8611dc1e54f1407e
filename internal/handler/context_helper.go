package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/middleware"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentFaculty(c)
	if !ok {
		return nil
	}
	return claims
}

func facultyEmail(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.Email
	}
	return ""
}

// pageParams reads page and limit; unparsable values fall back to the service
// defaults and limit is capped at query.MaxPageSize.
func pageParams(c *gin.Context) (page, size int) {
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		size = min(v, query.MaxPageSize)
	}
	return page, size
}

func queryParam(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func sendFile(c *gin.Context, file *export.File) {
	response.Attachment(c, file.Name, file.ContentType, file.Body)
}

func respondWithMeta(c *gin.Context, data interface{}, pagination *models.Pagination) {
	response.JSON(c, http.StatusOK, data, pagination, middleware.ExtractMeta(c))
}
