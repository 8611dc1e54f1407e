package cors

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Options configures cross-origin access for the dashboard front end.
type Options struct {
	// AllowedOrigins lists exact origins. Empty means any origin.
	AllowedOrigins []string
	// ExposedHeaders are readable by browser scripts. Defaults to the
	// download filename and request ID headers.
	ExposedHeaders []string
	MaxAge         int
}

var (
	allowedHeaders = "Authorization, Content-Type, X-Request-ID"
	allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	defaultExposed = []string{"Content-Disposition", "X-Request-ID"}
)

// New returns a CORS middleware for opts.
//
// A wildcard policy never sends Allow-Credentials, because browsers reject
// credentialed responses carrying "*". Preflights from origins outside the
// list are refused with 403 instead of falling through to the route.
func New(opts Options) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, origin := range opts.AllowedOrigins {
		origins[normaliseOrigin(origin)] = struct{}{}
	}
	wildcard := len(origins) == 0

	exposed := opts.ExposedHeaders
	if len(exposed) == 0 {
		exposed = defaultExposed
	}
	exposeValue := strings.Join(exposed, ", ")
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 600
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		origin := c.GetHeader("Origin")
		_, listed := origins[normaliseOrigin(origin)]
		preflight := c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != ""

		switch {
		case origin == "":
		case wildcard:
			h.Set("Access-Control-Allow-Origin", "*")
		case listed:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		default:
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		h.Set("Access-Control-Expose-Headers", exposeValue)
		if preflight {
			h.Set("Access-Control-Allow-Headers", allowedHeaders)
			h.Set("Access-Control-Allow-Methods", allowedMethods)
			h.Set("Access-Control-Max-Age", strconv.Itoa(maxAge))
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func normaliseOrigin(origin string) string {
	return strings.ToLower(strings.TrimRight(origin, "/"))
}
