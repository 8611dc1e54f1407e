package server

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/handler"
	"github.com/noah-isme/faculty-dashboard-api/internal/middleware"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/service"
	"github.com/noah-isme/faculty-dashboard-api/pkg/config"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
	"github.com/noah-isme/faculty-dashboard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/faculty-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/faculty-dashboard-api/pkg/middleware/requestid"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

// Authenticator resolves a bearer token to the signed-in faculty member.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.JWTClaims, error)
}

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Dashboard   *handler.DashboardHandler
	Students    *handler.StudentHandler
	Attendance  *handler.AttendanceHandler
	Assignments *handler.AssignmentHandler
	Notices     *handler.NoticeHandler
	Timetable   *handler.TimetableHandler
	Analytics   *handler.AnalyticsHandler
	Exports     *handler.ExportHandler
	Metrics     *handler.MetricsHandler
}

// Options configures the router.
type Options struct {
	Env            string
	APIPrefix      string
	AllowedOrigins []string
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Auth           Authenticator
}

// NewRouter builds the gin engine with the middleware chain and all routes.
func NewRouter(opts Options, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(corsmiddleware.Options{AllowedOrigins: opts.AllowedOrigins}))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	api.POST("/auth/login", h.Auth.Login)
	// Signed tokens carry their own authorisation.
	api.GET("/exports/:token", h.Exports.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(opts.Auth))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/auth/session", h.Auth.Session)

	secured.GET("/dashboard", h.Dashboard.Summary)

	students := secured.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/export", h.Students.Export)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)

	attendance := secured.Group("/attendance")
	attendance.GET("", h.Attendance.List)
	attendance.GET("/distribution", h.Attendance.Distribution)
	attendance.GET("/roster", h.Attendance.Roster)
	attendance.GET("/export", h.Attendance.Export)
	attendance.POST("/mark", h.Attendance.Mark)
	attendance.GET("/:studentId", h.Attendance.Detail)

	assignments := secured.Group("/assignments")
	assignments.GET("", h.Assignments.List)
	assignments.POST("", h.Assignments.Create)
	assignments.GET("/:id", h.Assignments.Get)
	assignments.DELETE("/:id", h.Assignments.Delete)
	assignments.GET("/:id/submissions", h.Assignments.Submissions)
	assignments.PUT("/:id/submissions/:studentId/grade", h.Assignments.Grade)

	secured.GET("/notices", h.Notices.List)
	secured.GET("/notices/unseen", h.Notices.Unseen)

	secured.GET("/timetable", h.Timetable.Week)
	secured.GET("/timetable/today", h.Timetable.Today)
	secured.GET("/timetable/subjects", h.Timetable.Subjects)

	secured.GET("/analytics", h.Analytics.Report)
	secured.GET("/analytics/export", h.Analytics.Export)

	secured.POST("/exports", h.Exports.Archive)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	return r
}
