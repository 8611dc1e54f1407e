package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/handler"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/repository"
	"github.com/noah-isme/faculty-dashboard-api/internal/service"
	"github.com/noah-isme/faculty-dashboard-api/pkg/cache"
	"github.com/noah-isme/faculty-dashboard-api/pkg/config"
	"github.com/noah-isme/faculty-dashboard-api/pkg/database"
	"github.com/noah-isme/faculty-dashboard-api/pkg/jobs"
	"github.com/noah-isme/faculty-dashboard-api/pkg/storage"
)

const exportSweepInterval = time.Hour

type studentCollection interface {
	List(ctx context.Context) ([]models.Student, error)
	Replace(ctx context.Context, students []models.Student) error
}

type noticeCollection interface {
	List(ctx context.Context) ([]models.Notice, error)
}

type timetableCollection interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
}

type assignmentCollection interface {
	List(ctx context.Context) ([]models.Assignment, error)
	Replace(ctx context.Context, assignments []models.Assignment) error
}

type stores struct {
	students    studentCollection
	notices     noticeCollection
	timetable   timetableCollection
	assignments assignmentCollection
}

// App holds the wired HTTP engine and the resources it owns.
type App struct {
	Router  *gin.Engine
	Sweeper *jobs.Sweeper

	logger  *zap.Logger
	closers []func() error
}

// New connects the configured backends and wires every service and handler.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{logger: logger}
	pingers := map[string]handler.Pinger{}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	var kv repository.KeyValue = repository.NewMemoryKV()
	if redisClient != nil {
		app.closers = append(app.closers, redisClient.Close)
		kv = repository.NewRedisKV(redisClient, cfg.Redis.KeyPrefix)
		pingers["redis"] = handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}

	st, err := app.openStores(ctx, cfg, kv, pingers)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	metrics := service.NewMetricsService()
	cacheSvc := newCache(cfg, redisClient, metrics, logger)
	validate := service.NewValidator()

	attendanceStore := repository.NewGeneratedAttendanceStore(cfg.Attendance.Seed, cfg.Attendance.StartDate, cfg.Attendance.ClassDays)
	submissionStore := repository.NewGeneratedSubmissionStore(cfg.Attendance.Seed)

	sessions := service.NewSessionService(kv, st.notices, validate, logger, service.SessionConfig{
		DemoEmail:        cfg.Demo.Email,
		DemoName:         cfg.Demo.Name,
		DemoPasswordHash: cfg.Demo.PasswordHash,
		TokenSecret:      cfg.JWT.Secret,
		TokenExpiry:      cfg.JWT.Expiration,
	})
	students := service.NewStudentService(st.students, cacheSvc, validate, logger, cfg.PageSize)
	attendance := service.NewAttendanceService(st.students, attendanceStore, st.timetable, cacheSvc, validate, logger, cfg.PageSize)
	assignments := service.NewAssignmentService(st.assignments, st.students, submissionStore, cacheSvc, validate, logger, cfg.PageSize)
	notices := service.NewNoticeService(st.notices, sessions, logger, cfg.PageSize)
	timetable := service.NewTimetableService(st.timetable)
	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Students:    st.students,
		Assignments: st.assignments,
		Notices:     st.notices,
		Timetable:   st.timetable,
		Cache:       cacheSvc,
		Metrics:     metrics,
		Logger:      logger,
		CacheTTL:    cfg.Cache.TTL,
	})
	analytics := service.NewAnalyticsService(st.students, cacheSvc, metrics, logger, cfg.Cache.TTL)

	fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("init export storage: %w", err)
	}
	exports := service.NewExportService(service.ExportServiceParams{
		Students:   students,
		Attendance: attendance,
		Analytics:  analytics,
		Storage:    fileStore,
		Signer:     storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
		Metrics:    metrics,
		Validator:  validate,
		Logger:     logger,
		Config:     service.ExportConfig{APIPrefix: cfg.APIPrefix},
	})
	app.Sweeper = jobs.NewSweeper("exports", func(context.Context) error {
		_, err := exports.Cleanup(0)
		return err
	}, jobs.SweeperConfig{Interval: exportSweepInterval, RunOnStart: true, Logger: logger})

	app.Router = NewRouter(Options{
		Env:            cfg.Env,
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
		Metrics:        metrics,
		Auth:           sessions,
	}, Handlers{
		Auth:        handler.NewAuthHandler(sessions),
		Dashboard:   handler.NewDashboardHandler(dashboard),
		Students:    handler.NewStudentHandler(students, exports),
		Attendance:  handler.NewAttendanceHandler(attendance, exports),
		Assignments: handler.NewAssignmentHandler(assignments),
		Notices:     handler.NewNoticeHandler(notices, sessions),
		Timetable:   handler.NewTimetableHandler(timetable),
		Analytics:   handler.NewAnalyticsHandler(analytics, exports),
		Exports:     handler.NewExportHandler(exports),
		Metrics:     handler.NewMetricsHandler(metrics, pingers),
	})

	return app, nil
}

func (a *App) openStores(ctx context.Context, cfg *config.Config, kv repository.KeyValue, pingers map[string]handler.Pinger) (*stores, error) {
	switch cfg.Store.Driver {
	case "", config.StoreMemory:
		return &stores{
			students:    repository.NewRecordStore(kv, repository.StudentsKey, repository.SeedStudents()),
			notices:     repository.NewRecordStore(kv, repository.NoticesKey, repository.SeedNotices()),
			timetable:   repository.NewRecordStore(kv, repository.TimetableKey, repository.SeedTimetable()),
			assignments: repository.NewRecordStore(kv, repository.AssignmentsKey, repository.SeedAssignments()),
		}, nil
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		pingers["database"] = db
		return seedPostgres(ctx, db)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func seedPostgres(ctx context.Context, db *sqlx.DB) (*stores, error) {
	if err := repository.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	students := repository.NewStudentRepository(db)
	notices := repository.NewNoticeRepository(db)
	timetable := repository.NewTimetableRepository(db)
	assignments := repository.NewAssignmentRepository(db)

	if err := repository.SeedIfEmpty[models.Student](ctx, students, repository.SeedStudents()); err != nil {
		return nil, fmt.Errorf("seed students: %w", err)
	}
	if err := repository.SeedIfEmpty[models.Notice](ctx, notices, repository.SeedNotices()); err != nil {
		return nil, fmt.Errorf("seed notices: %w", err)
	}
	if err := repository.SeedIfEmpty[models.TimeSlot](ctx, timetable, repository.SeedTimetable()); err != nil {
		return nil, fmt.Errorf("seed timetable: %w", err)
	}
	if err := repository.SeedIfEmpty[models.Assignment](ctx, assignments, repository.SeedAssignments()); err != nil {
		return nil, fmt.Errorf("seed assignments: %w", err)
	}
	return &stores{students: students, notices: notices, timetable: timetable, assignments: assignments}, nil
}

// newCache returns nil, a disabled cache, unless Redis is connected and caching is on.
func newCache(cfg *config.Config, client *redis.Client, metrics *service.MetricsService, logger *zap.Logger) *service.CacheService {
	if client == nil || !cfg.Cache.Enabled {
		return nil
	}
	repo := repository.NewCacheRepository(client, cfg.Redis.KeyPrefix)
	return service.NewCacheService(repo, metrics, cfg.Cache.TTL, logger, true)
}

// Close releases database and Redis connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
