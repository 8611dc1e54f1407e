package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
)

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students    studentStore
	Assignments assignmentStore
	Notices     noticeStore
	Timetable   timetableStore
	Cache       *CacheService
	Metrics     *MetricsService
	Logger      *zap.Logger
	CacheTTL    time.Duration
}

// DashboardService composes the faculty home screen.
type DashboardService struct {
	students    studentStore
	assignments assignmentStore
	notices     noticeStore
	timetable   timetableStore
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	cacheTTL    time.Duration
	clock       clock
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{
		students:    params.Students,
		assignments: params.Assignments,
		notices:     params.Notices,
		timetable:   params.Timetable,
		cache:       params.Cache,
		metrics:     params.Metrics,
		logger:      logger,
		cacheTTL:    ttl,
	}
}

// Summary returns the dashboard and whether it was served from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, bool, error) {
	today := s.clock.now().Weekday().String()
	key := CacheKey(dashboardCachePrefix, today)

	var cached dto.DashboardSummary
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	summary, err := s.compose(ctx, today)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
	return summary, false, nil
}

func (s *DashboardService) compose(ctx context.Context, today string) (*dto.DashboardSummary, error) {
	start := time.Now()
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load assignments")
	}
	notices, err := s.notices.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load notices")
	}
	slots, err := s.timetable.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load timetable")
	}
	s.metrics.ObserveStoreOperation("dashboard", time.Since(start))

	distribution := attendanceDistribution(students)
	return &dto.DashboardSummary{
		TotalStudents:          len(students),
		PendingReviews:         pendingReviews(assignments),
		AverageAttendance:      averageAttendance(students),
		NewNotices:             query.Count(notices, models.Notice.Highlighted),
		AtRiskStudents:         distribution.Count(string(query.AttendanceAtRisk)),
		AttendanceDistribution: distribution,
		Batches:                batchStats(students),
		TodayClasses:           slotsOn(slots, today),
		Today:                  today,
	}, nil
}
