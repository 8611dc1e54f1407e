package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
)

// Performance labels for the analytics student table.
const (
	PerformanceExcellent = "Excellent"
	PerformanceAverage   = "Average"
	PerformanceAtRisk    = "At Risk"
)

// AnalyticsService builds the batch analytics report.
type AnalyticsService struct {
	students studentStore
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	json     *export.JSONExporter
	cacheTTL time.Duration
	clock    clock
}

// NewAnalyticsService constructs the analytics service.
func NewAnalyticsService(students studentStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AnalyticsService{students: students, cache: cache, metrics: metrics, logger: logger, json: export.NewJSONExporter(), cacheTTL: cacheTTL}
}

// Report returns the analytics for batch ("All" or empty for every batch) and
// whether it was served from cache.
func (s *AnalyticsService) Report(ctx context.Context, batch string) (*dto.AnalyticsReport, bool, error) {
	key := CacheKey(analyticsCachePrefix, batch)
	var cached dto.AnalyticsReport
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	start := time.Now()
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, false, internalError(err, "failed to load students")
	}
	s.metrics.ObserveStoreOperation("analytics", time.Since(start))

	report := buildAnalytics(students, batch)
	if err := s.cache.Set(ctx, key, report, s.cacheTTL); err != nil {
		s.logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
	return report, false, nil
}

// Export renders the report as a dated JSON download.
func (s *AnalyticsService) Export(ctx context.Context, batch string) (*export.File, error) {
	report, _, err := s.Report(ctx, batch)
	if err != nil {
		return nil, err
	}
	now := s.clock.now()
	body, err := s.json.Render(dto.AnalyticsExport{Timestamp: now.UTC(), AnalyticsReport: *report})
	if err != nil {
		return nil, internalError(err, "failed to render analytics export")
	}
	return export.NewFile("analytics_report", export.FormatJSON, body, now), nil
}

func buildAnalytics(all []models.Student, batch string) *dto.AnalyticsReport {
	if query.IsAll(batch) {
		batch = query.All
	}
	students := query.Filter(all, func(st models.Student) bool { return query.MatchesSelection(batch, st.Batch) })

	rows := make([]dto.AnalyticsStudentRow, len(students))
	for i, st := range students {
		rows[i] = dto.AnalyticsStudentRow{
			Student: st,
			Status:  string(query.ClassifyAttendance(st.Attendance)),
			Tier:    performanceOf(st),
		}
	}

	return &dto.AnalyticsReport{
		Batch: batch,
		Metrics: dto.AnalyticsMetrics{
			TotalStudents:       len(students),
			AverageAttendance:   averageAttendance(students),
			AtRiskStudents:      query.Count(students, func(st models.Student) bool { return st.Attendance < query.AttendanceRiskThreshold }),
			ExcellentAttendance: query.Count(students, func(st models.Student) bool { return st.Attendance >= query.AttendanceExcellentThreshold }),
			AverageCGPA:         averageCGPA(students),
		},
		AttendanceDistribution: query.Distribute(students, query.AttendanceTiers, func(st models.Student) string {
			return string(query.ClassifyAttendanceTier(st.Attendance))
		}),
		CGPADistribution: query.Distribute(students, query.CGPABands, func(st models.Student) string {
			return string(query.ClassifyCGPA(st.CGPA))
		}),
		Batches:  batchStats(students),
		Students: rows,
	}
}

// performanceOf combines attendance and CGPA into the table's status label.
func performanceOf(st models.Student) string {
	switch {
	case st.Attendance < query.AttendanceRiskThreshold || st.CGPA < 6:
		return PerformanceAtRisk
	case st.Attendance >= query.AttendanceGoodThreshold && st.CGPA >= 7:
		return PerformanceExcellent
	default:
		return PerformanceAverage
	}
}

func averageAttendance(students []models.Student) int {
	avg := query.AverageOf(students, func(st models.Student) float64 { return float64(st.Attendance) })
	return int(query.Round(avg, 0))
}

func averageCGPA(students []models.Student) float64 {
	return query.Round(query.AverageOf(students, func(st models.Student) float64 { return st.CGPA }), 2)
}

// batchStats aggregates each batch in first-appearance order.
func batchStats(students []models.Student) []dto.BatchStat {
	groups := query.GroupBy(students, func(st models.Student) string { return st.Batch })
	stats := make([]dto.BatchStat, len(groups))
	for i, g := range groups {
		stats[i] = dto.BatchStat{
			Batch:             g.Key,
			Students:          len(g.Items),
			AverageAttendance: averageAttendance(g.Items),
			AverageCGPA:       averageCGPA(g.Items),
			AtRisk:            query.Count(g.Items, func(st models.Student) bool { return st.Attendance < query.AttendanceRiskThreshold }),
		}
	}
	return stats
}
