package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

func newTestDashboardService(students *fakeStudentStore, cache *CacheService) *DashboardService {
	svc := NewDashboardService(DashboardServiceParams{
		Students:    students,
		Assignments: &fakeAssignmentStore{assignments: sampleAssignments()},
		Notices:     &fakeNoticeStore{notices: sampleNotices()},
		Timetable: &fakeTimetableStore{slots: []models.TimeSlot{
			{ID: "1", Day: "Monday", Subject: "Data Structures", Batch: "CS-A"},
			{ID: "2", Day: "Tuesday", Subject: "Algorithms", Batch: "CS-B"},
			{ID: "3", Day: "Monday", Subject: "Database Management", Batch: "CS-C"},
		}},
		Cache:   cache,
		Metrics: NewMetricsService(),
		Logger:  zap.NewNop(),
	})
	svc.clock = fixedClock(time.Date(2024, time.November, 4, 8, 0, 0, 0, time.UTC))
	return svc
}

func TestDashboardServiceSummary(t *testing.T) {
	svc := newTestDashboardService(&fakeStudentStore{students: sampleStudents()}, nil)

	summary, cached, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 5, summary.TotalStudents)
	assert.Equal(t, 11, summary.PendingReviews)
	assert.Equal(t, 76, summary.AverageAttendance)
	assert.Equal(t, 3, summary.NewNotices)
	assert.Equal(t, 1, summary.AtRiskStudents)
	assert.Equal(t, 3, summary.AttendanceDistribution.Count(string(query.AttendanceGood)))
	assert.Equal(t, "Monday", summary.Today)
	assert.Len(t, summary.TodayClasses, 2)
	require.Len(t, summary.Batches, 3)
	assert.Equal(t, 90, summary.Batches[0].AverageAttendance)
	assert.EqualValues(t, 1, svc.metrics.Snapshot().StoreOperations)
}

func TestDashboardServiceSummaryEmptyRoster(t *testing.T) {
	svc := newTestDashboardService(&fakeStudentStore{}, nil)

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalStudents)
	assert.Zero(t, summary.AverageAttendance)
	assert.Empty(t, summary.Batches)
}

func TestDashboardServiceSummaryUsesCache(t *testing.T) {
	students := &fakeStudentStore{students: sampleStudents()}
	cacheRepo := newFakeCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := newTestDashboardService(students, cache)
	ctx := context.Background()

	_, cached, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Contains(t, cacheRepo.entries, "dashboard:monday")

	students.err = errors.New("store down")
	summary, cached, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 5, summary.TotalStudents)

	cache.InvalidateViews(ctx)
	_, _, err = svc.Summary(ctx)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrInternal.Code))
}
