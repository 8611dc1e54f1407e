package service

import (
	"context"
	"time"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

type studentStore interface {
	List(ctx context.Context) ([]models.Student, error)
	Replace(ctx context.Context, students []models.Student) error
}

type noticeStore interface {
	List(ctx context.Context) ([]models.Notice, error)
}

type timetableStore interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
}

type assignmentStore interface {
	List(ctx context.Context) ([]models.Assignment, error)
	Replace(ctx context.Context, assignments []models.Assignment) error
}

type attendanceStore interface {
	Records(ctx context.Context, students []models.Student) (map[string][]models.AttendanceEntry, error)
	SaveSheet(ctx context.Context, date, subject string, statuses map[string]models.AttendanceStatus) error
}

type submissionStore interface {
	List(ctx context.Context, assignment models.Assignment, roster []models.Student) ([]models.Submission, error)
	Grade(ctx context.Context, assignmentID, studentID string, grade float64, feedback string) error
}

// Cache key prefixes for memoised views; mutations invalidate them.
const (
	dashboardCachePrefix = "dashboard:"
	analyticsCachePrefix = "analytics:"
)

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// pageOf paginates items and builds the matching pagination metadata.
func pageOf[T any](items []T, page, size, fallbackSize int) ([]T, *models.Pagination) {
	if size <= 0 {
		size = fallbackSize
	}
	p := query.Paginate(items, page, size)
	return p.Items, &models.Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// studentFilter composes the search, batch and attendance-band controls shared by
// the students and attendance views.
func studentFilter(search, batch, band string) (query.Predicate[models.Student], error) {
	parsed, ok := query.ParseAttendanceBand(band)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance band "+band)
	}
	return query.And[models.Student](
		func(s models.Student) bool { return query.Match(search, s.Name, s.RollNumber, s.Email) },
		func(s models.Student) bool { return query.MatchesSelection(batch, s.Batch) },
		func(s models.Student) bool { return query.InAttendanceBand(parsed, s.Attendance) },
	), nil
}

// batchesOf lists distinct batches in first-appearance order.
func batchesOf(students []models.Student) []string {
	groups := query.GroupBy(students, func(s models.Student) string { return s.Batch })
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
