package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

// Submission tabs.
const (
	SubmissionTabAll       = "all"
	SubmissionTabSubmitted = "submitted"
	SubmissionTabOverdue   = "overdue"
	SubmissionTabPending   = "pending"
)

// AssignmentService manages coursework, submissions and grading.
type AssignmentService struct {
	assignments assignmentStore
	students    studentStore
	submissions submissionStore
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
	pageSize    int
	clock       clock

	mu sync.Mutex
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(assignments assignmentStore, students studentStore, submissions submissionStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger, pageSize int) *AssignmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &AssignmentService{
		assignments: assignments,
		students:    students,
		submissions: submissions,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		pageSize:    pageSize,
	}
}

// List returns a page of assignments with their submission progress.
func (s *AssignmentService) List(ctx context.Context, filter models.AssignmentFilter) ([]dto.AssignmentRow, *models.Pagination, error) {
	progress, err := progressPredicate(filter.Status)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, nil, internalError(err, "failed to list assignments")
	}
	matched := query.Filter(assignments, query.And[models.Assignment](
		func(a models.Assignment) bool { return query.Match(filter.Search, a.Title, a.Subject, a.Batch) },
		func(a models.Assignment) bool { return query.IsAll(filter.Batch) || a.Covers(filter.Batch) },
		func(a models.Assignment) bool { return query.MatchesSelection(filter.Subject, a.Subject) },
		progress,
	))
	page, pagination := pageOf(matched, filter.Page, filter.PageSize, s.pageSize)
	rows := make([]dto.AssignmentRow, len(page))
	for i, a := range page {
		rows[i] = dto.AssignmentRow{Assignment: a, Progress: query.Percent(a.Submitted, a.TotalStudents)}
	}
	return rows, pagination, nil
}

// progressPredicate maps the status tab onto submission counters.
func progressPredicate(status string) (query.Predicate[models.Assignment], error) {
	switch {
	case query.IsAll(status):
		return nil, nil
	case strings.EqualFold(status, models.AssignmentFilterActive):
		return func(a models.Assignment) bool { return a.Pending > 0 }, nil
	case strings.EqualFold(status, models.AssignmentFilterCompleted):
		return func(a models.Assignment) bool { return a.Pending == 0 }, nil
	case strings.EqualFold(status, models.AssignmentFilterOverdue):
		return func(a models.Assignment) bool { return a.Overdue > 0 }, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown assignment status "+status)
	}
}

// Get returns one assignment.
func (s *AssignmentService) Get(ctx context.Context, id string) (*models.Assignment, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load assignment")
	}
	idx := indexOfAssignment(assignments, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	a := assignments[idx]
	return &a, nil
}

// Create adds an assignment for one or more batches.
func (s *AssignmentService) Create(ctx context.Context, req dto.CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid assignment payload")
	}
	now := s.clock.now()
	lifecycle, err := lifecycleFor(req, now)
	if err != nil {
		return nil, err
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	batches := expandBatches(req.Batches, batchesOf(students))
	if len(batches) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one batch is required")
	}
	roster := 0
	for _, st := range students {
		if contains(batches, st.Batch) {
			roster++
		}
	}

	assignment := models.Assignment{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Subject:       req.Subject,
		Batch:         strings.Join(batches, ", "),
		DueDate:       req.DueDate,
		TotalMarks:    req.TotalMarks,
		Submitted:     0,
		Pending:       roster,
		Overdue:       0,
		TotalStudents: roster,
		Lifecycle:     lifecycle,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load assignments")
	}
	if err := s.assignments.Replace(ctx, append(assignments, assignment)); err != nil {
		return nil, internalError(err, "failed to create assignment")
	}
	s.cache.InvalidateViews(ctx)
	s.logger.Info("assignment created",
		zap.String("assignment_id", assignment.ID),
		zap.String("status", string(lifecycle.Status())),
		zap.Strings("batches", batches),
	)
	return &assignment, nil
}

func lifecycleFor(req dto.CreateAssignmentRequest, now time.Time) (models.Lifecycle, error) {
	switch req.Status {
	case models.AssignmentStatusDraft:
		return models.Draft{}, nil
	case models.AssignmentStatusScheduled:
		if req.ScheduledDate == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "scheduled assignments require a scheduled_date")
		}
		if !req.ScheduledDate.After(now) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "scheduled_date must be in the future")
		}
		return models.Scheduled{On: req.ScheduledDate.UTC()}, nil
	default:
		return models.Published{Since: now.UTC()}, nil
	}
}

// expandBatches resolves the All sentinel and drops duplicates.
func expandBatches(requested, known []string) []string {
	out := make([]string, 0, len(requested))
	add := func(b string) {
		b = strings.TrimSpace(b)
		if b != "" && !contains(out, b) {
			out = append(out, b)
		}
	}
	for _, b := range requested {
		if strings.EqualFold(strings.TrimSpace(b), query.All) {
			for _, k := range known {
				add(k)
			}
			continue
		}
		add(b)
	}
	return out
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return internalError(err, "failed to load assignments")
	}
	idx := indexOfAssignment(assignments, id)
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	remaining := append(assignments[:idx:idx], assignments[idx+1:]...)
	if err := s.assignments.Replace(ctx, remaining); err != nil {
		return internalError(err, "failed to delete assignment")
	}
	s.cache.InvalidateViews(ctx)
	return nil
}

// Submissions lists submission rows for an assignment. The submitted tab includes late submissions.
func (s *AssignmentService) Submissions(ctx context.Context, id, tab string) (*dto.SubmissionsResponse, error) {
	tab = strings.ToLower(strings.TrimSpace(tab))
	if tab == "" {
		tab = SubmissionTabAll
	}
	switch tab {
	case SubmissionTabAll, SubmissionTabSubmitted, SubmissionTabOverdue, SubmissionTabPending:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown submission status "+tab)
	}

	assignment, roster, err := s.assignmentWithRoster(ctx, id)
	if err != nil {
		return nil, err
	}
	subs, err := s.submissions.List(ctx, *assignment, roster)
	if err != nil {
		return nil, internalError(err, "failed to load submissions")
	}

	counts := dto.SubmissionCounts{All: len(subs)}
	for _, sub := range subs {
		switch sub.Status {
		case models.SubmissionSubmitted:
			counts.Submitted++
		case models.SubmissionOverdue:
			counts.Overdue++
		case models.SubmissionPending:
			counts.Pending++
		}
	}

	visible := query.Filter(subs, func(sub models.Submission) bool {
		switch tab {
		case SubmissionTabSubmitted:
			return sub.Status == models.SubmissionSubmitted || sub.Status == models.SubmissionOverdue
		case SubmissionTabOverdue:
			return sub.Status == models.SubmissionOverdue
		case SubmissionTabPending:
			return sub.Status == models.SubmissionPending
		default:
			return true
		}
	})

	consistent := assignment.CountersConsistent() &&
		counts.Submitted == assignment.Submitted &&
		counts.Overdue == assignment.Overdue &&
		counts.Pending == assignment.Pending
	if !consistent {
		s.logger.Debug("assignment counters differ from roster",
			zap.String("assignment_id", assignment.ID),
			zap.Int("roster", len(roster)),
			zap.Int("total_students", assignment.TotalStudents),
		)
	}

	return &dto.SubmissionsResponse{
		Assignment:  *assignment,
		Counts:      counts,
		Consistent:  consistent,
		Submissions: visible,
	}, nil
}

// Grade stores a grade and feedback for a submitted piece of work.
func (s *AssignmentService) Grade(ctx context.Context, assignmentID, studentID string, req dto.GradeRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid grade payload")
	}
	assignment, roster, err := s.assignmentWithRoster(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	grade := *req.Grade
	if grade > float64(assignment.TotalMarks) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade exceeds total marks")
	}

	subs, err := s.submissions.List(ctx, *assignment, roster)
	if err != nil {
		return nil, internalError(err, "failed to load submissions")
	}
	var target *models.Submission
	for i := range subs {
		if subs[i].StudentID == studentID {
			target = &subs[i]
			break
		}
	}
	if target == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}
	if target.Status == models.SubmissionPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "pending submissions cannot be graded")
	}

	feedback := strings.TrimSpace(req.Feedback)
	if err := s.submissions.Grade(ctx, assignmentID, studentID, grade, feedback); err != nil {
		return nil, internalError(err, "failed to save grade")
	}
	target.Grade = &grade
	target.Feedback = feedback
	return target, nil
}

// PendingReviews counts submissions still awaiting review across assignments.
func (s *AssignmentService) PendingReviews(ctx context.Context) (int, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return 0, internalError(err, "failed to load assignments")
	}
	return pendingReviews(assignments), nil
}

func pendingReviews(assignments []models.Assignment) int {
	total := 0
	for _, a := range assignments {
		total += a.Pending + a.Overdue
	}
	return total
}

func (s *AssignmentService) assignmentWithRoster(ctx context.Context, id string) (*models.Assignment, []models.Student, error) {
	assignment, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, nil, internalError(err, "failed to load students")
	}
	roster := query.Filter(students, func(st models.Student) bool { return assignment.Covers(st.Batch) })
	return assignment, roster, nil
}

func indexOfAssignment(assignments []models.Assignment, id string) int {
	for i, a := range assignments {
		if a.ID == id {
			return i
		}
	}
	return -1
}
