package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

func sampleAssignments() []models.Assignment {
	return []models.Assignment{
		{ID: "1", Title: "Data Structures Implementation", Subject: "Data Structures", Batch: "CS-A", DueDate: "2024-11-10", TotalMarks: 100, Submitted: 22, Pending: 3, TotalStudents: 25, Lifecycle: models.Published{}},
		{ID: "2", Title: "Web Application Project", Subject: "Web Development", Batch: "CS-B", DueDate: "2024-11-15", TotalMarks: 150, Submitted: 18, Pending: 5, Overdue: 2, TotalStudents: 25, Lifecycle: models.Published{}},
		{ID: "3", Title: "Database Design Case Study", Subject: "Database Management", Batch: "CS-C", DueDate: "2024-11-12", TotalMarks: 80, Submitted: 24, Pending: 1, TotalStudents: 25, Lifecycle: models.Published{}},
	}
}

type assignmentFixture struct {
	svc         *AssignmentService
	assignments *fakeAssignmentStore
	submissions *fakeSubmissionStore
}

func newAssignmentFixture() assignmentFixture {
	assignments := &fakeAssignmentStore{assignments: sampleAssignments()}
	submissions := &fakeSubmissionStore{}
	svc := NewAssignmentService(assignments, &fakeStudentStore{students: sampleStudents()}, submissions, nil, nil, zap.NewNop(), 10)
	svc.clock = fixedClock(time.Date(2024, time.November, 1, 9, 0, 0, 0, time.UTC))
	return assignmentFixture{svc: svc, assignments: assignments, submissions: submissions}
}

func TestAssignmentServiceListStatusTabs(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()

	rows, _, err := f.svc.List(ctx, models.AssignmentFilter{Status: "Active"})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, 88, rows[0].Progress)

	rows, _, err = f.svc.List(ctx, models.AssignmentFilter{Status: "Overdue"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].Assignment.ID)

	rows, pagination, err := f.svc.List(ctx, models.AssignmentFilter{Status: "Completed"})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 0, pagination.TotalPages)

	_, _, err = f.svc.List(ctx, models.AssignmentFilter{Status: "Archived"})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestAssignmentServiceListFilters(t *testing.T) {
	f := newAssignmentFixture()

	rows, _, err := f.svc.List(context.Background(), models.AssignmentFilter{Search: "database", Batch: "CS-C", Subject: "All"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0].Assignment.ID)

	rows, _, err = f.svc.List(context.Background(), models.AssignmentFilter{Batch: "CS-A", Subject: "Web Development"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAssignmentServiceCreateExpandsAllBatches(t *testing.T) {
	f := newAssignmentFixture()

	created, err := f.svc.Create(context.Background(), dto.CreateAssignmentRequest{
		Title:      "Graph Algorithms",
		Subject:    "Algorithms",
		Batches:    []string{"All"},
		DueDate:    "2024-12-01",
		TotalMarks: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "CS-A, CS-B, CS-C", created.Batch)
	assert.Equal(t, 5, created.TotalStudents)
	assert.Equal(t, 5, created.Pending)
	assert.True(t, created.CountersConsistent())
	assert.Equal(t, models.AssignmentStatusPublished, created.State().Status())
	assert.Len(t, f.assignments.assignments, 4)
}

func TestAssignmentServiceCreateLifecycle(t *testing.T) {
	f := newAssignmentFixture()
	ctx := context.Background()
	base := dto.CreateAssignmentRequest{Title: "Lab Report", Subject: "Data Structures", Batches: []string{"CS-A"}, DueDate: "2024-12-01", TotalMarks: 20}

	draft := base
	draft.Status = models.AssignmentStatusDraft
	created, err := f.svc.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, models.Draft{}, created.State())
	assert.Equal(t, 2, created.TotalStudents)

	past := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	scheduled := base
	scheduled.Status = models.AssignmentStatusScheduled
	scheduled.ScheduledDate = &past
	_, err = f.svc.Create(ctx, scheduled)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))

	scheduled.ScheduledDate = nil
	_, err = f.svc.Create(ctx, scheduled)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))

	future := time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC)
	scheduled.ScheduledDate = &future
	created, err = f.svc.Create(ctx, scheduled)
	require.NoError(t, err)
	assert.Equal(t, models.Scheduled{On: future}, created.State())
}

func TestAssignmentServiceCreateValidation(t *testing.T) {
	f := newAssignmentFixture()

	_, err := f.svc.Create(context.Background(), dto.CreateAssignmentRequest{Title: "No batches", Subject: "Algorithms", DueDate: "2024-12-01", TotalMarks: 10})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))

	_, err = f.svc.Create(context.Background(), dto.CreateAssignmentRequest{Title: "Zero marks", Subject: "Algorithms", Batches: []string{"CS-A"}, DueDate: "2024-12-01"})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestAssignmentServiceDelete(t *testing.T) {
	f := newAssignmentFixture()

	require.NoError(t, f.svc.Delete(context.Background(), "2"))
	assert.Len(t, f.assignments.assignments, 2)
	assert.True(t, appErrors.IsCode(f.svc.Delete(context.Background(), "2"), appErrors.ErrNotFound.Code))
}

func submittedAt(day int) *time.Time {
	t := time.Date(2024, time.November, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestAssignmentServiceSubmissionsTabs(t *testing.T) {
	f := newAssignmentFixture()
	f.assignments.assignments = []models.Assignment{
		{ID: "9", Title: "Mini Project", Subject: "Algorithms", Batch: "CS-B", DueDate: "2024-11-10", TotalMarks: 40, Submitted: 1, Overdue: 1, TotalStudents: 2},
	}
	f.submissions.rows = []models.Submission{
		{AssignmentID: "9", StudentID: "3", Status: models.SubmissionSubmitted, SubmittedAt: submittedAt(9)},
		{AssignmentID: "9", StudentID: "4", Status: models.SubmissionOverdue, SubmittedAt: submittedAt(12)},
	}

	resp, err := f.svc.Submissions(context.Background(), "9", "submitted")
	require.NoError(t, err)
	assert.Len(t, resp.Submissions, 2)
	assert.Equal(t, dto.SubmissionCounts{All: 2, Submitted: 1, Overdue: 1}, resp.Counts)
	assert.True(t, resp.Consistent)

	resp, err = f.svc.Submissions(context.Background(), "9", "overdue")
	require.NoError(t, err)
	require.Len(t, resp.Submissions, 1)
	assert.Equal(t, "4", resp.Submissions[0].StudentID)

	_, err = f.svc.Submissions(context.Background(), "9", "graded")
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestAssignmentServiceSubmissionsReportsInconsistentCounters(t *testing.T) {
	f := newAssignmentFixture()
	f.submissions.rows = []models.Submission{
		{AssignmentID: "1", StudentID: "1", Status: models.SubmissionSubmitted},
		{AssignmentID: "1", StudentID: "2", Status: models.SubmissionSubmitted},
	}

	resp, err := f.svc.Submissions(context.Background(), "1", "")
	require.NoError(t, err)
	assert.False(t, resp.Consistent)
	assert.Equal(t, 2, resp.Counts.All)
}

func TestAssignmentServiceGrade(t *testing.T) {
	f := newAssignmentFixture()
	f.submissions.rows = []models.Submission{
		{AssignmentID: "1", StudentID: "1", Status: models.SubmissionSubmitted},
		{AssignmentID: "1", StudentID: "2", Status: models.SubmissionPending},
	}
	ctx := context.Background()
	grade := 91.5

	sub, err := f.svc.Grade(ctx, "1", "1", dto.GradeRequest{Grade: &grade, Feedback: " Well done "})
	require.NoError(t, err)
	require.NotNil(t, sub.Grade)
	assert.Equal(t, 91.5, *sub.Grade)
	assert.Equal(t, "Well done", sub.Feedback)
	assert.Equal(t, 91.5, f.submissions.graded["1"])

	_, err = f.svc.Grade(ctx, "1", "2", dto.GradeRequest{Grade: &grade})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrConflict.Code))

	tooHigh := 101.0
	_, err = f.svc.Grade(ctx, "1", "1", dto.GradeRequest{Grade: &tooHigh})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))

	_, err = f.svc.Grade(ctx, "1", "5", dto.GradeRequest{Grade: &grade})
	assert.True(t, appErrors.IsCode(err, appErrors.ErrNotFound.Code))
}

func TestAssignmentServicePendingReviews(t *testing.T) {
	f := newAssignmentFixture()

	total, err := f.svc.PendingReviews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11, total)
}
