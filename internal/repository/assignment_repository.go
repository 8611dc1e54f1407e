package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

// AssignmentRepository persists assignments in PostgreSQL.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// assignmentRow flattens the lifecycle into status and lifecycle_at columns.
type assignmentRow struct {
	ID            string     `db:"id"`
	Position      int        `db:"position"`
	Title         string     `db:"title"`
	Description   string     `db:"description"`
	Subject       string     `db:"subject"`
	Batch         string     `db:"batch"`
	DueDate       string     `db:"due_date"`
	TotalMarks    int        `db:"total_marks"`
	Submitted     int        `db:"submitted"`
	Pending       int        `db:"pending"`
	Overdue       int        `db:"overdue"`
	TotalStudents int        `db:"total_students"`
	Status        string     `db:"status"`
	LifecycleAt   *time.Time `db:"lifecycle_at"`
}

func toAssignmentRow(a models.Assignment, position int) assignmentRow {
	state := a.State()
	return assignmentRow{
		ID:            a.ID,
		Position:      position,
		Title:         a.Title,
		Description:   a.Description,
		Subject:       a.Subject,
		Batch:         a.Batch,
		DueDate:       a.DueDate,
		TotalMarks:    a.TotalMarks,
		Submitted:     a.Submitted,
		Pending:       a.Pending,
		Overdue:       a.Overdue,
		TotalStudents: a.TotalStudents,
		Status:        string(state.Status()),
		LifecycleAt:   state.At(),
	}
}

func (row assignmentRow) toModel() (models.Assignment, error) {
	lc, err := models.LifecycleOf(models.AssignmentStatus(row.Status), row.LifecycleAt)
	if err != nil {
		return models.Assignment{}, fmt.Errorf("assignment %s: %w", row.ID, err)
	}
	return models.Assignment{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		Subject:       row.Subject,
		Batch:         row.Batch,
		DueDate:       row.DueDate,
		TotalMarks:    row.TotalMarks,
		Submitted:     row.Submitted,
		Pending:       row.Pending,
		Overdue:       row.Overdue,
		TotalStudents: row.TotalStudents,
		Lifecycle:     lc,
	}, nil
}

// List returns assignments in creation order.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	const query = `SELECT id, position, title, description, subject, batch, due_date, total_marks, submitted, pending, overdue, total_students, status, lifecycle_at
        FROM assignments ORDER BY position`
	var rows []assignmentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	assignments := make([]models.Assignment, 0, len(rows))
	for _, row := range rows {
		a, err := row.toModel()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// Replace rewrites every assignment.
func (r *AssignmentRepository) Replace(ctx context.Context, assignments []models.Assignment) error {
	const insert = `INSERT INTO assignments (id, position, title, description, subject, batch, due_date, total_marks, submitted, pending, overdue, total_students, status, lifecycle_at)
        VALUES (:id, :position, :title, :description, :subject, :batch, :due_date, :total_marks, :submitted, :pending, :overdue, :total_students, :status, :lifecycle_at)`
	rows := make([]interface{}, len(assignments))
	for i, a := range assignments {
		rows[i] = toAssignmentRow(a, i)
	}
	return replaceTable(ctx, r.db, "assignments", insert, rows)
}
