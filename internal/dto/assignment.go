package dto

import (
	"time"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

// CreateAssignmentRequest captures the create-assignment form.
type CreateAssignmentRequest struct {
	Title         string                  `json:"title" validate:"required,min=3,max=200"`
	Description   string                  `json:"description" validate:"omitempty,max=2000"`
	Subject       string                  `json:"subject" validate:"required"`
	Batches       []string                `json:"batches" validate:"required,min=1,dive,required"`
	DueDate       string                  `json:"due_date" validate:"required,datetime=2006-01-02"`
	TotalMarks    int                     `json:"total_marks" validate:"required,min=1,max=1000"`
	Status        models.AssignmentStatus `json:"status" validate:"omitempty,oneof=draft published scheduled"`
	ScheduledDate *time.Time              `json:"scheduled_date"`
}

// AssignmentRow is one line of the assignments overview.
type AssignmentRow struct {
	Assignment models.Assignment `json:"assignment"`
	Progress   int               `json:"progress"`
}

// SubmissionCounts tallies generated submission rows.
type SubmissionCounts struct {
	All       int `json:"all"`
	Submitted int `json:"submitted"`
	Overdue   int `json:"overdue"`
	Pending   int `json:"pending"`
}

// SubmissionsResponse is the submissions drill-down of an assignment.
type SubmissionsResponse struct {
	Assignment  models.Assignment   `json:"assignment"`
	Counts      SubmissionCounts    `json:"counts"`
	Consistent  bool                `json:"consistent"`
	Submissions []models.Submission `json:"submissions"`
}

// GradeRequest grades a single submission.
type GradeRequest struct {
	Grade    *float64 `json:"grade" validate:"required,min=0"`
	Feedback string   `json:"feedback" validate:"omitempty,max=2000"`
}
