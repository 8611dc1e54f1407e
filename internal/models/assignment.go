package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AssignmentStatus is the wire name of an assignment lifecycle stage.
type AssignmentStatus string

const (
	AssignmentStatusDraft     AssignmentStatus = "draft"
	AssignmentStatusPublished AssignmentStatus = "published"
	AssignmentStatusScheduled AssignmentStatus = "scheduled"
)

// Lifecycle is the closed set of assignment stages: Draft, Published or Scheduled.
type Lifecycle interface {
	Status() AssignmentStatus
	// At is the publish or scheduled time; nil for drafts.
	At() *time.Time
	lifecycle()
}

// Draft assignments are invisible to students.
type Draft struct{}

// Published assignments are live since At (zero when unknown).
type Published struct {
	Since time.Time
}

// Scheduled assignments go live at a future time.
type Scheduled struct {
	On time.Time
}

func (Draft) Status() AssignmentStatus     { return AssignmentStatusDraft }
func (Published) Status() AssignmentStatus { return AssignmentStatusPublished }
func (Scheduled) Status() AssignmentStatus { return AssignmentStatusScheduled }

func (Draft) At() *time.Time { return nil }

func (p Published) At() *time.Time {
	if p.Since.IsZero() {
		return nil
	}
	t := p.Since
	return &t
}

func (s Scheduled) At() *time.Time {
	t := s.On
	return &t
}

func (Draft) lifecycle()     {}
func (Published) lifecycle() {}
func (Scheduled) lifecycle() {}

// LifecycleOf rebuilds a lifecycle from its persisted status and timestamp.
// An empty status is treated as published.
func LifecycleOf(status AssignmentStatus, at *time.Time) (Lifecycle, error) {
	switch status {
	case AssignmentStatusDraft:
		return Draft{}, nil
	case AssignmentStatusPublished, "":
		if at == nil {
			return Published{}, nil
		}
		return Published{Since: *at}, nil
	case AssignmentStatusScheduled:
		if at == nil {
			return nil, fmt.Errorf("scheduled assignment requires a scheduled date")
		}
		return Scheduled{On: *at}, nil
	default:
		return nil, fmt.Errorf("unknown assignment status %q", status)
	}
}

// Assignment tracks coursework for a batch. Submission counters are denormalised.
type Assignment struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Subject       string    `json:"subject"`
	Batch         string    `json:"batch"`
	DueDate       string    `json:"due_date"`
	TotalMarks    int       `json:"total_marks"`
	Submitted     int       `json:"submitted"`
	Pending       int       `json:"pending"`
	Overdue       int       `json:"overdue"`
	TotalStudents int       `json:"total_students"`
	Lifecycle     Lifecycle `json:"-"`
}

// State returns the lifecycle, defaulting to Published for records without one.
func (a Assignment) State() Lifecycle {
	if a.Lifecycle == nil {
		return Published{}
	}
	return a.Lifecycle
}

// CountersConsistent reports whether submitted + pending + overdue equals the class size.
func (a Assignment) CountersConsistent() bool {
	return a.Submitted+a.Pending+a.Overdue == a.TotalStudents
}

// Due parses the due date.
func (a Assignment) Due() (time.Time, error) {
	return time.Parse(DateLayout, a.DueDate)
}

type assignmentLifecycleJSON struct {
	Status        AssignmentStatus `json:"status"`
	ScheduledDate *time.Time       `json:"scheduled_date,omitempty"`
	PublishedAt   *time.Time       `json:"published_at,omitempty"`
}

// MarshalJSON flattens the lifecycle into status and date fields.
func (a Assignment) MarshalJSON() ([]byte, error) {
	type alias Assignment
	state := a.State()
	lc := assignmentLifecycleJSON{Status: state.Status()}
	switch state.(type) {
	case Scheduled:
		lc.ScheduledDate = state.At()
	case Published:
		lc.PublishedAt = state.At()
	}
	return json.Marshal(struct {
		alias
		assignmentLifecycleJSON
	}{alias(a), lc})
}

// UnmarshalJSON restores the lifecycle from status and date fields.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	type alias Assignment
	payload := struct {
		*alias
		assignmentLifecycleJSON
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	at := payload.PublishedAt
	if payload.Status == AssignmentStatusScheduled {
		at = payload.ScheduledDate
	}
	lc, err := LifecycleOf(payload.Status, at)
	if err != nil {
		return err
	}
	a.Lifecycle = lc
	return nil
}

// AssignmentProgressFilter values.
const (
	AssignmentFilterActive    = "Active"
	AssignmentFilterCompleted = "Completed"
	AssignmentFilterOverdue   = "Overdue"
)

// AssignmentFilter scopes the assignments dashboard.
type AssignmentFilter struct {
	Search   string
	Batch    string
	Subject  string
	Status   string
	Page     int
	PageSize int
}

// SubmissionStatus is the state of one student's submission.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionOverdue   SubmissionStatus = "overdue"
	SubmissionPending   SubmissionStatus = "pending"
)

// Submission is a per-student row for an assignment.
type Submission struct {
	AssignmentID string           `json:"assignment_id"`
	StudentID    string           `json:"student_id"`
	StudentName  string           `json:"student_name"`
	RollNumber   string           `json:"roll_number"`
	Batch        string           `json:"batch"`
	Email        string           `json:"email"`
	Status       SubmissionStatus `json:"status"`
	SubmittedAt  *time.Time       `json:"submitted_at,omitempty"`
	Grade        *float64         `json:"grade,omitempty"`
	Feedback     string           `json:"feedback,omitempty"`
	FileName     string           `json:"file_name,omitempty"`
}

// DateLayout is the calendar date format used across records and filenames.
const DateLayout = "2006-01-02"

// Batches splits a multi-batch assignment ("CS-A, CS-B") into its batches.
func (a Assignment) Batches() []string {
	parts := strings.Split(a.Batch, ",")
	batches := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			batches = append(batches, p)
		}
	}
	return batches
}

// Covers reports whether the assignment is set for batch.
func (a Assignment) Covers(batch string) bool {
	for _, b := range a.Batches() {
		if b == batch {
			return true
		}
	}
	return false
}
