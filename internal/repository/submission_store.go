package repository

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

type gradeEntry struct {
	grade    float64
	feedback string
}

// GeneratedSubmissionStore derives per-student submissions from an assignment's counters.
// Roster members are assigned in order: the first Submitted are on time, the next
// Overdue were late and the rest are pending. Grades live in memory.
type GeneratedSubmissionStore struct {
	seed int64

	mu     sync.RWMutex
	grades map[string]gradeEntry
}

// NewGeneratedSubmissionStore constructs the store.
func NewGeneratedSubmissionStore(seed int64) *GeneratedSubmissionStore {
	return &GeneratedSubmissionStore{seed: seed, grades: make(map[string]gradeEntry)}
}

// List returns a submission row for each roster member.
func (s *GeneratedSubmissionStore) List(_ context.Context, assignment models.Assignment, roster []models.Student) ([]models.Submission, error) {
	due, err := assignment.Due()
	if err != nil {
		due = time.Time{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Submission, 0, len(roster))
	for i, student := range roster {
		sub := models.Submission{
			AssignmentID: assignment.ID,
			StudentID:    student.ID,
			StudentName:  student.Name,
			RollNumber:   student.RollNumber,
			Batch:        student.Batch,
			Email:        student.Email,
			Status:       models.SubmissionPending,
		}
		offset := s.offset(assignment.ID, student.ID)
		switch {
		case i < assignment.Submitted:
			sub.Status = models.SubmissionSubmitted
			at := due.Add(-offset)
			sub.SubmittedAt = &at
		case i < assignment.Submitted+assignment.Overdue:
			sub.Status = models.SubmissionOverdue
			at := due.Add(offset)
			sub.SubmittedAt = &at
		}
		if sub.Status != models.SubmissionPending {
			sub.FileName = "assignment_" + student.ID + ".pdf"
		}
		if g, ok := s.grades[gradeKey(assignment.ID, student.ID)]; ok {
			grade := g.grade
			sub.Grade = &grade
			sub.Feedback = g.feedback
		}
		out = append(out, sub)
	}
	return out, nil
}

// Grade stores a grade and feedback for one submission.
func (s *GeneratedSubmissionStore) Grade(_ context.Context, assignmentID, studentID string, grade float64, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grades[gradeKey(assignmentID, studentID)] = gradeEntry{grade: grade, feedback: feedback}
	return nil
}

// offset is a deterministic distance of up to two days from the due date.
func (s *GeneratedSubmissionStore) offset(assignmentID, studentID string) time.Duration {
	h := fnv.New64a()
	_, _ = h.Write([]byte(assignmentID + "/" + studentID))
	rng := rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))
	return time.Duration(rng.Int63n(int64(48 * time.Hour)))
}

func gradeKey(assignmentID, studentID string) string {
	return assignmentID + "/" + studentID
}
