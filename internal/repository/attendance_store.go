package repository

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

// GeneratedAttendanceStore synthesises a month of class days per student, where each
// day is present with probability equal to the student's attendance percentage.
// Histories are generated once per process; submitted sheets overlay them. Sheets
// are kept per subject, and a marked day is absent when any subject's sheet says so.
type GeneratedAttendanceStore struct {
	seed  int64
	start time.Time
	days  int

	mu        sync.Mutex
	generated map[string][]models.AttendanceEntry
	marked    map[string]map[string]map[string]models.AttendanceStatus
}

// NewGeneratedAttendanceStore constructs a store producing days consecutive class days from start.
func NewGeneratedAttendanceStore(seed int64, start time.Time, days int) *GeneratedAttendanceStore {
	if days <= 0 {
		days = 22
	}
	return &GeneratedAttendanceStore{
		seed:      seed,
		start:     start,
		days:      days,
		generated: make(map[string][]models.AttendanceEntry),
		marked:    make(map[string]map[string]map[string]models.AttendanceStatus),
	}
}

// Records returns the date-ordered history of every student keyed by student ID.
func (s *GeneratedAttendanceStore) Records(_ context.Context, students []models.Student) (map[string][]models.AttendanceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]models.AttendanceEntry, len(students))
	for _, student := range students {
		base, ok := s.generated[student.ID]
		if !ok {
			base = s.generate(student)
			s.generated[student.ID] = base
		}
		out[student.ID] = overlay(base, collapse(s.marked[student.ID]))
	}
	return out, nil
}

// SaveSheet records one subject's statuses for a class day. Resubmitting the
// same date and subject replaces that sheet only.
func (s *GeneratedAttendanceStore) SaveSheet(_ context.Context, date, subject string, statuses map[string]models.AttendanceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for studentID, status := range statuses {
		days, ok := s.marked[studentID]
		if !ok {
			days = make(map[string]map[string]models.AttendanceStatus)
			s.marked[studentID] = days
		}
		subjects, ok := days[date]
		if !ok {
			subjects = make(map[string]models.AttendanceStatus)
			days[date] = subjects
		}
		subjects[subject] = status
	}
	return nil
}

// collapse reduces per-subject marks to one status per date.
func collapse(days map[string]map[string]models.AttendanceStatus) map[string]models.AttendanceStatus {
	out := make(map[string]models.AttendanceStatus, len(days))
	for date, subjects := range days {
		status := models.AttendanceStatusPresent
		for _, st := range subjects {
			if st == models.AttendanceStatusAbsent {
				status = models.AttendanceStatusAbsent
				break
			}
		}
		out[date] = status
	}
	return out
}

func (s *GeneratedAttendanceStore) generate(student models.Student) []models.AttendanceEntry {
	h := fnv.New64a()
	_, _ = h.Write([]byte(student.ID))
	rng := rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))

	entries := make([]models.AttendanceEntry, s.days)
	for i := range entries {
		status := models.AttendanceStatusAbsent
		if rng.Float64()*100 < float64(student.Attendance) {
			status = models.AttendanceStatusPresent
		}
		entries[i] = models.AttendanceEntry{
			Date:   s.start.AddDate(0, 0, i).Format(models.DateLayout),
			Status: status,
		}
	}
	return entries
}

func overlay(base []models.AttendanceEntry, marked map[string]models.AttendanceStatus) []models.AttendanceEntry {
	out := make([]models.AttendanceEntry, 0, len(base)+len(marked))
	seen := make(map[string]struct{}, len(base))
	for _, e := range base {
		if status, ok := marked[e.Date]; ok {
			e.Status = status
		}
		seen[e.Date] = struct{}{}
		out = append(out, e)
	}
	extra := 0
	for date, status := range marked {
		if _, ok := seen[date]; ok {
			continue
		}
		out = append(out, models.AttendanceEntry{Date: date, Status: status})
		extra++
	}
	if extra > 0 {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	}
	return out
}
