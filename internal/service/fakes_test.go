package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

type fakeStudentStore struct {
	students []models.Student
	replaced int
	err      error
}

func (f *fakeStudentStore) List(ctx context.Context) ([]models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Student(nil), f.students...), nil
}

func (f *fakeStudentStore) Replace(ctx context.Context, students []models.Student) error {
	if f.err != nil {
		return f.err
	}
	f.replaced++
	f.students = append([]models.Student(nil), students...)
	return nil
}

type fakeNoticeStore struct {
	notices []models.Notice
	err     error
}

func (f *fakeNoticeStore) List(ctx context.Context) ([]models.Notice, error) {
	return f.notices, f.err
}

type fakeTimetableStore struct {
	slots []models.TimeSlot
	err   error
}

func (f *fakeTimetableStore) List(ctx context.Context) ([]models.TimeSlot, error) {
	return f.slots, f.err
}

type fakeAssignmentStore struct {
	assignments []models.Assignment
	err         error
}

func (f *fakeAssignmentStore) List(ctx context.Context) ([]models.Assignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Assignment(nil), f.assignments...), nil
}

func (f *fakeAssignmentStore) Replace(ctx context.Context, assignments []models.Assignment) error {
	if f.err != nil {
		return f.err
	}
	f.assignments = append([]models.Assignment(nil), assignments...)
	return nil
}

type fakeAttendanceStore struct {
	records map[string][]models.AttendanceEntry
	sheets  map[string]map[string]models.AttendanceStatus
}

func (f *fakeAttendanceStore) Records(ctx context.Context, students []models.Student) (map[string][]models.AttendanceEntry, error) {
	out := make(map[string][]models.AttendanceEntry, len(students))
	for _, st := range students {
		out[st.ID] = f.records[st.ID]
	}
	return out, nil
}

func (f *fakeAttendanceStore) SaveSheet(ctx context.Context, date, subject string, statuses map[string]models.AttendanceStatus) error {
	if f.sheets == nil {
		f.sheets = make(map[string]map[string]models.AttendanceStatus)
	}
	f.sheets[date] = statuses
	return nil
}

type fakeSubmissionStore struct {
	rows   []models.Submission
	graded map[string]float64
}

func (f *fakeSubmissionStore) List(ctx context.Context, assignment models.Assignment, roster []models.Student) ([]models.Submission, error) {
	out := make([]models.Submission, 0, len(f.rows))
	for _, row := range f.rows {
		if row.AssignmentID != assignment.ID {
			continue
		}
		if g, ok := f.graded[row.StudentID]; ok {
			grade := g
			row.Grade = &grade
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeSubmissionStore) Grade(ctx context.Context, assignmentID, studentID string, grade float64, feedback string) error {
	if f.graded == nil {
		f.graded = make(map[string]float64)
	}
	f.graded[studentID] = grade
	return nil
}

type fakeKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

type fakeCacheRepo struct {
	entries     map[string][]byte
	invalidated []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	f.invalidated = append(f.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	removed := 0
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			delete(f.entries, key)
			removed++
		}
	}
	return removed, nil
}

func sampleStudents() []models.Student {
	return []models.Student{
		{ID: "1", Name: "Arjun Sharma", RollNumber: "CS001", Batch: "CS-A", Email: "arjun.sharma@college.edu", Phone: "+91-9876543210", Attendance: 92, CGPA: 8.5},
		{ID: "2", Name: "Priya Verma", RollNumber: "CS002", Batch: "CS-A", Email: "priya.verma@college.edu", Phone: "+91-9876543211", Attendance: 88, CGPA: 8.2},
		{ID: "3", Name: "Rahul Singh", RollNumber: "CS003", Batch: "CS-B", Email: "rahul.singh@college.edu", Phone: "+91-9876543212", Attendance: 65, CGPA: 7.1},
		{ID: "4", Name: "Neha Gupta", RollNumber: "CS004", Batch: "CS-B", Email: "neha.gupta@college.edu", Phone: "+91-9876543213", Attendance: 78, CGPA: 7.8},
		{ID: "5", Name: "Amit Patel", RollNumber: "CS005", Batch: "CS-C", Email: "amit.patel@college.edu", Phone: "+91-9876543214", Attendance: 55, CGPA: 6.5},
	}
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}
