package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
)

// Defaults applied to students added without academic figures.
const (
	defaultStudentAttendance = 75
	defaultStudentCGPA       = 7.5
	defaultStudentBatch      = "CS-A"
)

var studentExportHeaders = []string{"Roll Number", "Student Name", "Batch", "Branch", "Semester", "Section", "Father's Name", "Email", "Phone", "Attendance", "CGPA"}

// StudentService handles the student roster use-cases.
type StudentService struct {
	repo      studentStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
	pageSize  int
	clock     clock

	mu sync.Mutex
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger, pageSize int) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger, csv: export.NewCSVExporter(), pageSize: pageSize}
}

// List returns one page of the filtered roster.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, err := s.Filtered(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	items, pagination := pageOf(students, filter.Page, filter.PageSize, s.pageSize)
	return items, pagination, nil
}

// Filtered returns every student matching filter, ignoring pagination.
func (s *StudentService) Filtered(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	pred, err := studentFilter(filter.Search, filter.Batch, filter.Attendance)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list students")
	}
	return query.Filter(students, pred), nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load student")
	}
	idx := indexOfStudent(students, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student := students[idx]
	return &student, nil
}

// Create adds a student to the roster.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	if err := rejectBlank("invalid student payload", map[string]*string{
		"name":        &req.Name,
		"roll_number": &req.RollNumber,
		"email":       &req.Email,
		"phone":       &req.Phone,
	}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	if rollNumberTaken(students, req.RollNumber, "") {
		return nil, appErrors.Clone(appErrors.ErrConflict, "roll number already used")
	}

	student := models.Student{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		RollNumber:  strings.TrimSpace(req.RollNumber),
		Batch:       strings.TrimSpace(req.Batch),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Branch:      req.Branch,
		Semester:    req.Semester,
		Section:     req.Section,
		FathersName: req.FathersName,
		Attendance:  defaultStudentAttendance,
		CGPA:        defaultStudentCGPA,
	}
	if student.Batch == "" {
		student.Batch = defaultStudentBatch
	}
	if req.Attendance != nil {
		student.Attendance = *req.Attendance
	}
	if req.CGPA != nil {
		student.CGPA = *req.CGPA
	}

	if err := s.repo.Replace(ctx, append(students, student)); err != nil {
		return nil, internalError(err, "failed to create student")
	}
	s.cache.InvalidateViews(ctx)
	s.logger.Info("student created", zap.String("student_id", student.ID), zap.String("batch", student.Batch))
	return &student, nil
}

// Update applies partial changes to a student.
func (s *StudentService) Update(ctx context.Context, id string, req dto.UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	if err := rejectBlank("invalid student payload", map[string]*string{
		"name":        req.Name,
		"roll_number": req.RollNumber,
		"email":       req.Email,
		"phone":       req.Phone,
		"batch":       req.Batch,
	}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	idx := indexOfStudent(students, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if req.RollNumber != nil && rollNumberTaken(students, *req.RollNumber, id) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "roll number already used")
	}

	student := students[idx]
	applyString(&student.Name, req.Name)
	applyString(&student.RollNumber, req.RollNumber)
	applyString(&student.Email, req.Email)
	applyString(&student.Phone, req.Phone)
	applyString(&student.Batch, req.Batch)
	applyString(&student.Branch, req.Branch)
	applyString(&student.Semester, req.Semester)
	applyString(&student.Section, req.Section)
	applyString(&student.FathersName, req.FathersName)
	if req.Attendance != nil {
		student.Attendance = *req.Attendance
	}
	if req.CGPA != nil {
		student.CGPA = *req.CGPA
	}
	students[idx] = student

	if err := s.repo.Replace(ctx, students); err != nil {
		return nil, internalError(err, "failed to update student")
	}
	s.cache.InvalidateViews(ctx)
	return &student, nil
}

// Delete removes a student from the roster.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.repo.List(ctx)
	if err != nil {
		return internalError(err, "failed to load students")
	}
	idx := indexOfStudent(students, id)
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	remaining := append(students[:idx:idx], students[idx+1:]...)
	if err := s.repo.Replace(ctx, remaining); err != nil {
		return internalError(err, "failed to delete student")
	}
	s.cache.InvalidateViews(ctx)
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}

// Export renders the filtered roster as CSV.
func (s *StudentService) Export(ctx context.Context, filter models.StudentFilter) (*export.File, error) {
	students, err := s.Filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, len(students))
	for i, st := range students {
		rows[i] = map[string]string{
			"Roll Number":   st.RollNumber,
			"Student Name":  st.Name,
			"Batch":         st.Batch,
			"Branch":        orDash(st.Branch),
			"Semester":      orDash(st.Semester),
			"Section":       orDash(st.Section),
			"Father's Name": orDash(st.FathersName),
			"Email":         st.Email,
			"Phone":         st.Phone,
			"Attendance":    strconv.Itoa(st.Attendance),
			"CGPA":          strconv.FormatFloat(st.CGPA, 'f', -1, 64),
		}
	}
	body, err := s.csv.Render(export.Dataset{Headers: studentExportHeaders, Rows: rows})
	if err != nil {
		return nil, internalError(err, "failed to render students export")
	}
	return export.NewFile("students", export.FormatCSV, body, s.clock.now()), nil
}

func indexOfStudent(students []models.Student, id string) int {
	for i, st := range students {
		if st.ID == id {
			return i
		}
	}
	return -1
}

func rollNumberTaken(students []models.Student, roll, excludeID string) bool {
	roll = strings.TrimSpace(roll)
	for _, st := range students {
		if st.ID != excludeID && strings.EqualFold(st.RollNumber, roll) {
			return true
		}
	}
	return false
}

// rejectBlank fails when a supplied value is empty once trimmed. Nil entries
// are fields the request left out.
func rejectBlank(message string, fields map[string]*string) error {
	var out *appErrors.Error
	for name, v := range fields {
		if v == nil || strings.TrimSpace(*v) != "" {
			continue
		}
		if out == nil {
			out = appErrors.Clone(appErrors.ErrValidation, message)
		}
		out = out.WithField(name, "required")
	}
	if out == nil {
		return nil
	}
	return out
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
