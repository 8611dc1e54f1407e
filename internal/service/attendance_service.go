package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
)

const trendLength = 7

var attendanceExportHeaders = []string{"Roll Number", "Student Name", "Batch", "Overall Attendance %", "Status"}

// AttendanceService serves the attendance overview, drill-down and take-attendance flows.
type AttendanceService struct {
	students  studentStore
	records   attendanceStore
	timetable timetableStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	pageSize  int
	clock     clock
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(students studentStore, records attendanceStore, timetable timetableStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger, pageSize int) *AttendanceService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &AttendanceService{
		students:  students,
		records:   records,
		timetable: timetable,
		cache:     cache,
		validator: validate,
		logger:    logger,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		pageSize:  pageSize,
	}
}

// List returns one page of attendance rows for the filtered roster.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]dto.AttendanceRow, *models.Pagination, error) {
	students, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	page, pagination := pageOf(students, filter.Page, filter.PageSize, s.pageSize)

	records, err := s.records.Records(ctx, page)
	if err != nil {
		return nil, nil, internalError(err, "failed to load attendance records")
	}
	rows := make([]dto.AttendanceRow, len(page))
	for i, st := range page {
		entries := records[st.ID]
		rows[i] = dto.AttendanceRow{
			Student:     st,
			Band:        string(query.ClassifyAttendance(st.Attendance)),
			AbsentCount: models.Summarise(entries).Absent,
			Trend:       lastEntries(entries, trendLength),
		}
	}
	return rows, pagination, nil
}

// Detail returns the full class-day history of one student.
func (s *AttendanceService) Detail(ctx context.Context, studentID string) (*dto.AttendanceDetail, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	idx := indexOfStudent(students, studentID)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student := students[idx]
	records, err := s.records.Records(ctx, []models.Student{student})
	if err != nil {
		return nil, internalError(err, "failed to load attendance records")
	}
	entries := records[student.ID]
	if entries == nil {
		entries = []models.AttendanceEntry{}
	}
	return &dto.AttendanceDetail{
		Student: student,
		Band:    string(query.ClassifyAttendance(student.Attendance)),
		Summary: models.Summarise(entries),
		Entries: entries,
	}, nil
}

// Roster lists the students of a batch together with the subjects taught to it.
func (s *AttendanceService) Roster(ctx context.Context, batch, search string) (*dto.AttendanceRoster, error) {
	batch = strings.TrimSpace(batch)
	if batch == "" || query.IsAll(batch) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "batch is required")
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	subjects, err := s.subjects(ctx, batch)
	if err != nil {
		return nil, err
	}
	roster := query.Filter(students, query.And[models.Student](
		func(st models.Student) bool { return st.Batch == batch },
		func(st models.Student) bool { return query.Match(search, st.Name, st.RollNumber) },
	))
	return &dto.AttendanceRoster{Batch: batch, Subjects: subjects, Students: roster}, nil
}

// Mark records a take-attendance sheet. Roster members without a mark are absent.
func (s *AttendanceService) Mark(ctx context.Context, sheet models.AttendanceSheet) (*dto.MarkAttendanceResult, error) {
	if err := s.validator.Struct(sheet); err != nil {
		return nil, validationError(err, "invalid attendance sheet")
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	roster := query.Filter(students, func(st models.Student) bool { return st.Batch == sheet.Batch })
	if len(roster) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "batch has no students")
	}
	subjects, err := s.subjects(ctx, sheet.Batch)
	if err != nil {
		return nil, err
	}
	if len(subjects) > 0 && !contains(subjects, sheet.Subject) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject is not taught to batch "+sheet.Batch)
	}

	members := make(map[string]struct{}, len(roster))
	for _, st := range roster {
		members[st.ID] = struct{}{}
	}
	for id := range sheet.Marks {
		if _, ok := members[id]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student "+id+" is not in batch "+sheet.Batch)
		}
	}

	statuses := make(map[string]models.AttendanceStatus, len(roster))
	present := 0
	for _, st := range roster {
		status := models.AttendanceStatusAbsent
		if sheet.Marks[st.ID] {
			status = models.AttendanceStatusPresent
			present++
		}
		statuses[st.ID] = status
	}
	if err := s.records.SaveSheet(ctx, sheet.Date, sheet.Subject, statuses); err != nil {
		return nil, internalError(err, "failed to save attendance")
	}
	s.cache.InvalidateViews(ctx)
	s.logger.Info("attendance marked",
		zap.String("batch", sheet.Batch),
		zap.String("subject", sheet.Subject),
		zap.String("date", sheet.Date),
		zap.Int("present", present),
	)
	return &dto.MarkAttendanceResult{
		Date:    sheet.Date,
		Batch:   sheet.Batch,
		Subject: sheet.Subject,
		Present: present,
		Absent:  len(roster) - present,
		Total:   len(roster),
	}, nil
}

// Distribution splits the batch selection into Good, Low and At Risk.
func (s *AttendanceService) Distribution(ctx context.Context, batch string) (query.Distribution, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	selected := query.Filter(students, func(st models.Student) bool { return query.MatchesSelection(batch, st.Batch) })
	return attendanceDistribution(selected), nil
}

// Export renders the filtered overview as CSV or PDF.
func (s *AttendanceService) Export(ctx context.Context, filter models.AttendanceFilter, format export.Format) (*export.File, error) {
	students, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, len(students))
	for i, st := range students {
		rows[i] = map[string]string{
			"Roll Number":          st.RollNumber,
			"Student Name":         st.Name,
			"Batch":                st.Batch,
			"Overall Attendance %": strconv.Itoa(st.Attendance),
			"Status":               string(query.ClassifyAttendance(st.Attendance)),
		}
	}
	data := export.Dataset{Headers: attendanceExportHeaders, Rows: rows}

	var body []byte
	switch format {
	case export.FormatCSV:
		body, err = s.csv.Render(data)
	case export.FormatPDF:
		body, err = s.pdf.Render(export.Report{
			Title:     "Attendance Report",
			Generated: s.clock.now(),
			Data:      data,
			Highlight: func(row map[string]string) bool { return row["Status"] == string(query.AttendanceAtRisk) },
		})
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "attendance export supports csv or pdf")
	}
	if err != nil {
		return nil, internalError(err, "failed to render attendance export")
	}
	return export.NewFile("attendance", format, body, s.clock.now()), nil
}

func (s *AttendanceService) filtered(ctx context.Context, filter models.AttendanceFilter) ([]models.Student, error) {
	pred, err := studentFilter(filter.Search, filter.Batch, filter.Band)
	if err != nil {
		return nil, err
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	return query.Filter(students, pred), nil
}

func (s *AttendanceService) subjects(ctx context.Context, batch string) ([]string, error) {
	slots, err := s.timetable.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load timetable")
	}
	return subjectsOf(slots, batch), nil
}

// attendanceDistribution is the three-band split shared with the dashboard.
func attendanceDistribution(students []models.Student) query.Distribution {
	return query.Distribute(students, query.AttendanceBands, func(st models.Student) string {
		return string(query.ClassifyAttendance(st.Attendance))
	})
}

// subjectsOf lists the distinct subjects taught to batch in timetable order.
func subjectsOf(slots []models.TimeSlot, batch string) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, slot := range slots {
		if !query.MatchesSelection(batch, slot.Batch) {
			continue
		}
		if _, ok := seen[slot.Subject]; ok {
			continue
		}
		seen[slot.Subject] = struct{}{}
		out = append(out, slot.Subject)
	}
	return out
}

func lastEntries(entries []models.AttendanceEntry, n int) []models.AttendanceEntry {
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	out := make([]models.AttendanceEntry, len(entries))
	copy(out, entries)
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
