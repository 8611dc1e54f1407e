package dto

import "github.com/noah-isme/faculty-dashboard-api/internal/models"

// AttendanceRow is one line of the attendance overview.
type AttendanceRow struct {
	Student     models.Student           `json:"student"`
	Band        string                   `json:"band"`
	AbsentCount int                      `json:"absent_count"`
	Trend       []models.AttendanceEntry `json:"trend"`
}

// AttendanceDetail is the per-student attendance drill-down.
type AttendanceDetail struct {
	Student models.Student           `json:"student"`
	Band    string                   `json:"band"`
	Summary models.AttendanceSummary `json:"summary"`
	Entries []models.AttendanceEntry `json:"entries"`
}

// AttendanceRoster lists the students and subjects of a batch for marking.
type AttendanceRoster struct {
	Batch    string           `json:"batch"`
	Subjects []string         `json:"subjects"`
	Students []models.Student `json:"students"`
}

// MarkAttendanceResult reports the outcome of a submitted sheet.
type MarkAttendanceResult struct {
	Date    string `json:"date"`
	Batch   string `json:"batch"`
	Subject string `json:"subject"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Total   int    `json:"total"`
}
