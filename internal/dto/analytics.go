package dto

import (
	"time"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
)

// AnalyticsMetrics are the headline numbers of the analytics page.
type AnalyticsMetrics struct {
	TotalStudents       int     `json:"total_students"`
	AverageAttendance   int     `json:"average_attendance"`
	AtRiskStudents      int     `json:"at_risk_students"`
	ExcellentAttendance int     `json:"excellent_attendance"`
	AverageCGPA         float64 `json:"average_cgpa"`
}

// AnalyticsStudentRow shows a student with their attendance band.
type AnalyticsStudentRow struct {
	Student models.Student `json:"student"`
	Status  string         `json:"status"`
	Tier    string         `json:"tier"`
}

// AnalyticsReport is the full analytics payload for a batch selection.
type AnalyticsReport struct {
	Batch                  string                `json:"batch"`
	Metrics                AnalyticsMetrics      `json:"metrics"`
	AttendanceDistribution query.Distribution    `json:"attendance_distribution"`
	CGPADistribution       query.Distribution    `json:"cgpa_distribution"`
	Batches                []BatchStat           `json:"batches"`
	Students               []AnalyticsStudentRow `json:"students"`
}

// AnalyticsExport is the downloadable JSON report.
type AnalyticsExport struct {
	Timestamp time.Time `json:"timestamp"`
	AnalyticsReport
}
