package dto

import (
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
)

// DashboardSummary captures the faculty home screen.
type DashboardSummary struct {
	TotalStudents          int                `json:"total_students"`
	PendingReviews         int                `json:"pending_reviews"`
	AverageAttendance      int                `json:"average_attendance"`
	NewNotices             int                `json:"new_notices"`
	AtRiskStudents         int                `json:"at_risk_students"`
	AttendanceDistribution query.Distribution `json:"attendance_distribution"`
	Batches                []BatchStat        `json:"batches"`
	TodayClasses           []models.TimeSlot  `json:"today_classes"`
	Today                  string             `json:"today"`
}

// BatchStat aggregates one batch.
type BatchStat struct {
	Batch             string  `json:"batch"`
	Students          int     `json:"students"`
	AverageAttendance int     `json:"average_attendance"`
	AverageCGPA       float64 `json:"average_cgpa"`
	AtRisk            int     `json:"at_risk"`
}
