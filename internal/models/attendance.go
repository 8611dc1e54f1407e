package models

// AttendanceStatus represents the outcome of a class day for one student.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

// AttendanceEntry is a single class day.
type AttendanceEntry struct {
	Date   string           `json:"date"`
	Status AttendanceStatus `json:"status"`
}

// AttendanceRecord holds the class-day history of a student.
type AttendanceRecord struct {
	StudentID string            `json:"student_id"`
	Entries   []AttendanceEntry `json:"entries"`
}

// AttendanceSummary counts present and absent days.
type AttendanceSummary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Summarise counts present and absent entries.
func Summarise(entries []AttendanceEntry) AttendanceSummary {
	var s AttendanceSummary
	for _, e := range entries {
		if e.Status == AttendanceStatusPresent {
			s.Present++
		} else {
			s.Absent++
		}
	}
	s.Total = len(entries)
	if s.Total > 0 {
		s.Percent = (s.Present*100 + s.Total/2) / s.Total
	}
	return s
}

// AttendanceSheet is a take-attendance submission for one batch and subject.
type AttendanceSheet struct {
	Date    string          `json:"date" validate:"required,datetime=2006-01-02"`
	Batch   string          `json:"batch" validate:"required"`
	Subject string          `json:"subject" validate:"required"`
	Marks   map[string]bool `json:"marks" validate:"required"`
	Notes   string          `json:"notes,omitempty" validate:"max=500"`
}

// AttendanceFilter scopes the attendance overview.
type AttendanceFilter struct {
	Search   string
	Batch    string
	Band     string
	Page     int
	PageSize int
}
