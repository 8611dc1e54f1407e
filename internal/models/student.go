package models

// Student represents a learner on the faculty roster.
type Student struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	RollNumber  string  `db:"roll_number" json:"roll_number"`
	Batch       string  `db:"batch" json:"batch"`
	Email       string  `db:"email" json:"email"`
	Phone       string  `db:"phone" json:"phone"`
	Branch      string  `db:"branch" json:"branch,omitempty"`
	Semester    string  `db:"semester" json:"semester,omitempty"`
	Section     string  `db:"section" json:"section,omitempty"`
	FathersName string  `db:"fathers_name" json:"fathers_name,omitempty"`
	Attendance  int     `db:"attendance" json:"attendance"`
	CGPA        float64 `db:"cgpa" json:"cgpa"`
}

// StudentFilter encapsulates the list view controls for students.
type StudentFilter struct {
	Search     string
	Batch      string
	Attendance string
	Page       int
	PageSize   int
}
