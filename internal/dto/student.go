package dto

// CreateStudentRequest captures the add-student form.
type CreateStudentRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=120"`
	RollNumber  string   `json:"roll_number" validate:"required,max=32"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,min=7,max=20"`
	Batch       string   `json:"batch" validate:"omitempty,max=32"`
	Branch      string   `json:"branch" validate:"omitempty,max=80"`
	Semester    string   `json:"semester" validate:"omitempty,max=16"`
	Section     string   `json:"section" validate:"omitempty,max=8"`
	FathersName string   `json:"fathers_name" validate:"omitempty,max=120"`
	Attendance  *int     `json:"attendance" validate:"omitempty,min=0,max=100"`
	CGPA        *float64 `json:"cgpa" validate:"omitempty,min=0,max=10"`
}

// UpdateStudentRequest carries partial student changes.
type UpdateStudentRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=120"`
	RollNumber  *string  `json:"roll_number" validate:"omitempty,min=1,max=32"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone" validate:"omitempty,min=7,max=20"`
	Batch       *string  `json:"batch" validate:"omitempty,min=1,max=32"`
	Branch      *string  `json:"branch" validate:"omitempty,max=80"`
	Semester    *string  `json:"semester" validate:"omitempty,max=16"`
	Section     *string  `json:"section" validate:"omitempty,max=8"`
	FathersName *string  `json:"fathers_name" validate:"omitempty,max=120"`
	Attendance  *int     `json:"attendance" validate:"omitempty,min=0,max=100"`
	CGPA        *float64 `json:"cgpa" validate:"omitempty,min=0,max=10"`
}
