package repository

import "github.com/noah-isme/faculty-dashboard-api/internal/models"

// SeedStudents is the sample roster served before the first write.
func SeedStudents() []models.Student {
	return []models.Student{
		{ID: "1", Name: "Arjun Sharma", RollNumber: "CS001", Batch: "CS-A", Email: "arjun.sharma@college.edu", Phone: "+91-9876543210", Attendance: 92, CGPA: 8.5},
		{ID: "2", Name: "Priya Verma", RollNumber: "CS002", Batch: "CS-A", Email: "priya.verma@college.edu", Phone: "+91-9876543211", Attendance: 88, CGPA: 8.2},
		{ID: "3", Name: "Rahul Singh", RollNumber: "CS003", Batch: "CS-B", Email: "rahul.singh@college.edu", Phone: "+91-9876543212", Attendance: 65, CGPA: 7.1},
		{ID: "4", Name: "Neha Gupta", RollNumber: "CS004", Batch: "CS-B", Email: "neha.gupta@college.edu", Phone: "+91-9876543213", Attendance: 78, CGPA: 7.8},
		{ID: "5", Name: "Amit Patel", RollNumber: "CS005", Batch: "CS-C", Email: "amit.patel@college.edu", Phone: "+91-9876543214", Attendance: 55, CGPA: 6.5},
	}
}

// SeedNotices is the sample notice board.
func SeedNotices() []models.Notice {
	return []models.Notice{
		{ID: "1", Title: "Semester Exam Dates Announced", Content: "The semester examination schedule has been released. Please check the notice board for detailed dates.", Priority: models.NoticePriorityUrgent, Category: models.NoticeCategoryAcademic, Date: "2024-11-05"},
		{ID: "2", Title: "Assignment Submission Deadline Extended", Content: "The deadline for Data Structures assignment has been extended to November 10, 2024.", Priority: models.NoticePriorityImportant, Category: models.NoticeCategoryAcademic, Date: "2024-11-04"},
		{ID: "3", Title: "Department Meeting on Friday", Content: "There will be a department meeting on Friday at 2:00 PM in Conference Room A.", Priority: models.NoticePriorityImportant, Category: models.NoticeCategoryAdministrative, Date: "2024-11-03"},
		{ID: "4", Title: "Tech Symposium Registration Open", Content: "Annual tech symposium registration is now open. Students can register through the portal.", Priority: models.NoticePriorityNormal, Category: models.NoticeCategoryEvents, Date: "2024-11-02"},
		{ID: "5", Title: "Library Closure Notice", Content: "The library will be closed on November 8-9 for maintenance.", Priority: models.NoticePriorityNormal, Category: models.NoticeCategoryAdministrative, Date: "2024-11-01"},
	}
}

// SeedTimetable is the sample weekly timetable.
func SeedTimetable() []models.TimeSlot {
	return []models.TimeSlot{
		{ID: "1", Day: "Monday", Time: "09:00 - 10:00", Subject: "Data Structures", Batch: "CS-A", Room: "A101"},
		{ID: "2", Day: "Monday", Time: "10:00 - 11:00", Subject: "Web Development", Batch: "CS-B", Room: "B201"},
		{ID: "3", Day: "Monday", Time: "11:00 - 12:00", Subject: "Database Management", Batch: "CS-C", Room: "C301"},
		{ID: "4", Day: "Monday", Time: "14:00 - 15:00", Subject: "Data Structures Lab", Batch: "CS-A", Room: "Lab1"},
		{ID: "5", Day: "Tuesday", Time: "09:00 - 10:00", Subject: "Algorithms", Batch: "CS-B", Room: "B202"},
		{ID: "6", Day: "Tuesday", Time: "10:00 - 11:00", Subject: "Web Development", Batch: "CS-A", Room: "A102"},
		{ID: "7", Day: "Tuesday", Time: "11:00 - 12:00", Subject: "Operating Systems", Batch: "CS-C", Room: "C302"},
		{ID: "8", Day: "Tuesday", Time: "14:00 - 15:00", Subject: "Algorithms Lab", Batch: "CS-B", Room: "Lab2"},
		{ID: "9", Day: "Wednesday", Time: "09:00 - 10:00", Subject: "Database Management", Batch: "CS-A", Room: "A103"},
		{ID: "10", Day: "Wednesday", Time: "10:00 - 11:00", Subject: "Operating Systems", Batch: "CS-B", Room: "B203"},
		{ID: "11", Day: "Wednesday", Time: "11:00 - 12:00", Subject: "Web Development", Batch: "CS-C", Room: "C303"},
		{ID: "12", Day: "Wednesday", Time: "14:00 - 15:00", Subject: "Web Lab", Batch: "CS-C", Room: "Lab3"},
		{ID: "13", Day: "Thursday", Time: "09:00 - 10:00", Subject: "Data Structures", Batch: "CS-B", Room: "B204"},
		{ID: "14", Day: "Thursday", Time: "10:00 - 11:00", Subject: "Algorithms", Batch: "CS-C", Room: "C304"},
		{ID: "15", Day: "Thursday", Time: "11:00 - 12:00", Subject: "Database Management", Batch: "CS-B", Room: "B204"},
		{ID: "16", Day: "Thursday", Time: "14:00 - 15:00", Subject: "Database Lab", Batch: "CS-A", Room: "Lab1"},
		{ID: "17", Day: "Friday", Time: "09:00 - 10:00", Subject: "Web Development", Batch: "CS-A", Room: "A104"},
		{ID: "18", Day: "Friday", Time: "10:00 - 11:00", Subject: "Operating Systems", Batch: "CS-A", Room: "A104"},
		{ID: "19", Day: "Friday", Time: "11:00 - 12:00", Subject: "Algorithms", Batch: "CS-A", Room: "A104"},
	}
}

// SeedAssignments is the sample coursework; all are published.
func SeedAssignments() []models.Assignment {
	return []models.Assignment{
		{ID: "1", Title: "Data Structures Implementation", Subject: "Data Structures", Batch: "CS-A", DueDate: "2024-11-10", TotalMarks: 100, Submitted: 22, Pending: 3, Overdue: 0, TotalStudents: 25, Lifecycle: models.Published{}},
		{ID: "2", Title: "Web Application Project", Subject: "Web Development", Batch: "CS-B", DueDate: "2024-11-15", TotalMarks: 150, Submitted: 18, Pending: 5, Overdue: 2, TotalStudents: 25, Lifecycle: models.Published{}},
		{ID: "3", Title: "Database Design Case Study", Subject: "Database Management", Batch: "CS-C", DueDate: "2024-11-12", TotalMarks: 80, Submitted: 24, Pending: 1, Overdue: 0, TotalStudents: 25, Lifecycle: models.Published{}},
	}
}
