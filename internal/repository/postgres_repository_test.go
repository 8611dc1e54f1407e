package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "roll_number", "batch", "email", "phone", "branch", "semester", "section", "fathers_name", "attendance", "cgpa"}).
		AddRow("1", "Arjun Sharma", "CS001", "CS-A", "arjun.sharma@college.edu", "+91-9876543210", "", "", "", "", 92, 8.5)
	mock.ExpectQuery("SELECT id, name, roll_number, .* FROM students ORDER BY position").WillReturnRows(rows)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "CS001", students[0].RollNumber)
	assert.Equal(t, 92, students[0].Attendance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryReplace(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM students").WillReturnResult(sqlmock.NewResult(0, 5))
	for i := 0; i < 2; i++ {
		mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	err := repo.Replace(context.Background(), SeedStudents()[:2])
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryReplaceRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM students").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("INSERT INTO students").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), SeedStudents()[:1])
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoticeAndTimetableRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, title, content, priority, category, date FROM notices ORDER BY position").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "priority", "category", "date"}).
			AddRow("1", "Exams", "Dates", "urgent", "academic", "2024-11-05"))
	mock.ExpectQuery("SELECT id, day, time_range, subject, batch, room FROM timetable ORDER BY position").
		WillReturnRows(sqlmock.NewRows([]string{"id", "day", "time_range", "subject", "batch", "room"}).
			AddRow("1", "Monday", "09:00 - 10:00", "Data Structures", "CS-A", "A101"))

	notices, err := NewNoticeRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.True(t, notices[0].Highlighted())

	slots, err := NewTimetableRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00 - 10:00", slots[0].Time)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryMapsLifecycle(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)
	on := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)

	cols := []string{"id", "position", "title", "description", "subject", "batch", "due_date", "total_marks", "submitted", "pending", "overdue", "total_students", "status", "lifecycle_at"}
	mock.ExpectQuery("SELECT id, position, title, .* FROM assignments ORDER BY position").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("1", 0, "DS", "", "Data Structures", "CS-A", "2024-11-10", 100, 22, 3, 0, 25, "published", nil).
			AddRow("2", 1, "Later", "", "Algorithms", "CS-B", "2030-02-01", 50, 0, 2, 0, 2, "scheduled", on).
			AddRow("3", 2, "Wip", "", "Algorithms", "CS-B", "2030-02-01", 50, 0, 2, 0, 2, "draft", nil))

	assignments, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 3)
	assert.Equal(t, models.Published{}, assignments[0].Lifecycle)
	assert.Equal(t, models.Scheduled{On: on}, assignments[1].Lifecycle)
	assert.Equal(t, models.Draft{}, assignments[2].Lifecycle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryRejectsUnknownStatus(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	cols := []string{"id", "position", "title", "description", "subject", "batch", "due_date", "total_marks", "submitted", "pending", "overdue", "total_students", "status", "lifecycle_at"}
	mock.ExpectQuery("FROM assignments").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("1", 0, "DS", "", "DS", "CS-A", "2024-11-10", 100, 0, 0, 0, 0, "archived", nil))

	_, err := NewAssignmentRepository(db).List(context.Background())
	assert.Error(t, err)
}

func TestAssignmentRowFlattensLifecycle(t *testing.T) {
	on := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
	row := toAssignmentRow(models.Assignment{ID: "1", Lifecycle: models.Scheduled{On: on}}, 3)
	assert.Equal(t, "scheduled", row.Status)
	require.NotNil(t, row.LifecycleAt)
	assert.True(t, row.LifecycleAt.Equal(on))
	assert.Equal(t, 3, row.Position)

	draft := toAssignmentRow(models.Assignment{ID: "2", Lifecycle: models.Draft{}}, 0)
	assert.Equal(t, "draft", draft.Status)
	assert.Nil(t, draft.LifecycleAt)
}
