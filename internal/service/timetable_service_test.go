package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

func newTestTimetableService(now time.Time) *TimetableService {
	svc := NewTimetableService(&fakeTimetableStore{slots: []models.TimeSlot{
		{ID: "1", Day: "Monday", Time: "09:00 - 10:00", Subject: "Data Structures", Batch: "CS-A"},
		{ID: "2", Day: "Monday", Time: "10:00 - 11:00", Subject: "Web Development", Batch: "CS-B"},
		{ID: "3", Day: "Wednesday", Time: "09:00 - 10:00", Subject: "Database Management", Batch: "CS-A"},
		{ID: "4", Day: "Friday", Time: "11:00 - 12:00", Subject: "Algorithms", Batch: "CS-A"},
		{ID: "5", Day: "Friday", Time: "09:00 - 10:00", Subject: "Data Structures", Batch: "CS-A"},
	}})
	svc.clock = fixedClock(now)
	return svc
}

func TestTimetableServiceWeek(t *testing.T) {
	svc := newTestTimetableService(time.Now())

	week, err := svc.Week(context.Background(), "CS-A")
	require.NoError(t, err)
	require.Len(t, week, 5)
	assert.Equal(t, "Monday", week[0].Day)
	assert.Len(t, week[0].Slots, 1)
	assert.Empty(t, week[1].Slots)
	assert.Equal(t, "Friday", week[4].Day)
	assert.Equal(t, "4", week[4].Slots[0].ID)
}

func TestTimetableServiceDay(t *testing.T) {
	svc := newTestTimetableService(time.Now())

	day, err := svc.Day(context.Background(), "monday", "")
	require.NoError(t, err)
	assert.Equal(t, "Monday", day.Day)
	assert.Len(t, day.Slots, 2)

	_, err = svc.Day(context.Background(), "Sunday", "")
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestTimetableServiceTodayAndUpcoming(t *testing.T) {
	wednesday := time.Date(2024, time.November, 6, 8, 0, 0, 0, time.UTC)
	svc := newTestTimetableService(wednesday)

	today, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", today.Day)
	require.Len(t, today.Slots, 1)

	upcoming, err := svc.Upcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Thursday", upcoming[0].Day)
	assert.Equal(t, "Friday", upcoming[1].Day)

	saturday := newTestTimetableService(time.Date(2024, time.November, 9, 8, 0, 0, 0, time.UTC))
	today, err = saturday.Today(context.Background())
	require.NoError(t, err)
	assert.Empty(t, today.Slots)
	upcoming, err = saturday.Upcoming(context.Background())
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestTimetableServiceSubjects(t *testing.T) {
	svc := newTestTimetableService(time.Now())

	subjects, err := svc.Subjects(context.Background(), "CS-A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Data Structures", "Database Management", "Algorithms"}, subjects)
}
