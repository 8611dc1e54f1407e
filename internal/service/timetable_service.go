package service

import (
	"context"
	"strings"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

// DaySchedule is one weekday of the timetable.
type DaySchedule struct {
	Day   string            `json:"day"`
	Slots []models.TimeSlot `json:"slots"`
}

// TimetableService answers weekly schedule questions.
type TimetableService struct {
	repo  timetableStore
	clock clock
}

// NewTimetableService constructs the timetable service.
func NewTimetableService(repo timetableStore) *TimetableService {
	return &TimetableService{repo: repo}
}

// Week returns Monday to Friday, each with its slots in timetable order.
func (s *TimetableService) Week(ctx context.Context, batch string) ([]DaySchedule, error) {
	slots, err := s.load(ctx, batch)
	if err != nil {
		return nil, err
	}
	week := make([]DaySchedule, len(models.Weekdays))
	for i, day := range models.Weekdays {
		week[i] = DaySchedule{Day: day, Slots: slotsOn(slots, day)}
	}
	return week, nil
}

// Day returns the slots of a weekday.
func (s *TimetableService) Day(ctx context.Context, day, batch string) (*DaySchedule, error) {
	idx := weekdayIndexFold(day)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown weekday "+day)
	}
	slots, err := s.load(ctx, batch)
	if err != nil {
		return nil, err
	}
	name := models.Weekdays[idx]
	return &DaySchedule{Day: name, Slots: slotsOn(slots, name)}, nil
}

// Today returns the current weekday's classes; weekends have none.
func (s *TimetableService) Today(ctx context.Context) (*DaySchedule, error) {
	today := s.clock.now().Weekday().String()
	slots, err := s.load(ctx, "")
	if err != nil {
		return nil, err
	}
	return &DaySchedule{Day: today, Slots: slotsOn(slots, today)}, nil
}

// Upcoming returns the remaining weekdays of the current week.
func (s *TimetableService) Upcoming(ctx context.Context) ([]DaySchedule, error) {
	slots, err := s.load(ctx, "")
	if err != nil {
		return nil, err
	}
	from := models.WeekdayIndex(s.clock.now().Weekday().String()) + 1
	if from <= 0 {
		return []DaySchedule{}, nil
	}
	out := make([]DaySchedule, 0, len(models.Weekdays)-from)
	for _, day := range models.Weekdays[from:] {
		out = append(out, DaySchedule{Day: day, Slots: slotsOn(slots, day)})
	}
	return out, nil
}

// Subjects lists the subjects taught to batch in timetable order.
func (s *TimetableService) Subjects(ctx context.Context, batch string) ([]string, error) {
	slots, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load timetable")
	}
	return subjectsOf(slots, batch), nil
}

func (s *TimetableService) load(ctx context.Context, batch string) ([]models.TimeSlot, error) {
	slots, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load timetable")
	}
	return query.Filter(slots, func(slot models.TimeSlot) bool { return query.MatchesSelection(batch, slot.Batch) }), nil
}

func slotsOn(slots []models.TimeSlot, day string) []models.TimeSlot {
	return query.Filter(slots, func(slot models.TimeSlot) bool { return slot.Day == day })
}

func weekdayIndexFold(day string) int {
	for i, d := range models.Weekdays {
		if strings.EqualFold(d, strings.TrimSpace(day)) {
			return i
		}
	}
	return -1
}
