package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

// TimetableRepository persists weekly time slots in PostgreSQL.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

type timeSlotRow struct {
	models.TimeSlot
	Position int `db:"position"`
}

// List returns every slot in timetable order.
func (r *TimetableRepository) List(ctx context.Context) ([]models.TimeSlot, error) {
	const query = `SELECT id, day, time_range, subject, batch, room FROM timetable ORDER BY position`
	slots := make([]models.TimeSlot, 0)
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	return slots, nil
}

// Replace rewrites the timetable.
func (r *TimetableRepository) Replace(ctx context.Context, slots []models.TimeSlot) error {
	const insert = `INSERT INTO timetable (id, position, day, time_range, subject, batch, room)
        VALUES (:id, :position, :day, :time_range, :subject, :batch, :room)`
	rows := make([]interface{}, len(slots))
	for i, s := range slots {
		rows[i] = timeSlotRow{TimeSlot: s, Position: i}
	}
	return replaceTable(ctx, r.db, "timetable", insert, rows)
}
