package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

// StudentRepository persists the student roster in PostgreSQL.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentRow struct {
	models.Student
	Position int `db:"position"`
}

// List returns every student in roster order.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, name, roll_number, batch, email, phone, branch, semester, section, fathers_name, attendance, cgpa
        FROM students ORDER BY position`
	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Replace rewrites the whole roster.
func (r *StudentRepository) Replace(ctx context.Context, students []models.Student) error {
	const insert = `INSERT INTO students (id, position, name, roll_number, batch, email, phone, branch, semester, section, fathers_name, attendance, cgpa)
        VALUES (:id, :position, :name, :roll_number, :batch, :email, :phone, :branch, :semester, :section, :fathers_name, :attendance, :cgpa)`
	rows := make([]interface{}, len(students))
	for i, s := range students {
		rows[i] = studentRow{Student: s, Position: i}
	}
	return replaceTable(ctx, r.db, "students", insert, rows)
}
