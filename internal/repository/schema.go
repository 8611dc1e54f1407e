package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema creates the record tables used when STORE_DRIVER=postgres.
const Schema = `
CREATE TABLE IF NOT EXISTS students (
    id TEXT PRIMARY KEY,
    position INT NOT NULL,
    name TEXT NOT NULL,
    roll_number TEXT NOT NULL,
    batch TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    branch TEXT NOT NULL DEFAULT '',
    semester TEXT NOT NULL DEFAULT '',
    section TEXT NOT NULL DEFAULT '',
    fathers_name TEXT NOT NULL DEFAULT '',
    attendance INT NOT NULL,
    cgpa DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS notices (
    id TEXT PRIMARY KEY,
    position INT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    priority TEXT NOT NULL,
    category TEXT NOT NULL,
    date TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS timetable (
    id TEXT PRIMARY KEY,
    position INT NOT NULL,
    day TEXT NOT NULL,
    time_range TEXT NOT NULL,
    subject TEXT NOT NULL,
    batch TEXT NOT NULL,
    room TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assignments (
    id TEXT PRIMARY KEY,
    position INT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    subject TEXT NOT NULL,
    batch TEXT NOT NULL,
    due_date TEXT NOT NULL,
    total_marks INT NOT NULL,
    submitted INT NOT NULL,
    pending INT NOT NULL,
    overdue INT NOT NULL,
    total_students INT NOT NULL,
    status TEXT NOT NULL,
    lifecycle_at TIMESTAMPTZ NULL
);`

// EnsureSchema applies Schema.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// replaceTable swaps the content of table for rows inside one transaction.
func replaceTable(ctx context.Context, db *sqlx.DB, table, insert string, rows []interface{}) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for _, row := range rows {
		if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}

// collection is the List/Replace contract shared by record stores and SQL repositories.
type collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Replace(ctx context.Context, items []T) error
}

// SeedIfEmpty writes seed into store when it currently holds no records.
func SeedIfEmpty[T any](ctx context.Context, store collection[T], seed []T) error {
	items, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	return store.Replace(ctx, seed)
}
