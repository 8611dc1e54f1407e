package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

// NoticeRepository persists notices in PostgreSQL.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository constructs a NoticeRepository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

type noticeRow struct {
	models.Notice
	Position int `db:"position"`
}

// List returns notices in board order.
func (r *NoticeRepository) List(ctx context.Context) ([]models.Notice, error) {
	const query = `SELECT id, title, content, priority, category, date FROM notices ORDER BY position`
	notices := make([]models.Notice, 0)
	if err := r.db.SelectContext(ctx, &notices, query); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// Replace rewrites the notice board.
func (r *NoticeRepository) Replace(ctx context.Context, notices []models.Notice) error {
	const insert = `INSERT INTO notices (id, position, title, content, priority, category, date)
        VALUES (:id, :position, :title, :content, :priority, :category, :date)`
	rows := make([]interface{}, len(notices))
	for i, n := range notices {
		rows[i] = noticeRow{Notice: n, Position: i}
	}
	return replaceTable(ctx, r.db, "notices", insert, rows)
}
