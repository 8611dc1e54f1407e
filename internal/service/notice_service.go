package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
)

type unseenResetter interface {
	ResetUnseen(ctx context.Context, email string) error
}

// NoticeService serves the read-only notice board.
type NoticeService struct {
	repo     noticeStore
	sessions unseenResetter
	logger   *zap.Logger
	pageSize int
}

// NewNoticeService constructs the notice service.
func NewNoticeService(repo noticeStore, sessions unseenResetter, logger *zap.Logger, pageSize int) *NoticeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &NoticeService{repo: repo, sessions: sessions, logger: logger, pageSize: pageSize}
}

// List returns a page of notices and marks the board as seen for email.
func (s *NoticeService) List(ctx context.Context, email string, filter models.NoticeFilter) ([]models.Notice, *models.Pagination, error) {
	notices, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, internalError(err, "failed to list notices")
	}
	matched := query.Filter(notices, query.And[models.Notice](
		func(n models.Notice) bool { return query.MatchesSelection(filter.Category, string(n.Category)) },
		func(n models.Notice) bool { return query.MatchesSelection(filter.Priority, string(n.Priority)) },
		func(n models.Notice) bool { return query.Match(filter.Search, n.Title, n.Content, string(n.Category)) },
	))

	if s.sessions != nil && email != "" {
		if err := s.sessions.ResetUnseen(ctx, email); err != nil {
			s.logger.Warn("reset unseen notices failed", zap.String("email", email), zap.Error(err))
		}
	}

	items, pagination := pageOf(matched, filter.Page, filter.PageSize, s.pageSize)
	return items, pagination, nil
}

// Count returns the number of notices on the board.
func (s *NoticeService) Count(ctx context.Context) (int, error) {
	notices, err := s.repo.List(ctx)
	if err != nil {
		return 0, internalError(err, "failed to list notices")
	}
	return len(notices), nil
}

// Highlights counts urgent and important notices.
func (s *NoticeService) Highlights(ctx context.Context) (int, error) {
	notices, err := s.repo.List(ctx)
	if err != nil {
		return 0, internalError(err, "failed to list notices")
	}
	return query.Count(notices, models.Notice.Highlighted), nil
}
