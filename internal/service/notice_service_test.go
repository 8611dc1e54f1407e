package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
)

type recordingResetter struct {
	emails []string
}

func (r *recordingResetter) ResetUnseen(ctx context.Context, email string) error {
	r.emails = append(r.emails, email)
	return nil
}

func sampleNotices() []models.Notice {
	return []models.Notice{
		{ID: "1", Title: "Semester Exam Dates Announced", Content: "The semester examination schedule has been released.", Priority: models.NoticePriorityUrgent, Category: models.NoticeCategoryAcademic},
		{ID: "2", Title: "Assignment Submission Deadline Extended", Content: "Data Structures deadline moved.", Priority: models.NoticePriorityImportant, Category: models.NoticeCategoryAcademic},
		{ID: "3", Title: "Department Meeting on Friday", Content: "Conference Room A at 2:00 PM.", Priority: models.NoticePriorityImportant, Category: models.NoticeCategoryAdministrative},
		{ID: "4", Title: "Tech Symposium Registration Open", Content: "Register through the portal.", Priority: models.NoticePriorityNormal, Category: models.NoticeCategoryEvents},
		{ID: "5", Title: "Library Closure Notice", Content: "Closed on November 8-9 for maintenance.", Priority: models.NoticePriorityNormal, Category: models.NoticeCategoryAdministrative},
	}
}

func TestNoticeServiceListFilters(t *testing.T) {
	resetter := &recordingResetter{}
	svc := NewNoticeService(&fakeNoticeStore{notices: sampleNotices()}, resetter, zap.NewNop(), 10)

	items, pagination, err := svc.List(context.Background(), "faculty@university.edu", models.NoticeFilter{Category: "administrative", Priority: "All"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, pagination.TotalCount)
	assert.Equal(t, []string{"faculty@university.edu"}, resetter.emails)

	items, _, err = svc.List(context.Background(), "", models.NoticeFilter{Search: "events portal"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "4", items[0].ID)
	assert.Len(t, resetter.emails, 1)

	items, _, err = svc.List(context.Background(), "", models.NoticeFilter{Priority: "important", Search: "friday"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].ID)
}

func TestNoticeServiceHighlights(t *testing.T) {
	svc := NewNoticeService(&fakeNoticeStore{notices: sampleNotices()}, nil, nil, 0)

	count, err := svc.Highlights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	empty := NewNoticeService(&fakeNoticeStore{}, nil, nil, 0)
	count, err = empty.Highlights(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
