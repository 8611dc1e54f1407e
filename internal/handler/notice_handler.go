package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/middleware"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

type noticeService interface {
	List(ctx context.Context, email string, filter models.NoticeFilter) ([]models.Notice, *models.Pagination, error)
}

type unseenCounter interface {
	UnseenNotices(ctx context.Context, email string) (int, error)
}

// NoticeHandler exposes the notice board.
type NoticeHandler struct {
	notices noticeService
	unseen  unseenCounter
}

// NewNoticeHandler constructs NoticeHandler.
func NewNoticeHandler(notices noticeService, unseen unseenCounter) *NoticeHandler {
	return &NoticeHandler{notices: notices, unseen: unseen}
}

// List godoc
// @Summary List notices and mark them as seen
// @Tags Notices
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by title, content or category"
// @Param category query string false "academic, administrative, events or All"
// @Param priority query string false "urgent, important, normal or All"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /notices [get]
func (h *NoticeHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	filter := models.NoticeFilter{
		Search:   queryParam(c, "search"),
		Category: queryParam(c, "category"),
		Priority: queryParam(c, "priority"),
		Page:     page,
		PageSize: size,
	}
	notices, pagination, err := h.notices.List(c.Request.Context(), facultyEmail(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetFilters(c, map[string]string{"search": filter.Search, "category": filter.Category, "priority": filter.Priority})
	respondWithMeta(c, notices, pagination)
}

// Unseen godoc
// @Summary Unseen notices badge count
// @Tags Notices
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notices/unseen [get]
func (h *NoticeHandler) Unseen(c *gin.Context) {
	count, err := h.unseen.UnseenNotices(c.Request.Context(), facultyEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"unseen": count}, nil)
}
