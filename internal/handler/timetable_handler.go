package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/service"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

type timetableService interface {
	Week(ctx context.Context, batch string) ([]service.DaySchedule, error)
	Day(ctx context.Context, day, batch string) (*service.DaySchedule, error)
	Today(ctx context.Context) (*service.DaySchedule, error)
	Upcoming(ctx context.Context) ([]service.DaySchedule, error)
	Subjects(ctx context.Context, batch string) ([]string, error)
}

// TimetableHandler exposes the weekly schedule.
type TimetableHandler struct {
	timetable timetableService
}

// NewTimetableHandler constructs TimetableHandler.
func NewTimetableHandler(timetable timetableService) *TimetableHandler {
	return &TimetableHandler{timetable: timetable}
}

// Week godoc
// @Summary Weekly timetable, or a single weekday when day is set
// @Tags Timetable
// @Security BearerAuth
// @Produce json
// @Param batch query string false "Batch or All"
// @Param day query string false "Weekday"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Week(c *gin.Context) {
	batch := queryParam(c, "batch")
	if day := queryParam(c, "day"); day != "" {
		schedule, err := h.timetable.Day(c.Request.Context(), day, batch)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, schedule, nil)
		return
	}
	week, err := h.timetable.Week(c.Request.Context(), batch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, week, nil)
}

// Today godoc
// @Summary Today's classes and the rest of the week
// @Tags Timetable
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/today [get]
func (h *TimetableHandler) Today(c *gin.Context) {
	today, err := h.timetable.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	upcoming, err := h.timetable.Upcoming(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"today": today, "upcoming": upcoming}, nil)
}

// Subjects godoc
// @Summary Subjects taught to a batch
// @Tags Timetable
// @Security BearerAuth
// @Produce json
// @Param batch query string false "Batch or All"
// @Success 200 {object} response.Envelope
// @Router /timetable/subjects [get]
func (h *TimetableHandler) Subjects(c *gin.Context) {
	subjects, err := h.timetable.Subjects(c.Request.Context(), queryParam(c, "batch"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}
