package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/middleware"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/internal/query"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]dto.AttendanceRow, *models.Pagination, error)
	Detail(ctx context.Context, studentID string) (*dto.AttendanceDetail, error)
	Roster(ctx context.Context, batch, search string) (*dto.AttendanceRoster, error)
	Mark(ctx context.Context, sheet models.AttendanceSheet) (*dto.MarkAttendanceResult, error)
	Distribution(ctx context.Context, batch string) (query.Distribution, error)
}

type attendanceExporter interface {
	Attendance(ctx context.Context, filter models.AttendanceFilter, format export.Format) (*export.File, error)
}

// AttendanceHandler exposes attendance overview and marking endpoints.
type AttendanceHandler struct {
	attendance attendanceService
	exports    attendanceExporter
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService, exports attendanceExporter) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, exports: exports}
}

func attendanceFilterFrom(c *gin.Context) models.AttendanceFilter {
	page, size := pageParams(c)
	return models.AttendanceFilter{
		Search:   queryParam(c, "search"),
		Batch:    queryParam(c, "batch"),
		Band:     queryParam(c, "band"),
		Page:     page,
		PageSize: size,
	}
}

// List godoc
// @Summary Attendance overview
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name, roll number or email"
// @Param batch query string false "Batch or All"
// @Param band query string false "Good, Low, At Risk or All"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter := attendanceFilterFrom(c)
	rows, pagination, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetFilters(c, map[string]string{"search": filter.Search, "batch": filter.Batch, "band": filter.Band})
	respondWithMeta(c, rows, pagination)
}

// Detail godoc
// @Summary Attendance history of a student
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /attendance/{studentId} [get]
func (h *AttendanceHandler) Detail(c *gin.Context) {
	detail, err := h.attendance.Detail(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Distribution godoc
// @Summary Attendance band distribution
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param batch query string false "Batch or All"
// @Success 200 {object} response.Envelope
// @Router /attendance/distribution [get]
func (h *AttendanceHandler) Distribution(c *gin.Context) {
	dist, err := h.attendance.Distribution(c.Request.Context(), queryParam(c, "batch"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dist, nil)
}

// Roster godoc
// @Summary Students and subjects of a batch for taking attendance
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param batch query string true "Batch"
// @Param search query string false "Search by name or roll number"
// @Success 200 {object} response.Envelope
// @Router /attendance/roster [get]
func (h *AttendanceHandler) Roster(c *gin.Context) {
	roster, err := h.attendance.Roster(c.Request.Context(), queryParam(c, "batch"), queryParam(c, "search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// Mark godoc
// @Summary Submit an attendance sheet
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body models.AttendanceSheet true "Attendance sheet"
// @Success 201 {object} response.Envelope
// @Router /attendance/mark [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var sheet models.AttendanceSheet
	if !bindJSON(c, &sheet) {
		return
	}
	result, err := h.attendance.Mark(c.Request.Context(), sheet)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Export godoc
// @Summary Download the attendance overview
// @Tags Attendance
// @Security BearerAuth
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param search query string false "Search"
// @Param batch query string false "Batch"
// @Param band query string false "Attendance band"
// @Success 200 {file} file
// @Router /attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"), export.FormatCSV)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export format"))
		return
	}
	file, err := h.exports.Attendance(c.Request.Context(), attendanceFilterFrom(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
