package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/middleware"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, req dto.UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

type studentExporter interface {
	Students(ctx context.Context, filter models.StudentFilter) (*export.File, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
	exports  studentExporter
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, exports studentExporter) *StudentHandler {
	return &StudentHandler{students: students, exports: exports}
}

func studentFilterFrom(c *gin.Context) models.StudentFilter {
	page, size := pageParams(c)
	return models.StudentFilter{
		Search:     queryParam(c, "search"),
		Batch:      queryParam(c, "batch"),
		Attendance: queryParam(c, "attendance"),
		Page:       page,
		PageSize:   size,
	}
}

// List godoc
// @Summary List students
// @Tags Students
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name, roll number or email"
// @Param batch query string false "Batch or All"
// @Param attendance query string false "Good, Low, At Risk or All"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := studentFilterFrom(c)
	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetFilters(c, map[string]string{"search": filter.Search, "batch": filter.Batch, "attendance": filter.Attendance})
	respondWithMeta(c, students, pagination)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Security BearerAuth
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Add a student
// @Tags Students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update a student
// @Tags Students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Changed fields"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Remove a student
// @Tags Students
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Download the filtered roster as CSV
// @Tags Students
// @Security BearerAuth
// @Produce text/csv
// @Param search query string false "Search"
// @Param batch query string false "Batch"
// @Param attendance query string false "Attendance band"
// @Success 200 {file} file
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	file, err := h.exports.Students(c.Request.Context(), studentFilterFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
