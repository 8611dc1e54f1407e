package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/middleware"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

type assignmentService interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]dto.AssignmentRow, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Assignment, error)
	Create(ctx context.Context, req dto.CreateAssignmentRequest) (*models.Assignment, error)
	Delete(ctx context.Context, id string) error
	Submissions(ctx context.Context, id, tab string) (*dto.SubmissionsResponse, error)
	Grade(ctx context.Context, assignmentID, studentID string, req dto.GradeRequest) (*models.Submission, error)
}

// AssignmentHandler exposes coursework and grading endpoints.
type AssignmentHandler struct {
	assignments assignmentService
}

// NewAssignmentHandler constructs AssignmentHandler.
func NewAssignmentHandler(assignments assignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List godoc
// @Summary List assignments with submission progress
// @Tags Assignments
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by title, subject or batch"
// @Param batch query string false "Batch or All"
// @Param subject query string false "Subject or All"
// @Param status query string false "All, Active, Completed or Overdue"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	filter := models.AssignmentFilter{
		Search:   queryParam(c, "search"),
		Batch:    queryParam(c, "batch"),
		Subject:  queryParam(c, "subject"),
		Status:   queryParam(c, "status"),
		Page:     page,
		PageSize: size,
	}
	rows, pagination, err := h.assignments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetFilters(c, map[string]string{"search": filter.Search, "batch": filter.Batch, "subject": filter.Subject, "status": filter.Status})
	respondWithMeta(c, rows, pagination)
}

// Get godoc
// @Summary Get an assignment
// @Tags Assignments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	assignment, err := h.assignments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment, nil)
}

// Create godoc
// @Summary Create an assignment
// @Tags Assignments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.assignments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Delete godoc
// @Summary Delete an assignment
// @Tags Assignments
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Submissions godoc
// @Summary Submissions of an assignment
// @Tags Assignments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Assignment ID"
// @Param status query string false "all, submitted, overdue or pending"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id}/submissions [get]
func (h *AssignmentHandler) Submissions(c *gin.Context) {
	resp, err := h.assignments.Submissions(c.Request.Context(), c.Param("id"), queryParam(c, "status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Grade godoc
// @Summary Grade a submission
// @Tags Assignments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param studentId path string true "Student ID"
// @Param payload body dto.GradeRequest true "Grade and feedback"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id}/submissions/{studentId}/grade [put]
func (h *AssignmentHandler) Grade(c *gin.Context) {
	var req dto.GradeRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.assignments.Grade(c.Request.Context(), c.Param("id"), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sub, nil)
}
