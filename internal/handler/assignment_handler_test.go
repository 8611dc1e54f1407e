package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

type fakeAssignmentSrv struct {
	lastFilter models.AssignmentFilter
	lastTab    string
	gradedIDs  [2]string
	gradeReq   *dto.GradeRequest
	createReq  *dto.CreateAssignmentRequest
	deleteErr  error
}

func (f *fakeAssignmentSrv) List(_ context.Context, filter models.AssignmentFilter) ([]dto.AssignmentRow, *models.Pagination, error) {
	f.lastFilter = filter
	return []dto.AssignmentRow{}, &models.Pagination{Page: 1, PageSize: 10}, nil
}

func (f *fakeAssignmentSrv) Get(_ context.Context, id string) (*models.Assignment, error) {
	return &models.Assignment{ID: id, Title: "Linked Lists"}, nil
}

func (f *fakeAssignmentSrv) Create(_ context.Context, req dto.CreateAssignmentRequest) (*models.Assignment, error) {
	f.createReq = &req
	return &models.Assignment{ID: "a-new", Title: req.Title}, nil
}

func (f *fakeAssignmentSrv) Delete(context.Context, string) error {
	return f.deleteErr
}

func (f *fakeAssignmentSrv) Submissions(_ context.Context, id, tab string) (*dto.SubmissionsResponse, error) {
	f.lastTab = tab
	return &dto.SubmissionsResponse{Assignment: models.Assignment{ID: id}}, nil
}

func (f *fakeAssignmentSrv) Grade(_ context.Context, assignmentID, studentID string, req dto.GradeRequest) (*models.Submission, error) {
	f.gradedIDs = [2]string{assignmentID, studentID}
	f.gradeReq = &req
	return &models.Submission{AssignmentID: assignmentID, StudentID: studentID, Grade: req.Grade}, nil
}

func TestAssignmentHandlerListFilters(t *testing.T) {
	srv := &fakeAssignmentSrv{}
	handler := NewAssignmentHandler(srv)

	c, rec := newTestContext(http.MethodGet, "/assignments?status=Overdue&subject=Algorithms&search=sort", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Overdue", srv.lastFilter.Status)
	assert.Equal(t, "Algorithms", srv.lastFilter.Subject)
	assert.Equal(t, "sort", srv.lastFilter.Search)
}

func TestAssignmentHandlerCreate(t *testing.T) {
	srv := &fakeAssignmentSrv{}
	handler := NewAssignmentHandler(srv)

	c, rec := newTestContext(http.MethodPost, "/assignments", `{"title":"Graphs","subject":"Algorithms","batches":["CS-A","CS-B"],"due_date":"2024-12-01","total_marks":50}`)
	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, srv.createReq)
	assert.Equal(t, []string{"CS-A", "CS-B"}, srv.createReq.Batches)
}

func TestAssignmentHandlerDeleteNotFound(t *testing.T) {
	handler := NewAssignmentHandler(&fakeAssignmentSrv{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "assignment not found")})

	c, rec := newTestContext(http.MethodDelete, "/assignments/x", "")
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	handler.Delete(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignmentHandlerSubmissionsTab(t *testing.T) {
	srv := &fakeAssignmentSrv{}
	handler := NewAssignmentHandler(srv)

	c, rec := newTestContext(http.MethodGet, "/assignments/a1/submissions?status=pending", "")
	c.Params = gin.Params{{Key: "id", Value: "a1"}}
	handler.Submissions(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", srv.lastTab)
}

func TestAssignmentHandlerGrade(t *testing.T) {
	srv := &fakeAssignmentSrv{}
	handler := NewAssignmentHandler(srv)

	c, rec := newTestContext(http.MethodPut, "/assignments/a1/submissions/s2/grade", `{"grade":42,"feedback":"Good work"}`)
	c.Params = gin.Params{{Key: "id", Value: "a1"}, {Key: "studentId", Value: "s2"}}
	handler.Grade(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [2]string{"a1", "s2"}, srv.gradedIDs)
	require.NotNil(t, srv.gradeReq)
	require.NotNil(t, srv.gradeReq.Grade)
	assert.Equal(t, 42.0, *srv.gradeReq.Grade)
	assert.Equal(t, "Good work", srv.gradeReq.Feedback)
}
