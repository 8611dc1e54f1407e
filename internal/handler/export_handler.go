package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

type exportArchiver interface {
	Archive(ctx context.Context, req dto.ArchiveExportRequest) (*dto.ArchivedExport, error)
	Open(ctx context.Context, token string) (*export.File, error)
}

// ExportHandler stores exports behind signed download links.
type ExportHandler struct {
	exports exportArchiver
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportArchiver) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Archive godoc
// @Summary Render an export and return a signed download link
// @Tags Exports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.ArchiveExportRequest true "Export request"
// @Success 201 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Archive(c *gin.Context) {
	var req dto.ArchiveExportRequest
	if !bindJSON(c, &req) {
		return
	}
	archived, err := h.exports.Archive(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, archived)
}

// Download godoc
// @Summary Download an archived export
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, err := h.exports.Open(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
