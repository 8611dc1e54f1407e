package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/middleware"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
	"github.com/noah-isme/faculty-dashboard-api/pkg/response"
)

type analyticsService interface {
	Report(ctx context.Context, batch string) (*dto.AnalyticsReport, bool, error)
}

type analyticsExporter interface {
	Analytics(ctx context.Context, batch string) (*export.File, error)
}

// AnalyticsHandler exposes batch performance analytics.
type AnalyticsHandler struct {
	analytics analyticsService
	exports   analyticsExporter
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(analytics analyticsService, exports analyticsExporter) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, exports: exports}
}

// Report godoc
// @Summary Performance analytics for a batch
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param batch query string false "Batch or All"
// @Success 200 {object} response.Envelope
// @Router /analytics [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	batch := queryParam(c, "batch")
	report, cacheHit, err := h.analytics.Report(c.Request.Context(), batch)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetFilters(c, map[string]string{"batch": batch})
	respondWithMeta(c, report, nil)
}

// Export godoc
// @Summary Download the analytics report as JSON
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param batch query string false "Batch or All"
// @Success 200 {file} file
// @Router /analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	file, err := h.exports.Analytics(c.Request.Context(), queryParam(c, "batch"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}
