package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/faculty-dashboard-api/internal/dto"
	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
	"github.com/noah-isme/faculty-dashboard-api/pkg/export"
)

// Export kinds accepted by Archive.
const (
	ExportKindStudents   = "students"
	ExportKindAttendance = "attendance"
	ExportKindAnalytics  = "analytics"
)

type studentExporter interface {
	Export(ctx context.Context, filter models.StudentFilter) (*export.File, error)
}

type attendanceExporter interface {
	Export(ctx context.Context, filter models.AttendanceFilter, format export.Format) (*export.File, error)
}

type analyticsExporter interface {
	Export(ctx context.Context, batch string) (*export.File, error)
}

type fileStorage interface {
	Save(relPath string, data []byte) (string, error)
	Read(relPath string) ([]byte, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type urlSigner interface {
	Generate(exportID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (string, string, time.Time, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportServiceParams groups constructor dependencies.
type ExportServiceParams struct {
	Students   studentExporter
	Attendance attendanceExporter
	Analytics  analyticsExporter
	Storage    fileStorage
	Signer     urlSigner
	Metrics    *MetricsService
	Validator  *validator.Validate
	Logger     *zap.Logger
	Config     ExportConfig
}

// ExportService renders downloads and archives them behind signed links.
type ExportService struct {
	students   studentExporter
	attendance attendanceExporter
	analytics  analyticsExporter
	storage    fileStorage
	signer     urlSigner
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	cfg        ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(params ExportServiceParams) *ExportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = NewValidator()
	}
	cfg := params.Config
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		students:   params.Students,
		attendance: params.Attendance,
		analytics:  params.Analytics,
		storage:    params.Storage,
		signer:     params.Signer,
		metrics:    params.Metrics,
		validator:  validate,
		logger:     logger,
		cfg:        cfg,
	}
}

// Students renders the filtered roster as CSV.
func (s *ExportService) Students(ctx context.Context, filter models.StudentFilter) (*export.File, error) {
	return s.record(ExportKindStudents)(s.students.Export(ctx, filter))
}

// Attendance renders the attendance overview as CSV or PDF.
func (s *ExportService) Attendance(ctx context.Context, filter models.AttendanceFilter, format export.Format) (*export.File, error) {
	return s.record(ExportKindAttendance)(s.attendance.Export(ctx, filter, format))
}

// Analytics renders the analytics report as JSON.
func (s *ExportService) Analytics(ctx context.Context, batch string) (*export.File, error) {
	return s.record(ExportKindAnalytics)(s.analytics.Export(ctx, batch))
}

func (s *ExportService) record(kind string) func(*export.File, error) (*export.File, error) {
	return func(file *export.File, err error) (*export.File, error) {
		if err != nil {
			return nil, err
		}
		s.metrics.RecordExport(kind, string(file.Format))
		s.logger.Info("export rendered", zap.String("kind", kind), zap.String("file", file.Name))
		return file, nil
	}
}

// Archive renders the requested export, stores it and returns a signed download link.
func (s *ExportService) Archive(ctx context.Context, req dto.ArchiveExportRequest) (*dto.ArchivedExport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid export request")
	}
	file, err := s.render(ctx, req)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	relPath, err := s.storage.Save(path.Join(id, file.Name), file.Body)
	if err != nil {
		return nil, internalError(err, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, internalError(err, "failed to sign export link")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &dto.ArchivedExport{
		FileName:  file.Name,
		URL:       fmt.Sprintf("%s/exports/%s", prefix, token),
		ExpiresAt: expiresAt.UTC(),
		Size:      len(file.Body),
	}, nil
}

func (s *ExportService) render(ctx context.Context, req dto.ArchiveExportRequest) (*export.File, error) {
	switch req.Kind {
	case ExportKindStudents:
		if req.Format != "" && req.Format != string(export.FormatCSV) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "students export supports csv only")
		}
		return s.Students(ctx, models.StudentFilter{Search: req.Search, Batch: req.Batch, Attendance: req.Band})
	case ExportKindAttendance:
		format, err := export.ParseFormat(req.Format, export.FormatCSV)
		if err != nil {
			return nil, validationError(err, "invalid export format")
		}
		return s.Attendance(ctx, models.AttendanceFilter{Search: req.Search, Batch: req.Batch, Band: req.Band}, format)
	case ExportKindAnalytics:
		if req.Format != "" && req.Format != string(export.FormatJSON) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "analytics export supports json only")
		}
		return s.Analytics(ctx, req.Batch)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export kind "+req.Kind)
	}
}

// Open resolves a signed token to the archived file.
func (s *ExportService) Open(ctx context.Context, token string) (*export.File, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export link invalid or expired")
	}
	body, err := s.storage.Read(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export not found")
	}
	name := path.Base(relPath)
	format, err := export.ParseFormat(strings.TrimPrefix(path.Ext(name), "."), export.FormatCSV)
	if err != nil {
		return nil, internalError(err, "unrecognised export file")
	}
	return &export.File{Name: name, Format: format, ContentType: format.ContentType(), Body: body}, nil
}

// Cleanup removes archived files older than ttl (the configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return nil, internalError(err, "failed to clean exports")
	}
	if len(removed) > 0 {
		s.logger.Info("stale exports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}
