package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format enumerates the supported download formats.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormat normalises a user supplied format, falling back when empty.
func ParseFormat(raw string, fallback Format) (Format, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return fallback, nil
	}
	switch Format(raw) {
	case FormatCSV, FormatJSON, FormatPDF:
		return Format(raw), nil
	default:
		return "", fmt.Errorf("unsupported format %s", raw)
	}
}

// ContentType returns the MIME type used when the file is downloaded.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// File is a rendered export ready to be handed to a download mechanism.
type File struct {
	Name        string `json:"name"`
	Format      Format `json:"format"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"-"`
}

// NewFile wraps rendered bytes with a dated filename.
func NewFile(prefix string, format Format, body []byte, now time.Time) *File {
	return &File{
		Name:        Filename(prefix, string(format), now),
		Format:      format,
		ContentType: format.ContentType(),
		Body:        body,
	}
}

// Filename returns "<prefix>_YYYY-MM-DD.<ext>" using the UTC calendar date.
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.UTC().Format("2006-01-02"), ext)
}

// JSONExporter renders arbitrary values as indented JSON.
type JSONExporter struct{}

// NewJSONExporter builds a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Render marshals v with a two space indent.
func (e *JSONExporter) Render(v interface{}) ([]byte, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return payload, nil
}
