package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Report is a titled table rendered to PDF.
type Report struct {
	Title     string
	Generated time.Time
	Data      Dataset
	// Highlight marks rows printed on a shaded background, e.g. at-risk students.
	Highlight func(row map[string]string) bool
}

// PDFExporter renders reports as paginated A4 tables.
type PDFExporter struct {
	wideAfter int
}

// NewPDFExporter constructs a PDF exporter that turns landscape past six columns.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{wideAfter: 6}
}

// Render lays out the report. The column header row is repeated on every page
// and numeric cells are right aligned.
func (e *PDFExporter) Render(report Report) ([]byte, error) {
	headers := report.Data.Headers
	if len(headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	orientation, width := "P", 190.0
	if len(headers) > e.wideAfter {
		orientation, width = "L", 277.0
	}
	colWidth := width / float64(len(headers))
	numeric := numericColumns(report.Data)

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	tableHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(220, 226, 240)
		for _, h := range headers {
			pdf.CellFormat(colWidth, 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	first := true
	pdf.SetHeaderFunc(func() {
		if first {
			first = false
			return
		}
		tableHeader()
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	if report.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, report.Title, "", 1, "C", false, 0, "")
	}
	if !report.Generated.IsZero() {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 6, "Generated "+report.Generated.Format("2 Jan 2006 15:04 MST"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
	tableHeader()

	for _, row := range report.Data.Rows {
		shade := report.Highlight != nil && report.Highlight(row)
		if shade {
			pdf.SetFillColor(253, 226, 226)
		}
		for i, h := range headers {
			align := "L"
			if numeric[i] {
				align = "R"
			}
			pdf.CellFormat(colWidth, 7, row[h], "1", 0, align, shade, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// numericColumns flags columns whose non-empty cells all parse as numbers.
func numericColumns(data Dataset) []bool {
	flags := make([]bool, len(data.Headers))
	for i, h := range data.Headers {
		seen := false
		flags[i] = true
		for _, row := range data.Rows {
			v := strings.TrimSuffix(strings.TrimSpace(row[h]), "%")
			if v == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				flags[i] = false
				break
			}
		}
		flags[i] = flags[i] && seen
	}
	return flags
}
