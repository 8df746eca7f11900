package reports

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// =====================================================
// Enums and Constants
// =====================================================

// PDFContentType is the media type of a generated income report.
const PDFContentType = "application/pdf"

// ChartFormat is a supported rendition of the income trends chart.
type ChartFormat string

const (
	ChartFormatPNG   ChartFormat = "png"
	ChartFormatCSV   ChartFormat = "csv"
	ChartFormatExcel ChartFormat = "xlsx"
)

var chartContentTypes = map[ChartFormat]string{
	ChartFormatPNG:   "image/png",
	ChartFormatCSV:   "text/csv; charset=utf-8",
	ChartFormatExcel: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ErrUnsupportedFormat is returned for chart formats other than png, csv and xlsx.
var ErrUnsupportedFormat = errors.New("unsupported chart format")

// =====================================================
// Request/Response DTOs
// =====================================================

// GenerateRequest is one category/type selection submitted by a user.
type GenerateRequest struct {
	Category  string `json:"category" form:"category"`
	WasteType string `json:"waste_type" form:"waste_type"`
}

// GeneratedReport is the outcome of one successful pipeline run. PDF is
// serialized as base64 in JSON.
type GeneratedReport struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	WasteType   string    `json:"waste_type"`
	Text        string    `json:"text"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	PDF         []byte    `json:"pdf"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ChartArtifact is a rendered chart ready to be served or written to disk.
type ChartArtifact struct {
	Format      ChartFormat `json:"format"`
	FileName    string      `json:"file_name"`
	ContentType string      `json:"content_type"`
	Data        []byte      `json:"data"`
}

// FileNameFor returns the download name of the report for wasteType.
func FileNameFor(wasteType string) string {
	return wasteType + "_income_ideas.pdf"
}
