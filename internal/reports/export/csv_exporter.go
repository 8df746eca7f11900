package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"agrigrow/income-portal/income-portal-backend/internal/reports/charts"
)

// CSVExporter exports chart series to CSV format
type CSVExporter struct {
	writer  *csv.Writer
	options CSVOptions
}

// CSVOptions configures CSV export behavior
type CSVOptions struct {
	Delimiter     rune   `json:"delimiter"`      // Field delimiter (default: comma)
	UseCRLF       bool   `json:"use_crlf"`       // Use \r\n for line terminator
	IncludeHeader bool   `json:"include_header"` // Include column headers
	NumberFormat  string `json:"number_format"`  // Format for numbers (e.g., "%.2f")
}

// DefaultCSVOptions returns default CSV export options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:     ',',
		IncludeHeader: true,
	}
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(w io.Writer, options CSVOptions) *CSVExporter {
	writer := csv.NewWriter(w)
	if options.Delimiter != 0 {
		writer.Comma = options.Delimiter
	}
	writer.UseCRLF = options.UseCRLF

	return &CSVExporter{
		writer:  writer,
		options: options,
	}
}

// WriteSeries writes one row per point, headed by the axis labels.
func (e *CSVExporter) WriteSeries(s charts.Series) error {
	if e.options.IncludeHeader {
		if err := e.writer.Write([]string{s.XLabel, s.YLabel}); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, p := range s.Points {
		if err := e.writer.Write([]string{p.Label, e.formatValue(p.Value)}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return e.Flush()
}

// Flush writes any buffered data to the underlying writer
func (e *CSVExporter) Flush() error {
	e.writer.Flush()
	return e.writer.Error()
}

func (e *CSVExporter) formatValue(v float64) string {
	if e.options.NumberFormat != "" {
		return fmt.Sprintf(e.options.NumberFormat, v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
