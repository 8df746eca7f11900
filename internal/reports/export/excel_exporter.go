package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"agrigrow/income-portal/income-portal-backend/internal/reports/charts"
)

// ExcelExporter exports chart series to an Excel workbook
type ExcelExporter struct {
	file    *excelize.File
	options ExcelOptions
}

// ExcelOptions configures Excel export behavior
type ExcelOptions struct {
	SheetName    string            `json:"sheet_name"`
	FreezeHeader bool              `json:"freeze_header"`
	NumberFormat string            `json:"number_format"`
	HeaderStyle  *ExcelStyleConfig `json:"header_style,omitempty"`
	DataStyle    *ExcelStyleConfig `json:"data_style,omitempty"`
	ColumnWidth  float64           `json:"column_width"`
	AddChart     bool              `json:"add_chart"` // Native line chart next to the data
}

// ExcelStyleConfig defines style for cells
type ExcelStyleConfig struct {
	FontBold  bool   `json:"font_bold"`
	FontSize  int    `json:"font_size"`
	FontColor string `json:"font_color"`
	FillColor string `json:"fill_color"`
	Alignment string `json:"alignment"` // left, center, right
	Border    bool   `json:"border"`
}

// DefaultExcelOptions returns default Excel export options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		SheetName:    "Income Trends",
		FreezeHeader: true,
		NumberFormat: "$#,##0",
		ColumnWidth:  16,
		AddChart:     true,
		HeaderStyle: &ExcelStyleConfig{
			FontBold:  true,
			FontSize:  11,
			FillColor: "4472C4",
			FontColor: "FFFFFF",
			Alignment: "center",
			Border:    true,
		},
		DataStyle: &ExcelStyleConfig{
			FontSize:  11,
			Alignment: "left",
			Border:    true,
		},
	}
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(options ExcelOptions) (*ExcelExporter, error) {
	file := excelize.NewFile()

	// Rename the default sheet
	if err := file.SetSheetName("Sheet1", options.SheetName); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	return &ExcelExporter{
		file:    file,
		options: options,
	}, nil
}

// WriteSeries writes the axis labels as a header row followed by one row
// per point, and optionally a line chart of the data.
func (e *ExcelExporter) WriteSeries(s charts.Series) error {
	sheet := e.options.SheetName

	if err := e.writeHeader([]string{s.XLabel, s.YLabel}); err != nil {
		return err
	}

	dataStyleID := 0
	if e.options.DataStyle != nil {
		style, err := e.createStyle(e.options.DataStyle, "")
		if err != nil {
			return fmt.Errorf("failed to create data style: %w", err)
		}
		dataStyleID = style
	}
	valueStyleID := dataStyleID
	if e.options.NumberFormat != "" {
		style, err := e.createStyle(e.options.DataStyle, e.options.NumberFormat)
		if err != nil {
			return fmt.Errorf("failed to create value style: %w", err)
		}
		valueStyleID = style
	}

	for i, p := range s.Points {
		row := i + 2
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)

		if err := e.file.SetCellValue(sheet, labelCell, p.Label); err != nil {
			return fmt.Errorf("failed to set cell value: %w", err)
		}
		if err := e.file.SetCellValue(sheet, valueCell, p.Value); err != nil {
			return fmt.Errorf("failed to set cell value: %w", err)
		}
		if dataStyleID > 0 {
			if err := e.file.SetCellStyle(sheet, labelCell, labelCell, dataStyleID); err != nil {
				return fmt.Errorf("failed to set cell style: %w", err)
			}
		}
		if valueStyleID > 0 {
			if err := e.file.SetCellStyle(sheet, valueCell, valueCell, valueStyleID); err != nil {
				return fmt.Errorf("failed to set cell style: %w", err)
			}
		}
	}

	if e.options.ColumnWidth > 0 {
		if err := e.file.SetColWidth(sheet, "A", "B", e.options.ColumnWidth); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if e.options.AddChart && len(s.Points) > 0 {
		if err := e.addLineChart(s); err != nil {
			return err
		}
	}

	return nil
}

// writeHeader writes the header row with styling
func (e *ExcelExporter) writeHeader(columns []string) error {
	sheet := e.options.SheetName

	headerStyleID := 0
	if e.options.HeaderStyle != nil {
		style, err := e.createStyle(e.options.HeaderStyle, "")
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		headerStyleID = style
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := e.file.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to set header: %w", err)
		}
		if headerStyleID > 0 {
			if err := e.file.SetCellStyle(sheet, cell, cell, headerStyleID); err != nil {
				return fmt.Errorf("failed to set header style: %w", err)
			}
		}
	}

	// Freeze header row
	if e.options.FreezeHeader {
		err := e.file.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
		if err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	return nil
}

func (e *ExcelExporter) addLineChart(s charts.Series) error {
	ref := "'" + strings.ReplaceAll(e.options.SheetName, "'", "''") + "'"
	last := len(s.Points) + 1

	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", ref),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", ref, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", ref, last),
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 6},
			},
		},
		Title: []excelize.RichTextRun{{Text: s.Title}},
	}

	if err := e.file.AddChart(e.options.SheetName, "D2", chart); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}

// WriteTo writes the Excel file to a writer
func (e *ExcelExporter) WriteTo(w io.Writer) error {
	return e.file.Write(w)
}

// Close closes the Excel file
func (e *ExcelExporter) Close() error {
	return e.file.Close()
}

// createStyle creates an Excel style from config
func (e *ExcelExporter) createStyle(config *ExcelStyleConfig, numFmt string) (int, error) {
	style := &excelize.Style{}
	if numFmt != "" {
		style.CustomNumFmt = &numFmt
	}
	if config == nil {
		return e.file.NewStyle(style)
	}

	// Font
	style.Font = &excelize.Font{
		Bold: config.FontBold,
		Size: float64(config.FontSize),
	}
	if config.FontColor != "" {
		style.Font.Color = config.FontColor
	}

	// Fill
	if config.FillColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{config.FillColor},
		}
	}

	// Alignment
	switch config.Alignment {
	case "left", "center", "right":
		style.Alignment = &excelize.Alignment{Horizontal: config.Alignment}
	}

	// Border
	if config.Border {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}

	return e.file.NewStyle(style)
}
