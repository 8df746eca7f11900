package reports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrigrow/income-portal/income-portal-backend/internal/catalog"
	"agrigrow/income-portal/income-portal-backend/internal/reports/charts"
	"agrigrow/income-portal/income-portal-backend/internal/reports/export"
)

// IdeaGenerator produces the income ideas text for a waste type.
type IdeaGenerator interface {
	GenerateIncomeIdeas(ctx context.Context, wasteType string) (string, error)
}

// ChartRenderer renders the income trends chart as PNG.
type ChartRenderer interface {
	RenderIncomeTrends() ([]byte, error)
}

// Service runs the selection → text → chart → PDF pipeline
type Service struct {
	catalog    *catalog.Catalog
	ideas      IdeaGenerator
	charts     ChartRenderer
	pdfOptions export.PDFOptions
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a new reports service
func NewService(cat *catalog.Catalog, ideas IdeaGenerator, renderer ChartRenderer, pdfOptions export.PDFOptions, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:    cat,
		ideas:      ideas,
		charts:     renderer,
		pdfOptions: pdfOptions,
		logger:     logger,
		now:        time.Now,
	}
}

// Catalog returns the selectable categories and types.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Generate resolves the selection, asks for income ideas and composes the
// PDF report. A missing selection fails before any external call. Every run
// is independent.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GeneratedReport, error) {
	sel, err := s.catalog.Resolve(req.Category, req.WasteType)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	log := s.logger.With(
		zap.String("report_id", id.String()),
		zap.String("category", sel.Category),
		zap.String("waste_type", sel.WasteType))

	text, err := s.ideas.GenerateIncomeIdeas(ctx, sel.WasteType)
	if err != nil {
		log.Error("Failed to generate income ideas", zap.Error(err))
		return nil, fmt.Errorf("failed to generate income ideas: %w", err)
	}

	chartPNG, err := s.charts.RenderIncomeTrends()
	if err != nil {
		log.Error("Failed to render chart", zap.Error(err))
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	doc, err := export.ComposeIncomeReport(sel.WasteType, text, chartPNG, s.pdfOptions)
	if err != nil {
		log.Error("Failed to compose report", zap.Error(err))
		return nil, fmt.Errorf("failed to compose report: %w", err)
	}
	pdf, err := io.ReadAll(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	report := &GeneratedReport{
		ID:          id,
		Category:    sel.Category,
		WasteType:   sel.WasteType,
		Text:        text,
		FileName:    FileNameFor(sel.WasteType),
		ContentType: PDFContentType,
		PDF:         pdf,
		GeneratedAt: s.now(),
	}

	log.Info("Income report generated",
		zap.Int("text_length", len(text)),
		zap.Int("pdf_size", len(pdf)))

	return report, nil
}

// ChartArtifact renders the income trends chart in the requested format.
func (s *Service) ChartArtifact(format ChartFormat) (*ChartArtifact, error) {
	contentType, ok := chartContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case ChartFormatPNG:
		data, err = s.charts.RenderIncomeTrends()
	case ChartFormatCSV:
		data, err = exportCSV(charts.IncomeTrends())
	case ChartFormatExcel:
		data, err = exportExcel(charts.IncomeTrends())
	}
	if err != nil {
		s.logger.Error("Failed to export chart", zap.String("format", string(format)), zap.Error(err))
		return nil, fmt.Errorf("failed to export chart as %s: %w", format, err)
	}

	return &ChartArtifact{
		Format:      format,
		FileName:    "income_trends." + string(format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func exportCSV(series charts.Series) ([]byte, error) {
	var buf bytes.Buffer
	if err := export.NewCSVExporter(&buf, export.DefaultCSVOptions()).WriteSeries(series); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportExcel(series charts.Series) ([]byte, error) {
	exporter, err := export.NewExcelExporter(export.DefaultExcelOptions())
	if err != nil {
		return nil, err
	}
	defer exporter.Close()

	if err := exporter.WriteSeries(series); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := exporter.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
