package v1

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agrigrow/income-portal/income-portal-backend/internal/catalog"
	"agrigrow/income-portal/income-portal-backend/internal/config"
	"agrigrow/income-portal/income-portal-backend/internal/ideas"
	"agrigrow/income-portal/income-portal-backend/internal/reports"
	"agrigrow/income-portal/income-portal-backend/internal/reports/charts"
	"agrigrow/income-portal/income-portal-backend/internal/reports/export"
)

// ReportsAPI holds the reports API dependencies
type ReportsAPI struct {
	Handler *reports.Handler
	Service *reports.Service
}

// SetupReportsAPI sets up the reports API with all dependencies
func SetupReportsAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ReportsAPI, error) {
	// Create text generation client
	client, err := ideas.NewGenAIClient(ctx, ideas.GenAIConfig{
		APIKey:  cfg.GenAI.APIKey,
		Model:   cfg.GenAI.Model,
		BaseURL: cfg.GenAI.BaseURL,
		Timeout: cfg.GenAI.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up text generation: %w", err)
	}
	logger.Info("Text generation client ready", zap.String("model", client.Model()))

	// Create service
	service := reports.NewService(
		catalog.Default(),
		ideas.NewGenerator(client, logger),
		charts.NewRenderer(cfg.Report.ChartWidth, cfg.Report.ChartHeight),
		PDFOptions(cfg.Report),
		logger,
	)

	// Create handler
	handler := reports.NewHandler(service, logger)

	return &ReportsAPI{
		Handler: handler,
		Service: service,
	}, nil
}

// RegisterReportsRoutes registers the reports routes on the router group
func RegisterReportsRoutes(router *gin.RouterGroup, api *ReportsAPI) {
	api.Handler.RegisterRoutes(router)
}

// PDFOptions returns the PDF layout for the configured report settings
func PDFOptions(cfg config.ReportConfig) export.PDFOptions {
	opts := export.DefaultPDFOptions()
	opts.TempDir = cfg.TempDir
	opts.Author = cfg.Author
	return opts
}
