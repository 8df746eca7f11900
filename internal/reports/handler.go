package reports

import (
	"encoding/base64"
	"errors"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agrigrow/income-portal/income-portal-backend/internal/catalog"
	"agrigrow/income-portal/income-portal-backend/internal/ideas"
)

// SelectionMissingMessage is shown when a report is requested without a waste type.
const SelectionMissingMessage = "Please select a waste type first"

// Handler handles HTTP requests for income reports
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new reports handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the JSON API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/catalog", h.getCatalog)

	reports := router.Group("/reports")
	{
		reports.POST("", h.generateReport)
		reports.POST("/pdf", h.downloadReport)
	}

	router.GET("/charts/income-trends", h.getIncomeTrendsChart)
}

// RegisterPages registers the HTML page routes. The router must have the
// index.html template loaded.
func (h *Handler) RegisterPages(router gin.IRoutes) {
	router.GET("/", h.index)
	router.POST("/generate", h.generatePage)
}

// =====================================================
// API Endpoints
// =====================================================

// getCatalog handles GET /api/v1/catalog
func (h *Handler) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.service.Catalog().Categories})
}

// generateReport handles POST /api/v1/reports
func (h *Handler) generateReport(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// downloadReport handles POST /api/v1/reports/pdf
func (h *Handler) downloadReport(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", attachment(report.FileName))
	c.Data(http.StatusOK, report.ContentType, report.PDF)
}

// getIncomeTrendsChart handles GET /api/v1/charts/income-trends
func (h *Handler) getIncomeTrendsChart(c *gin.Context) {
	format := ChartFormat(strings.ToLower(c.DefaultQuery("format", string(ChartFormatPNG))))

	artifact, err := h.service.ChartArtifact(format)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if format != ChartFormatPNG {
		c.Header("Content-Disposition", attachment(artifact.FileName))
	}
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// =====================================================
// Pages
// =====================================================

type pageData struct {
	Categories []catalog.Category
	Selected   GenerateRequest
	Text       string
	Error      string
	Download   *downloadLink
}

type downloadLink struct {
	FileName string
	URL      template.URL
}

// index handles GET /
func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		Categories: h.service.Catalog().Categories,
	})
}

// generatePage handles POST /generate
func (h *Handler) generatePage(c *gin.Context) {
	data := pageData{Categories: h.service.Catalog().Categories}

	var req GenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}
	data.Selected = req

	report, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		status, message := h.classify(err)
		data.Error = message
		c.HTML(status, "index.html", data)
		return
	}

	data.Selected = GenerateRequest{Category: report.Category, WasteType: report.WasteType}
	data.Text = report.Text
	data.Download = &downloadLink{
		FileName: report.FileName,
		URL:      template.URL("data:" + report.ContentType + ";base64," + base64.StdEncoding.EncodeToString(report.PDF)),
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// =====================================================
// Helper Methods
// =====================================================

func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := h.classify(err)
	c.JSON(status, gin.H{"error": message})
}

// classify maps pipeline errors to an HTTP status and a user-facing message.
func (h *Handler) classify(err error) (int, string) {
	var serviceErr *ideas.ServiceError
	switch {
	case errors.Is(err, catalog.ErrSelectionMissing):
		return http.StatusBadRequest, SelectionMissingMessage
	case errors.Is(err, catalog.ErrUnknownCategory),
		errors.Is(err, catalog.ErrUnknownWasteType),
		errors.Is(err, ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &serviceErr):
		h.logger.Warn("Text generation service failed", zap.String("model", serviceErr.Model), zap.Error(err))
		return http.StatusBadGateway, "The text generation service is unavailable, please try again"
	default:
		h.logger.Error("Report generation failed", zap.Error(err))
		return http.StatusInternalServerError, "Failed to generate the report"
	}
}

func attachment(fileName string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": fileName})
}
