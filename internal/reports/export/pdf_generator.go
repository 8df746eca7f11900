package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"agrigrow/income-portal/income-portal-backend/pkg/storage"
)

// CompositionError reports a failure while assembling a PDF document.
type CompositionError struct {
	Stage string
	Err   error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("failed to compose PDF (%s): %v", e.Stage, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

// PDFGenerator generates PDF reports
type PDFGenerator struct {
	pdf     *gofpdf.Fpdf
	options PDFOptions
	encoder *encoding.Encoder
}

// PDFOptions configures PDF generation
type PDFOptions struct {
	PageSize      string     `json:"page_size"`   // A4, Letter, Legal
	Orientation   string     `json:"orientation"` // portrait, landscape
	Author        string     `json:"author,omitempty"`
	FontFamily    string     `json:"font_family"`
	FontSize      float64    `json:"font_size"`
	TitleFontSize float64    `json:"title_font_size"`
	LineHeight    float64    `json:"line_height"`
	BodyAlign     string     `json:"body_align"` // L, C, R, J
	Margins       PDFMargins `json:"margins"`

	// Embedded images are placed ImageGap below the text, ImageX from the
	// page edge, scaled to ImageWidth.
	ImageX     float64 `json:"image_x"`
	ImageGap   float64 `json:"image_gap"`
	ImageWidth float64 `json:"image_width"`

	Compress bool   `json:"compress"`
	TempDir  string `json:"temp_dir,omitempty"`
}

// PDFMargins represents page margins
type PDFMargins struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// DefaultPDFOptions returns default PDF options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageSize:      "A4",
		Orientation:   "portrait",
		FontFamily:    "Arial",
		FontSize:      10,
		TitleFontSize: 12,
		LineHeight:    10,
		BodyAlign:     "J",
		Margins: PDFMargins{
			Left:   10,
			Right:  10,
			Top:    10,
			Bottom: 20,
		},
		ImageX:     10,
		ImageGap:   10,
		ImageWidth: 180,
		Compress:   true,
	}
}

// NewPDFGenerator creates a new PDF generator
func NewPDFGenerator(options PDFOptions) *PDFGenerator {
	orientation := "P"
	if options.Orientation == "landscape" {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", options.PageSize, "")
	pdf.SetMargins(options.Margins.Left, options.Margins.Top, options.Margins.Right)
	pdf.SetAutoPageBreak(true, options.Margins.Bottom)
	pdf.SetCompression(options.Compress)
	if options.Author != "" {
		pdf.SetAuthor(options.Author, true)
	}

	return &PDFGenerator{
		pdf:     pdf,
		options: options,
		encoder: charmap.Windows1252.NewEncoder(),
	}
}

// encode converts UTF-8 text to the single-byte encoding of the core fonts.
func (g *PDFGenerator) encode(stage, s string) (string, error) {
	out, err := g.encoder.String(s)
	if err != nil {
		return "", &CompositionError{Stage: stage, Err: fmt.Errorf("text is not representable in Windows-1252: %w", err)}
	}
	return out, nil
}

// AddPage starts a new page.
func (g *PDFGenerator) AddPage() {
	g.pdf.AddPage()
}

// AddTitle writes a bold, left-aligned title line.
func (g *PDFGenerator) AddTitle(title string) error {
	encoded, err := g.encode("title", title)
	if err != nil {
		return err
	}

	g.pdf.SetTitle(title, true)
	g.pdf.SetFont(g.options.FontFamily, "B", g.options.TitleFontSize)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.CellFormat(0, g.options.LineHeight, encoded, "", 1, "L", false, 0, "")
	return g.check("title")
}

// AddParagraph writes text wrapped to the page width. Overflow continues on
// new pages.
func (g *PDFGenerator) AddParagraph(text string) error {
	encoded, err := g.encode("body", text)
	if err != nil {
		return err
	}

	g.pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.MultiCell(0, g.options.LineHeight, encoded, "", g.options.BodyAlign, false)
	return g.check("body")
}

// AddImagePNG embeds a PNG below the current position. The image goes
// through a temporary file that is always removed.
func (g *PDFGenerator) AddImagePNG(data []byte) error {
	err := storage.WithTempFile(g.options.TempDir, "chart-*.png", data, func(path string) error {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}

		info := g.pdf.RegisterImageOptions(path, opts)
		if err := g.check("image"); err != nil {
			return err
		}

		w := g.options.ImageWidth
		h := w * info.Height() / info.Width()

		_, pageHeight := g.pdf.GetPageSize()
		y := g.pdf.GetY() + g.options.ImageGap
		if y+h > pageHeight-g.options.Margins.Bottom {
			g.pdf.AddPage()
			y = g.options.Margins.Top
		}

		g.pdf.ImageOptions(path, g.options.ImageX, y, w, h, false, opts, 0, "")
		g.pdf.SetY(y + h)
		return g.check("image")
	})
	if err == nil {
		return nil
	}
	var compErr *CompositionError
	if errors.As(err, &compErr) {
		return err
	}
	return &CompositionError{Stage: "image", Err: err}
}

// PageCount returns the number of pages written so far.
func (g *PDFGenerator) PageCount() int {
	return g.pdf.PageCount()
}

func (g *PDFGenerator) check(stage string) error {
	if g.pdf.Err() {
		return &CompositionError{Stage: stage, Err: g.pdf.Error()}
	}
	return nil
}

// WriteTo writes the PDF to a writer
func (g *PDFGenerator) WriteTo(w io.Writer) error {
	if err := g.pdf.Output(w); err != nil {
		return &CompositionError{Stage: "output", Err: err}
	}
	return nil
}

// OutputToBytes returns the PDF as bytes
func (g *PDFGenerator) OutputToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := g.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportTitle is the heading of an income report.
func ReportTitle(wasteType string) string {
	return "Income Generation from " + wasteType
}

// ComposeIncomeReport lays out the title, the generated text and the chart,
// and returns the finished document positioned at offset 0.
func ComposeIncomeReport(wasteType, text string, chartPNG []byte, options PDFOptions) (*bytes.Reader, error) {
	g := NewPDFGenerator(options)
	g.AddPage()

	if err := g.AddTitle(ReportTitle(wasteType)); err != nil {
		return nil, err
	}
	if err := g.AddParagraph(text); err != nil {
		return nil, err
	}
	if err := g.AddImagePNG(chartPNG); err != nil {
		return nil, err
	}

	data, err := g.OutputToBytes()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
