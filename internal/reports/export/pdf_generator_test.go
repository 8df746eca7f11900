package export

import (
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrigrow/income-portal/income-portal-backend/internal/reports/charts"
)

var (
	pageObject = regexp.MustCompile(`/Type /Page\b`)
	imageDraw  = regexp.MustCompile(`/I\S+ Do`)
	textShow   = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*Tj`)
)

// textOps returns the strings of every text-showing operator in document order.
func textOps(doc string) []string {
	var ops []string
	for _, m := range textShow.FindAllStringSubmatch(doc, -1) {
		ops = append(ops, m[1])
	}
	return ops
}

// assertTitle checks that the first text on the page is exactly the report
// title and that it is drawn once.
func assertTitle(t *testing.T, doc, wasteType string) {
	t.Helper()
	ops := textOps(doc)
	require.NotEmpty(t, ops)
	assert.Equal(t, "Income Generation from "+wasteType, ops[0])

	count := 0
	for _, op := range ops {
		if op == ReportTitle(wasteType) {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// testOptions keeps content streams uncompressed so the tests can read them.
func testOptions(t *testing.T) PDFOptions {
	t.Helper()
	opts := DefaultPDFOptions()
	opts.Compress = false
	opts.TempDir = t.TempDir()
	return opts
}

func chartPNG(t *testing.T) []byte {
	t.Helper()
	img, err := charts.NewRenderer(0, 0).RenderIncomeTrends()
	require.NoError(t, err)
	return img
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestComposeIncomeReportStubble(t *testing.T) {
	opts := testOptions(t)

	r, err := ComposeIncomeReport("Stubble", "Stubble can be sold as biomass fuel...", chartPNG(t), opts)
	require.NoError(t, err)

	assert.Equal(t, r.Size(), int64(r.Len()), "reader must start at offset 0")
	doc := readAll(t, r)

	assert.True(t, strings.HasPrefix(doc, "%PDF"))
	assert.Len(t, pageObject.FindAllString(doc, -1), 1)
	assert.Len(t, imageDraw.FindAllString(doc, -1), 1)
	assertTitle(t, doc, "Stubble")
	assert.Contains(t, doc, "Stubble can be sold as biomass fuel...")

	entries, err := os.ReadDir(opts.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary chart file must be removed")
}

func TestComposeIncomeReportEmptyText(t *testing.T) {
	r, err := ComposeIncomeReport("Straw", "", chartPNG(t), testOptions(t))
	require.NoError(t, err)

	doc := readAll(t, r)
	assert.True(t, strings.HasPrefix(doc, "%PDF"))
	assert.Len(t, pageObject.FindAllString(doc, -1), 1)
	assert.Len(t, imageDraw.FindAllString(doc, -1), 1)
	assertTitle(t, doc, "Straw")
}

func TestComposeIncomeReportASCIIText(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	img := chartPNG(t)
	opts := testOptions(t)

	for i := 0; i < 20; i++ {
		var sb strings.Builder
		n := rng.Intn(400)
		for j := 0; j < n; j++ {
			switch rng.Intn(12) {
			case 0:
				sb.WriteByte('\n')
			case 1:
				sb.WriteByte(' ')
			default:
				sb.WriteByte(byte(0x20 + rng.Intn(0x7f-0x20)))
			}
		}

		_, err := ComposeIncomeReport("Husks", sb.String(), img, opts)
		require.NoError(t, err, "text %q", sb.String())
	}
}

func TestComposeIncomeReportWindows1252Punctuation(t *testing.T) {
	text := "Prices rose — roughly €200 per tonne “in good years”, café grounds included."

	_, err := ComposeIncomeReport("Shells", text, chartPNG(t), testOptions(t))

	assert.NoError(t, err)
}

func TestComposeIncomeReportUnrepresentableText(t *testing.T) {
	opts := testOptions(t)

	_, err := ComposeIncomeReport("Straw", "稻草可以用作生物质燃料", chartPNG(t), opts)

	var compErr *CompositionError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "body", compErr.Stage)

	entries, _ := os.ReadDir(opts.TempDir)
	assert.Empty(t, entries)
}

func TestComposeIncomeReportLongTextOverflows(t *testing.T) {
	text := strings.Repeat("Straw can be baled and sold to mushroom growers and paper mills. ", 300)

	r, err := ComposeIncomeReport("Straw", text, chartPNG(t), testOptions(t))
	require.NoError(t, err)

	doc := readAll(t, r)
	assert.Greater(t, len(pageObject.FindAllString(doc, -1)), 1)
	assert.Len(t, imageDraw.FindAllString(doc, -1), 1)
}

func TestComposeIncomeReportTempDirFailure(t *testing.T) {
	opts := testOptions(t)
	opts.TempDir = filepath.Join(opts.TempDir, "missing")

	_, err := ComposeIncomeReport("Roots", "text", chartPNG(t), opts)

	var compErr *CompositionError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "image", compErr.Stage)
}

func TestComposeIncomeReportInvalidImage(t *testing.T) {
	opts := testOptions(t)

	_, err := ComposeIncomeReport("Roots", "text", []byte("not a png"), opts)

	var compErr *CompositionError
	require.True(t, errors.As(err, &compErr))
	entries, _ := os.ReadDir(opts.TempDir)
	assert.Empty(t, entries, "temporary chart file must be removed on failure")
}

func TestPDFGeneratorPageCount(t *testing.T) {
	g := NewPDFGenerator(testOptions(t))
	g.AddPage()
	require.NoError(t, g.AddTitle(ReportTitle("Leaves")))

	assert.Equal(t, 1, g.PageCount())

	data, err := g.OutputToBytes()
	require.NoError(t, err)
	assertTitle(t, string(data), "Leaves")
}
