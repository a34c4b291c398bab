package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF renders one page per entry of pageTexts; empty entries become
// blank pages.
func buildPDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Arial", "", 12)
	for _, text := range pageTexts {
		doc.AddPage()
		if text != "" {
			doc.MultiCell(0, 8, text, "", "L", false)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestNormalizeTextOnly(t *testing.T) {
	got, err := Normalize("  Cell division occurs in two phases.  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Cell division occurs in two phases.", got)
}

func TestNormalizeEmptyFailsBeforeAnythingElse(t *testing.T) {
	_, err := Normalize("   ", nil)
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = Normalize("", []File{})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestNormalizePDFPagesInOrder(t *testing.T) {
	pdfBytes := buildPDF(t, "alpha page", "beta page")

	got, err := Normalize("", []File{{Name: "lecture.pdf", Reader: bytes.NewReader(pdfBytes)}})
	require.NoError(t, err)

	first := strings.Index(got, "alpha page")
	second := strings.Index(got, "beta page")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second, "page order must be preserved")
}

func TestNormalizeBlankPageDoesNotFail(t *testing.T) {
	pdfBytes := buildPDF(t, "before", "", "after")

	got, err := Normalize("", []File{{Name: "lecture.pdf", Reader: bytes.NewReader(pdfBytes)}})
	require.NoError(t, err)
	assert.Contains(t, got, "before")
	assert.Contains(t, got, "after")
}

func TestNormalizeTextPrecedesFiles(t *testing.T) {
	pdfBytes := buildPDF(t, "from the pdf")

	got, err := Normalize("pasted text", []File{{Name: "lecture.pdf", Reader: bytes.NewReader(pdfBytes)}})
	require.NoError(t, err)
	assert.Less(t, strings.Index(got, "pasted text"), strings.Index(got, "from the pdf"))
}

func TestNormalizeMultipleFilesUploadOrder(t *testing.T) {
	one := buildPDF(t, "first file")
	two := buildPDF(t, "second file")

	got, err := Normalize("", []File{
		{Name: "one.pdf", Reader: bytes.NewReader(one)},
		{Name: "two.pdf", Reader: bytes.NewReader(two)},
	})
	require.NoError(t, err)
	assert.Less(t, strings.Index(got, "first file"), strings.Index(got, "second file"))
}

func TestNormalizeInvalidPDF(t *testing.T) {
	_, err := Normalize("", []File{{Name: "bogus.pdf", Reader: strings.NewReader("this is not a pdf")}})
	assert.ErrorIs(t, err, ErrInvalidPDF)

	var invalid *InvalidPDFError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "bogus.pdf", invalid.Filename)
	assert.Error(t, invalid.Cause)
}
