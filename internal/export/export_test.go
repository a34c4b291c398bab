package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-study-assistant/internal/model"
	"ai-study-assistant/internal/pkg/pdfextract"
)

func bulletsNote() *model.StructuredNote {
	return &model.StructuredNote{
		Mode:    model.ModeBullets,
		Bullets: []string{"Mitosis has four phases", "Prophase comes first", "Telophase ends it"},
	}
}

func flashcardsNote() *model.StructuredNote {
	return &model.StructuredNote{
		Mode: model.ModeFlashcards,
		Cards: []model.Flashcard{
			{Question: "What is mitosis?", Answer: "Division producing identical cells."},
			{Question: "What is meiosis?", Answer: "Division producing gametes."},
		},
	}
}

func mcqNote() *model.StructuredNote {
	return &model.StructuredNote{
		Mode: model.ModeMCQ,
		Questions: []model.MCQuestion{
			{Prompt: "Which phase starts mitosis?", Options: []string{"Metaphase", "Prophase", "Anaphase"}, CorrectIndex: 1},
			{Prompt: "What does cytokinesis divide?", Options: []string{"The cytoplasm", "The nucleus"}, CorrectIndex: 0},
		},
	}
}

// pdfText extracts all text from a rendered PDF artifact.
func pdfText(t *testing.T, data []byte) string {
	t.Helper()
	pages, err := pdfextract.ExtractPages(bytes.NewReader(data))
	require.NoError(t, err)
	return strings.Join(pages, "\n")
}

// docxText pulls the main document XML out of a rendered DOCX artifact.
func docxText(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(raw)
	}
	t.Fatal("word/document.xml not found in archive")
	return ""
}

func TestRenderEmptyNote(t *testing.T) {
	for _, format := range []model.ExportFormat{model.FormatPDF, model.FormatDOCX} {
		t.Run(string(format), func(t *testing.T) {
			_, err := Render(&model.StructuredNote{Mode: model.ModeBullets}, format)
			assert.ErrorIs(t, err, ErrEmptyNote)

			_, err = Render(nil, format)
			assert.ErrorIs(t, err, ErrEmptyNote)
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(bulletsNote(), model.ExportFormat("odt"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderPDFBullets(t *testing.T) {
	note := bulletsNote()
	artifact, err := Render(note, model.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "study_notes.pdf", artifact.Filename)
	assert.Equal(t, MIMEPDF, artifact.MIME)
	assert.NotEmpty(t, artifact.Bytes)

	text := pdfText(t, artifact.Bytes)
	for _, b := range note.Bullets {
		assert.Contains(t, text, b)
	}
	// Same item count in, same item count out.
	assert.Equal(t, len(note.Bullets), strings.Count(text, "- "))
}

func TestRenderPDFFlashcards(t *testing.T) {
	note := flashcardsNote()
	artifact, err := Render(note, model.FormatPDF)
	require.NoError(t, err)

	text := pdfText(t, artifact.Bytes)
	for _, card := range note.Cards {
		assert.Contains(t, text, card.Question)
		assert.Contains(t, text, card.Answer)
	}
	assert.Equal(t, len(note.Cards), strings.Count(text, "A: "))
}

func TestRenderPDFMCQHighlightsCorrect(t *testing.T) {
	note := mcqNote()
	artifact, err := Render(note, model.FormatPDF)
	require.NoError(t, err)

	text := pdfText(t, artifact.Bytes)
	for _, q := range note.Questions {
		assert.Contains(t, text, q.Prompt)
		for _, opt := range q.Options {
			assert.Contains(t, text, opt)
		}
	}
	assert.Equal(t, len(note.Questions), strings.Count(text, "(correct)"))
}

func TestRenderDOCXBullets(t *testing.T) {
	note := bulletsNote()
	artifact, err := Render(note, model.FormatDOCX)
	require.NoError(t, err)

	assert.Equal(t, "study_notes.docx", artifact.Filename)
	assert.Equal(t, MIMEDOCX, artifact.MIME)
	assert.NotEmpty(t, artifact.Bytes)

	xml := docxText(t, artifact.Bytes)
	for _, b := range note.Bullets {
		assert.Contains(t, xml, b)
	}
	assert.Equal(t, len(note.Bullets), strings.Count(xml, "- "))
}

func TestRenderDOCXFlashcards(t *testing.T) {
	note := flashcardsNote()
	artifact, err := Render(note, model.FormatDOCX)
	require.NoError(t, err)

	xml := docxText(t, artifact.Bytes)
	for _, card := range note.Cards {
		assert.Contains(t, xml, card.Question)
		assert.Contains(t, xml, card.Answer)
	}
	assert.Equal(t, len(note.Cards), strings.Count(xml, "A: "))
}

func TestRenderDOCXMCQ(t *testing.T) {
	note := mcqNote()
	artifact, err := Render(note, model.FormatDOCX)
	require.NoError(t, err)

	xml := docxText(t, artifact.Bytes)
	for _, q := range note.Questions {
		assert.Contains(t, xml, q.Prompt)
	}
	assert.Equal(t, len(note.Questions), strings.Count(xml, "(correct)"))
}
