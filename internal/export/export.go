// Package export renders a StructuredNote into a downloadable PDF or DOCX
// artifact.
package export

import (
	"errors"
	"fmt"

	"ai-study-assistant/internal/model"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrEmptyNote     = errors.New("nothing to export")
	ErrUnknownFormat = errors.New("unknown export format")
)

var modeTitles = map[model.Mode]string{
	model.ModeBullets:    "Study Notes: Summary",
	model.ModeFlashcards: "Study Notes: Flashcards",
	model.ModeMCQ:        "Study Notes: Multiple-Choice Questions",
}

// Render serializes the note into the requested format. An empty note is
// refused so a zero-byte artifact can never be produced.
func Render(note *model.StructuredNote, format model.ExportFormat) (*model.ExportArtifact, error) {
	if note == nil || note.Empty() {
		return nil, ErrEmptyNote
	}

	var (
		data []byte
		mime string
		err  error
	)
	switch format {
	case model.FormatPDF:
		data, err = renderPDF(note)
		mime = MIMEPDF
	case model.FormatDOCX:
		data, err = renderDOCX(note)
		mime = MIMEDOCX
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("render %s failed: %w", format, err)
	}

	return &model.ExportArtifact{
		Format:   format,
		Filename: "study_notes." + string(format),
		MIME:     mime,
		Bytes:    data,
	}, nil
}

func title(note *model.StructuredNote) string {
	if t, ok := modeTitles[note.Mode]; ok {
		return t
	}
	return "Study Notes"
}

// optionLetter labels options A, B, C, ... in rendered output.
func optionLetter(i int) string {
	return string(rune('A' + i))
}
