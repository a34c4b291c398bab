package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"ai-study-assistant/internal/model"
)

func renderPDF(note *model.StructuredNote) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252 only; the translator keeps curly quotes and
	// dashes from turning into garbage.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 10, tr(title(note)), "", "C", false)
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 12)

	switch note.Mode {
	case model.ModeBullets:
		for _, b := range note.Bullets {
			pdf.MultiCell(0, 8, tr("- "+b), "", "L", false)
		}
	case model.ModeFlashcards:
		for i, card := range note.Cards {
			pdf.SetFont("Arial", "B", 12)
			pdf.MultiCell(0, 8, tr(fmt.Sprintf("Q%d: %s", i+1, card.Question)), "", "L", false)
			pdf.SetFont("Arial", "", 12)
			pdf.MultiCell(0, 8, tr("A: "+card.Answer), "", "L", false)
			pdf.Ln(3)
		}
	case model.ModeMCQ:
		for i, q := range note.Questions {
			pdf.SetFont("Arial", "B", 12)
			pdf.MultiCell(0, 8, tr(fmt.Sprintf("%d. %s", i+1, q.Prompt)), "", "L", false)
			pdf.SetFont("Arial", "", 12)
			for j, opt := range q.Options {
				line := fmt.Sprintf("%s) %s", optionLetter(j), opt)
				if j == q.CorrectIndex {
					pdf.SetFont("Arial", "B", 12)
					pdf.SetTextColor(0, 102, 0)
					pdf.MultiCell(0, 8, tr(line+"  (correct)"), "", "L", false)
					pdf.SetTextColor(0, 0, 0)
					pdf.SetFont("Arial", "", 12)
				} else {
					pdf.MultiCell(0, 8, tr(line), "", "L", false)
				}
			}
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
