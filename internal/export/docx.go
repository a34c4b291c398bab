package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"ai-study-assistant/internal/model"
)

func renderDOCX(note *model.StructuredNote) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	heading := doc.AddParagraph().Justification("center")
	heading.AddText(title(note)).Size("32").Bold()
	doc.AddParagraph()

	switch note.Mode {
	case model.ModeBullets:
		for _, b := range note.Bullets {
			doc.AddParagraph().AddText("- " + b)
		}
	case model.ModeFlashcards:
		for i, card := range note.Cards {
			doc.AddParagraph().AddText(fmt.Sprintf("Q%d: %s", i+1, card.Question)).Bold()
			doc.AddParagraph().AddText("A: " + card.Answer)
			doc.AddParagraph()
		}
	case model.ModeMCQ:
		for i, q := range note.Questions {
			doc.AddParagraph().AddText(fmt.Sprintf("%d. %s", i+1, q.Prompt)).Bold()
			for j, opt := range q.Options {
				line := fmt.Sprintf("%s) %s", optionLetter(j), opt)
				if j == q.CorrectIndex {
					doc.AddParagraph().AddText(line + "  (correct)").Bold().Color("006600")
				} else {
					doc.AddParagraph().AddText(line)
				}
			}
			doc.AddParagraph()
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
