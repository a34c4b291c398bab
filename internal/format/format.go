// Package format parses raw completion text into a StructuredNote. Parsing
// is tolerant: the prompt pins a shape, but model output drifts, so deviant
// segments are recovered where possible and otherwise dropped with a warning
// counted on the note.
package format

import (
	"math/rand"
	"regexp"
	"strings"

	"ai-study-assistant/internal/model"
)

var (
	bulletPrefix   = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	questionNumber = regexp.MustCompile(`^\s*(?:Question\s+)?\d+[.):]\s*`)
	optionLabel    = regexp.MustCompile(`^\s*([A-Da-d])[.):]\s*`)
	answerLine     = regexp.MustCompile(`(?i)^\s*\**\s*answer\s*[:：]\s*\**\s*([A-Da-d])\b`)
)

// Parse converts raw model output into the StructuredNote variant for mode.
// It never fails on deviant output; quality loss is reported through the
// note's Warnings count and Degraded flag.
func Parse(raw string, mode model.Mode) (*model.StructuredNote, error) {
	note := &model.StructuredNote{Mode: mode}
	switch mode {
	case model.ModeBullets:
		parseBullets(raw, note)
	case model.ModeFlashcards:
		parseFlashcards(raw, note)
	case model.ModeMCQ:
		parseMCQ(raw, note)
		shuffleOptions(note)
	default:
		return nil, model.ErrUnknownMode
	}
	note.Degraded = note.Warnings > 0
	return note, nil
}

func parseBullets(raw string, note *model.StructuredNote) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if loc := bulletPrefix.FindStringIndex(line); loc != nil {
			note.Bullets = append(note.Bullets, strings.TrimSpace(line[loc[1]:]))
			continue
		}
		// Unmarked line: keep it as a bullet but flag the deviation.
		note.Bullets = append(note.Bullets, stripEmphasis(line))
		note.Warnings++
	}
}

func parseFlashcards(raw string, note *model.StructuredNote) {
	var question, answer strings.Builder
	state := 0 // 0 = outside, 1 = in question, 2 = in answer

	flush := func() {
		q := strings.TrimSpace(question.String())
		a := strings.TrimSpace(answer.String())
		question.Reset()
		answer.Reset()
		if q == "" && a == "" {
			return
		}
		if q == "" || a == "" {
			// Half a card is useless; drop it but record the loss.
			note.Warnings++
			return
		}
		note.Cards = append(note.Cards, model.Flashcard{Question: q, Answer: a})
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case hasFoldPrefix(line, "Q:"):
			flush()
			question.WriteString(strings.TrimSpace(line[2:]))
			state = 1
		case hasFoldPrefix(line, "A:"):
			answer.WriteString(strings.TrimSpace(line[2:]))
			state = 2
		case line == "":
			continue
		case state == 1:
			question.WriteString(" " + line)
		case state == 2:
			answer.WriteString(" " + line)
		default:
			// Text before any Q:/A: structure.
			note.Warnings++
		}
	}
	flush()
}

type mcqBlock struct {
	prompt        string
	options       []string
	correctLetter int // -1 when no answer label seen
	boldOption    int // option wrapped in ** markers, -1 if none/ambiguous
}

func parseMCQ(raw string, note *model.StructuredNote) {
	var block *mcqBlock

	flush := func() {
		if block == nil {
			return
		}
		defer func() { block = nil }()

		correct := block.correctLetter
		if correct < 0 {
			// Fall back to the single bold option, the layout the original
			// prompt asked for.
			correct = block.boldOption
		}
		if block.prompt == "" || len(block.options) < 2 || correct < 0 || correct >= len(block.options) {
			note.Warnings++
			return
		}
		note.Questions = append(note.Questions, model.MCQuestion{
			Prompt:       block.prompt,
			Options:      block.options,
			CorrectIndex: correct,
		})
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := answerLine.FindStringSubmatch(line); m != nil && block != nil {
			letter := int(strings.ToUpper(m[1])[0] - 'A')
			block.correctLetter = letter
			flush()
			continue
		}

		if m := optionLabel.FindStringSubmatch(line); m != nil && block != nil {
			text := strings.TrimSpace(line[len(m[0]):])
			if isBold(text) {
				if block.boldOption == -1 {
					block.boldOption = len(block.options)
				} else {
					block.boldOption = -2 // more than one bold option, ambiguous
				}
			}
			block.options = append(block.options, stripEmphasis(text))
			continue
		}

		if loc := questionNumber.FindStringIndex(line); loc != nil {
			flush()
			block = &mcqBlock{
				prompt:        stripEmphasis(strings.TrimSpace(line[loc[1]:])),
				correctLetter: -1,
				boldOption:    -1,
			}
			continue
		}

		if block != nil && len(block.options) == 0 {
			// Question text wrapping onto a second line.
			block.prompt += " " + stripEmphasis(line)
			continue
		}
		note.Warnings++
	}
	flush()
}

// shuffleOptions randomizes option order per question with a uniform shuffle
// and repoints CorrectIndex at the correct answer's new position. The correct
// answer's text is the invariant, not its index.
func shuffleOptions(note *model.StructuredNote) {
	for i := range note.Questions {
		q := &note.Questions[i]
		perm := rand.Perm(len(q.Options))
		shuffled := make([]string, len(q.Options))
		orig := q.CorrectIndex
		for from, to := range perm {
			shuffled[to] = q.Options[from]
			if from == orig {
				q.CorrectIndex = to
			}
		}
		q.Options = shuffled
	}
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isBold(s string) bool {
	return strings.HasPrefix(s, "**") && strings.HasSuffix(s, "**") && len(s) > 4
}

func stripEmphasis(s string) string {
	return strings.TrimSpace(strings.Trim(s, "*"))
}
