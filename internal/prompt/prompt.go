// Package prompt maps normalized lecture text plus an output mode to the
// instruction sent to the completion service.
package prompt

import (
	"unicode/utf8"

	"ai-study-assistant/internal/model"
)

// TruncationMarker is appended whenever input is cut to fit the context
// budget, so truncation is visible in the prompt itself.
const TruncationMarker = "\n[... lecture truncated to fit the model context ...]"

const (
	bulletsTemplate = "Summarize the lecture into concise bullet points. " +
		"Write one bullet per line, each starting with \"- \".\n\nLecture:\n"

	flashcardsTemplate = "Convert the lecture into question-answer flashcards. " +
		"Write each card as two lines, \"Q: <question>\" then \"A: <answer>\".\n\nLecture:\n"

	mcqTemplate = "Generate 5 multiple-choice questions from the lecture. " +
		"Number each question. Give exactly 4 options labeled \"A)\" to \"D)\", " +
		"one per line, with exactly one correct option, then a final line " +
		"\"Answer: <letter>\".\n\nLecture:\n"
)

// Prompt is the deterministic result of building an instruction for one
// request. Truncated reports whether the lecture text was cut to fit.
type Prompt struct {
	Text      string
	Mode      model.Mode
	Truncated bool
}

// Build renders the mode's instruction template around the lecture text.
// Input longer than maxChars is truncated from the end and marked; the
// caller always learns about it via Truncated.
func Build(text string, mode model.Mode, maxChars int) (Prompt, error) {
	var template string
	switch mode {
	case model.ModeBullets:
		template = bulletsTemplate
	case model.ModeFlashcards:
		template = flashcardsTemplate
	case model.ModeMCQ:
		template = mcqTemplate
	default:
		return Prompt{}, model.ErrUnknownMode
	}

	truncated := false
	if maxChars > 0 && len(text) > maxChars {
		text = cutAtRune(text, maxChars) + TruncationMarker
		truncated = true
	}

	return Prompt{
		Text:      template + text,
		Mode:      mode,
		Truncated: truncated,
	}, nil
}

// cutAtRune truncates s to at most max bytes without splitting a UTF-8
// sequence.
func cutAtRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 {
		r, size := utf8.DecodeLastRuneInString(cut)
		if r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return cut
}
