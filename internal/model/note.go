package model

// Mode selects the output shape of a generation request. Immutable for the
// lifetime of that request.
type Mode string

const (
	ModeBullets    Mode = "bullets"
	ModeFlashcards Mode = "flashcards"
	ModeMCQ        Mode = "mcq"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeBullets, ModeFlashcards, ModeMCQ:
		return true
	}
	return false
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type MCQuestion struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	// CorrectIndex points into Options after shuffling; the option text it
	// selects is the one the model labeled correct.
	CorrectIndex int `json:"correct_index"`
}

// StructuredNote is the parsed, mode-specific representation of the model's
// output. Exactly one of the variant slices is populated, matching Mode.
type StructuredNote struct {
	Mode      Mode         `json:"mode"`
	Bullets   []string     `json:"bullets,omitempty"`
	Cards     []Flashcard  `json:"cards,omitempty"`
	Questions []MCQuestion `json:"questions,omitempty"`
	Warnings  int          `json:"warnings"`
	Degraded  bool         `json:"degraded"`
}

// ItemCount returns the number of structured elements in the active variant.
func (n *StructuredNote) ItemCount() int {
	switch n.Mode {
	case ModeBullets:
		return len(n.Bullets)
	case ModeFlashcards:
		return len(n.Cards)
	case ModeMCQ:
		return len(n.Questions)
	}
	return 0
}

func (n *StructuredNote) Empty() bool {
	return n.ItemCount() == 0
}
