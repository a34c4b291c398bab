package model

import "time"

// HistoryEntry is one generated note in a session's history. Entries are
// append-only and scoped to a single session; they do not survive it.
type HistoryEntry struct {
	ID        string         `json:"id"`
	Mode      Mode           `json:"mode"`
	Note      StructuredNote `json:"note"`
	Truncated bool           `json:"truncated"`
	CreatedAt time.Time      `json:"created_at"`
}

// ExportFormat names a downloadable rendering of a StructuredNote.
type ExportFormat string

const (
	FormatPDF  ExportFormat = "pdf"
	FormatDOCX ExportFormat = "docx"
)

func (f ExportFormat) Valid() bool {
	return f == FormatPDF || f == FormatDOCX
}

// ExportArtifact is a rendered download. Never mutated after creation.
type ExportArtifact struct {
	Format   ExportFormat
	Filename string
	MIME     string
	Bytes    []byte
}
