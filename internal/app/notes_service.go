package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ai-study-assistant/internal/cache"
	"ai-study-assistant/internal/export"
	"ai-study-assistant/internal/format"
	"ai-study-assistant/internal/ingest"
	"ai-study-assistant/internal/model"
	"ai-study-assistant/internal/prompt"
)

var ErrInvalidInput = errors.New("invalid input")

// Completer is the completion service seen by the pipeline; satisfied by
// *ai.Client and by fakes in tests.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NotesService runs the generation pipeline: normalize input, build the
// prompt, call the completion service, parse the response, and append the
// result to the session's history. Export renders a stored entry on demand.
type NotesService struct {
	completer     Completer
	history       cache.HistoryStore
	maxInputChars int
	logger        *zap.Logger
}

func NewNotesService(completer Completer, history cache.HistoryStore, maxInputChars int, logger *zap.Logger) *NotesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotesService{
		completer:     completer,
		history:       history,
		maxInputChars: maxInputChars,
		logger:        logger,
	}
}

type GenerateInput struct {
	SessionID string
	Text      string
	Files     []ingest.File
	Mode      model.Mode
}

// Generate runs one submission through the pipeline. Every object it creates
// belongs to this request alone; only the returned history entry outlives it,
// and only within the session.
func (s *NotesService) Generate(ctx context.Context, input GenerateInput) (*model.HistoryEntry, error) {
	if !input.Mode.Valid() {
		return nil, model.ErrUnknownMode
	}

	text, err := ingest.Normalize(input.Text, input.Files)
	if err != nil {
		return nil, err
	}

	p, err := prompt.Build(text, input.Mode, s.maxInputChars)
	if err != nil {
		return nil, err
	}
	if p.Truncated {
		s.logger.Warn("lecture text truncated to fit context budget",
			zap.String("session_id", input.SessionID),
			zap.Int("max_chars", s.maxInputChars))
	}

	raw, err := s.completer.Complete(ctx, p.Text)
	if err != nil {
		return nil, err
	}

	note, err := format.Parse(raw, input.Mode)
	if err != nil {
		return nil, err
	}
	if note.Degraded {
		s.logger.Warn("model output parsed with losses",
			zap.String("mode", string(input.Mode)),
			zap.Int("warnings", note.Warnings))
	}

	entry := model.HistoryEntry{
		ID:        uuid.NewString(),
		Mode:      input.Mode,
		Note:      *note,
		Truncated: p.Truncated,
		CreatedAt: time.Now(),
	}

	if input.SessionID != "" {
		if err := s.history.Append(ctx, input.SessionID, entry); err != nil {
			// History is a convenience; the generated note still stands.
			s.logger.Warn("append history failed", zap.Error(err))
		}
	}
	return &entry, nil
}

// History returns the session's past notes, newest first.
func (s *NotesService) History(ctx context.Context, sessionID string) ([]model.HistoryEntry, error) {
	if sessionID == "" {
		return nil, ErrInvalidInput
	}
	entries, err := s.history.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (s *NotesService) ClearHistory(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidInput
	}
	return s.history.Clear(ctx, sessionID)
}

// Export renders a stored history entry into a download artifact.
func (s *NotesService) Export(ctx context.Context, sessionID, entryID string, f model.ExportFormat) (*model.ExportArtifact, error) {
	if sessionID == "" || entryID == "" {
		return nil, ErrInvalidInput
	}
	if !f.Valid() {
		return nil, export.ErrUnknownFormat
	}
	entry, err := s.history.Get(ctx, sessionID, entryID)
	if err != nil {
		return nil, err
	}
	return export.Render(&entry.Note, f)
}
