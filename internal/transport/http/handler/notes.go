package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ai-study-assistant/internal/ai"
	appsvc "ai-study-assistant/internal/app"
	"ai-study-assistant/internal/cache"
	"ai-study-assistant/internal/export"
	"ai-study-assistant/internal/ingest"
	"ai-study-assistant/internal/model"
	"ai-study-assistant/internal/transport/http/middleware"
	"ai-study-assistant/internal/transport/http/response"
)

type NotesHandler struct {
	notesService *appsvc.NotesService
	maxPDFBytes  int64
}

func NewNotesHandler(notesService *appsvc.NotesService, maxPDFBytes int64) *NotesHandler {
	return &NotesHandler{notesService: notesService, maxPDFBytes: maxPDFBytes}
}

// Generate accepts a multipart submission with "lecture_text", repeatable
// "pdf_file" uploads, and "mode", runs the pipeline, and returns the
// structured note.
func (h *NotesHandler) Generate(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}

	mode, ok := parseMode(c.PostForm("mode"))
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeUnknownMode, "mode must be one of bullets, flashcards, mcq")
		return
	}

	var files []ingest.File
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["pdf_file"] {
			if fh.Size > h.maxPDFBytes {
				response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge,
					fmt.Sprintf("%s exceeds the %d MB upload limit", fh.Filename, h.maxPDFBytes>>20))
				return
			}
			f, err := fh.Open()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read upload")
				return
			}
			defer f.Close()
			files = append(files, ingest.File{Name: fh.Filename, Reader: f})
		}
	}

	entry, err := h.notesService.Generate(c.Request.Context(), appsvc.GenerateInput{
		SessionID: sessionID,
		Text:      c.PostForm("lecture_text"),
		Files:     files,
		Mode:      mode,
	})
	if err != nil {
		writeGenerateError(c, err)
		return
	}
	response.OK(c, entry)
}

func (h *NotesHandler) History(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}
	entries, err := h.notesService.History(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list history failed")
		return
	}
	response.OK(c, entries)
}

func (h *NotesHandler) ClearHistory(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}
	if err := h.notesService.ClearHistory(c.Request.Context(), sessionID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "clear history failed")
		return
	}
	response.OK(c, gin.H{"cleared": true})
}

// Export renders a stored note as PDF or DOCX and streams it as a download.
func (h *NotesHandler) Export(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return
	}
	entryID := c.Param("id")

	format := model.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(model.FormatPDF))))
	artifact, err := h.notesService.Export(c.Request.Context(), sessionID, entryID, format)
	if err != nil {
		switch {
		case errors.Is(err, cache.ErrEntryNotFound):
			response.Error(c, http.StatusNotFound, response.CodeEntryNotFound, "note not found in this session")
		case errors.Is(err, export.ErrEmptyNote):
			response.Error(c, http.StatusBadRequest, response.CodeEmptyExport, "note has no content to export")
		case errors.Is(err, export.ErrUnknownFormat):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "format must be pdf or docx")
		case errors.Is(err, appsvc.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid export request")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "export failed")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.MIME, artifact.Bytes)
}

func writeGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrNoSource):
		response.Error(c, http.StatusBadRequest, response.CodeNoSource, "please provide lecture text or upload at least one PDF")
	case errors.Is(err, ingest.ErrInvalidPDF):
		msg := "one of the uploaded files is not a readable PDF"
		var invalid *ingest.InvalidPDFError
		if errors.As(err, &invalid) {
			msg = fmt.Sprintf("%s is not a readable PDF", invalid.Filename)
		}
		response.Error(c, http.StatusBadRequest, response.CodeInvalidPDF, msg)
	case errors.Is(err, model.ErrUnknownMode):
		response.Error(c, http.StatusBadRequest, response.CodeUnknownMode, "mode must be one of bullets, flashcards, mcq")
	case errors.Is(err, ai.ErrAuth):
		response.Error(c, http.StatusBadGateway, response.CodeUpstreamAuth, "completion service rejected the configured API key")
	case errors.Is(err, ai.ErrTimeout):
		response.Error(c, http.StatusGatewayTimeout, response.CodeUpstreamTimeout, "completion service timed out")
	case errors.Is(err, ai.ErrTransient):
		response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamUnavailable, "completion service unavailable, please retry")
	case errors.Is(err, ai.ErrBadRequest), errors.Is(err, ai.ErrEmptyCompletion):
		response.Error(c, http.StatusBadGateway, response.CodeUpstreamUnavailable, "completion service returned an unusable response")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generate notes failed")
	}
}

func getSessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.ContextSessionIDKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// parseMode accepts the canonical mode names plus the labels the original
// web form used.
func parseMode(raw string) (model.Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bullets", "bullet points", "summary":
		return model.ModeBullets, true
	case "flashcards":
		return model.ModeFlashcards, true
	case "mcq", "mcqs", "multiple-choice questions":
		return model.ModeMCQ, true
	}
	return "", false
}
