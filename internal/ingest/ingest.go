// Package ingest normalizes a submission (pasted lecture text and/or uploaded
// PDFs) into the single plain-text string the rest of the pipeline consumes.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ai-study-assistant/internal/pkg/pdfextract"
)

var (
	ErrNoSource   = errors.New("no lecture text or PDF provided")
	ErrInvalidPDF = errors.New("file is not a valid PDF")
)

// InvalidPDFError names the uploaded file that failed to parse. It matches
// ErrInvalidPDF under errors.Is; the parser's cause stays internal for logs.
type InvalidPDFError struct {
	Filename string
	Cause    error
}

func (e *InvalidPDFError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Filename, ErrInvalidPDF, e.Cause)
}

func (e *InvalidPDFError) Unwrap() error { return ErrInvalidPDF }

// File is one uploaded document, in upload order.
type File struct {
	Name   string
	Reader io.Reader
}

// Normalize concatenates the pasted text and every uploaded PDF's pages, in
// input order, into one string. Pages without extractable text contribute an
// empty segment. An unparseable file fails the whole submission with
// ErrInvalidPDF; both sources empty fails with ErrNoSource.
func Normalize(text string, files []File) (string, error) {
	var segments []string

	if trimmed := strings.TrimSpace(text); trimmed != "" {
		segments = append(segments, trimmed)
	}

	for _, f := range files {
		pages, err := pdfextract.ExtractPages(f.Reader)
		if err != nil {
			return "", &InvalidPDFError{Filename: f.Name, Cause: err}
		}
		for _, page := range pages {
			segments = append(segments, strings.TrimSpace(page))
		}
	}

	combined := strings.TrimSpace(strings.Join(segments, "\n"))
	if combined == "" {
		return "", ErrNoSource
	}
	return combined, nil
}
