package domain

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// MediaType classifies an upload by how its text will be recovered.
type MediaType string

const (
	MediaTypeText  MediaType = "text"
	MediaTypePDF   MediaType = "pdf"
	MediaTypeOther MediaType = "other"
)

// MediaTypeForFilename infers the media type from the file extension.
// Unknown extensions map to MediaTypeOther and extract to empty text.
func MediaTypeForFilename(name string) MediaType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return MediaTypeText
	case ".pdf":
		return MediaTypePDF
	default:
		return MediaTypeOther
	}
}

// SourceDocument represents one stored upload. It is owned by a single
// pipeline run and never mutated after creation.
type SourceDocument struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	MediaType MediaType `json:"media_type"`
}

// Provenance records which stage produced the extracted text.
type Provenance string

const (
	ProvenanceDirect Provenance = "direct"
	ProvenanceOCR    Provenance = "ocr"
	ProvenanceNone   Provenance = "none"
)

// MinDirectChars is the minimum trimmed length of direct PDF extraction
// below which the OCR fallback takes over.
const MinDirectChars = 100

// MinSummaryChars is the minimum text length above which the AI fallback
// runs when no clause rule matched.
const MinSummaryChars = 50

// ExtractedText is the raw text recovered from a SourceDocument.
type ExtractedText struct {
	Content    string
	Provenance Provenance
}

// PipelineResult is the unit returned for one upload request. Exactly one of
// Clauses, AISummary or Note carries the summary payload. Request-scoped,
// never cached or persisted.
type PipelineResult struct {
	Filename  string
	Path      string
	Clauses   ClauseSummary
	AISummary *AISummaryResult
	Note      string
}

// Structured reports whether the result carries pattern-matched clauses.
func (r *PipelineResult) Structured() bool {
	return len(r.Clauses) > 0
}

// SummaryPayload returns the value serialized under "summary" in the upload
// response: the clause map, the AI fallback, or a plain note.
func (r *PipelineResult) SummaryPayload() interface{} {
	if r.Structured() {
		return r.Clauses
	}
	if r.AISummary != nil {
		return r.AISummary
	}
	return map[string]string{"note": r.Note}
}

// UploadResponse is the JSON body returned by the upload endpoint.
type UploadResponse struct {
	Message string      `json:"message"`
	Summary interface{} `json:"summary"`
	Path    string      `json:"path"`
}

// FileStore persists uploaded documents under a sanitized filename. The
// write completes before Save returns, so extraction can read the path
// immediately. The pipeline reads from and does not delete this location.
type FileStore interface {
	Save(ctx context.Context, filename string, file io.Reader) (*SourceDocument, error)
}

// PipelineService runs the full ingestion pipeline for one upload:
// store, extract, OCR when thin, match clauses, summarize when empty.
// It fails only when the upload cannot be stored; every later stage
// degrades into an explanatory value on the result.
type PipelineService interface {
	Process(ctx context.Context, filename string, file io.Reader) (*PipelineResult, error)
}
