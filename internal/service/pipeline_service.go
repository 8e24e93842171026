package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"maritime-ai-server/internal/domain"
)

// noStructuredMatchNote flags an AI summary as the unstructured fallback.
const noStructuredMatchNote = "No structured clauses matched with regex."

// noContentNote is the terminal note when a document carried too little
// text to match or summarize.
const noContentNote = "No content extracted"

// PipelineService runs the charter party ingestion pipeline: store the
// upload, extract its text, fall back to OCR for thin PDF text layers,
// match clause rules, and summarize with an LLM when nothing matched.
// Every stage after storage degrades into an explanatory value instead of
// failing, so the caller always receives a completed result.
type PipelineService struct {
	store      domain.FileStore
	extractor  domain.TextExtractor
	ocr        domain.OCREngine
	matcher    domain.ClauseMatcher
	summarizer domain.Summarizer
	logger     domain.Logger
}

// NewPipelineService creates a new ingestion pipeline
func NewPipelineService(
	store domain.FileStore,
	extractor domain.TextExtractor,
	ocr domain.OCREngine,
	matcher domain.ClauseMatcher,
	summarizer domain.Summarizer,
	logger domain.Logger,
) *PipelineService {
	return &PipelineService{
		store:      store,
		extractor:  extractor,
		ocr:        ocr,
		matcher:    matcher,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Process ingests one upload. It returns an error only when the file
// cannot be stored; extraction, OCR and summarization failures degrade
// into the result.
func (s *PipelineService) Process(ctx context.Context, filename string, file io.Reader) (*domain.PipelineResult, error) {
	doc, err := s.store.Save(ctx, filename, file)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Pipeline received document", "filename", doc.Filename, "size", doc.Size, "media_type", doc.MediaType)

	text := s.extract(ctx, doc)
	s.logger.Debug("Pipeline extracted text", "filename", doc.Filename, "provenance", text.Provenance, "chars", utf8.RuneCountInString(text.Content))

	summary := s.matcher.Match(text.Content)
	s.logger.Debug("Pipeline matched clauses", "filename", doc.Filename, "labels", len(summary))

	result := &domain.PipelineResult{
		Filename: doc.Filename,
		Path:     doc.Path,
		Clauses:  summary,
	}

	if summary.IsEmpty() {
		if utf8.RuneCountInString(text.Content) > domain.MinSummaryChars {
			result.AISummary = &domain.AISummaryResult{
				Note:       noStructuredMatchNote,
				LLMSummary: s.summarizer.SummarizeContract(ctx, text.Content),
			}
		} else {
			result.Note = noContentNote
		}
	}

	s.logger.Info("Pipeline completed", "filename", doc.Filename, "structured", result.Structured())
	return result, nil
}

// extract recovers the document text, replacing a thin direct PDF text
// layer with OCR output. Failures degrade into a literal message tagged
// with no provenance.
func (s *PipelineService) extract(ctx context.Context, doc *domain.SourceDocument) *domain.ExtractedText {
	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		s.logger.Error("Extraction failed", err, "filename", doc.Filename)
		return degrade(err)
	}

	if doc.MediaType == domain.MediaTypePDF && text.Provenance == domain.ProvenanceDirect &&
		utf8.RuneCountInString(strings.TrimSpace(text.Content)) < domain.MinDirectChars {
		s.logger.Info("Direct extraction too thin, falling back to OCR", "filename", doc.Filename)
		ocrText, err := s.ocr.Recognize(ctx, doc)
		if err != nil {
			s.logger.Error("OCR failed", err, "filename", doc.Filename)
			return degrade(err)
		}
		return ocrText
	}
	return text
}

// degrade converts an extraction failure into the literal message shown
// to the end user in place of document text.
func degrade(err error) *domain.ExtractedText {
	return &domain.ExtractedText{
		Content:    fmt.Sprintf("(Could not extract text: %v)", err),
		Provenance: domain.ProvenanceNone,
	}
}
