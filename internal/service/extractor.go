package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"maritime-ai-server/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// TextExtractor recovers raw text from stored charter parties, choosing
// the strategy by media type.
type TextExtractor struct {
	logger domain.Logger
}

// NewTextExtractor creates a new text extractor
func NewTextExtractor(logger domain.Logger) *TextExtractor {
	return &TextExtractor{
		logger: logger,
	}
}

// Extract reads the document's text layer. Unsupported media types read as
// empty rather than failing; real read failures return an error wrapping
// ErrUnreadableDocument.
func (e *TextExtractor) Extract(ctx context.Context, doc *domain.SourceDocument) (*domain.ExtractedText, error) {
	switch doc.MediaType {
	case domain.MediaTypeText:
		return e.extractPlainText(doc)
	case domain.MediaTypePDF:
		return e.extractPDF(doc)
	default:
		return &domain.ExtractedText{Content: "", Provenance: domain.ProvenanceNone}, nil
	}
}

func (e *TextExtractor) extractPlainText(doc *domain.SourceDocument) (*domain.ExtractedText, error) {
	raw, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}

	// Lossy decode: invalid byte sequences are dropped, never fatal.
	content := string(bytes.ToValidUTF8(raw, []byte{}))

	e.logger.Debug("Extracted plain text", "filename", doc.Filename, "chars", len(content))
	return &domain.ExtractedText{Content: content, Provenance: domain.ProvenanceDirect}, nil
}

func (e *TextExtractor) extractPDF(doc *domain.SourceDocument) (*domain.ExtractedText, error) {
	raw, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}

	pdf, err := fitz.NewFromMemory(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}
	defer pdf.Close()

	var sb strings.Builder
	numPages := pdf.NumPage()
	for pageNum := 0; pageNum < numPages; pageNum++ {
		text, err := pdf.Text(pageNum)
		if err != nil {
			// A page without a readable text layer contributes nothing.
			e.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", numPages, "error", err)
			text = ""
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	e.logger.Debug("Extracted PDF text layer", "filename", doc.Filename, "pages", numPages, "chars", sb.Len())
	return &domain.ExtractedText{Content: sb.String(), Provenance: domain.ProvenanceDirect}, nil
}
