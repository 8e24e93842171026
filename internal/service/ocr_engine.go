package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"maritime-ai-server/internal/domain"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/sync/errgroup"
)

// OCROptions configures the recognition engine.
type OCROptions struct {
	TesseractPath string
	Language      string
	DPI           int
	Workers       int
}

// OCREngine rasterizes PDF pages and recognizes their text with tesseract.
// Pages are recognized in parallel with bounded concurrency; output order
// follows page order regardless of completion order.
type OCREngine struct {
	runner Runner
	opts   OCROptions
	logger domain.Logger

	// Overridable in tests to avoid rendering real PDFs.
	rasterize func(pdfBytes []byte, dpi int) ([][]byte, error)
}

// NewOCREngine creates a new OCR engine
func NewOCREngine(runner Runner, opts OCROptions, logger domain.Logger) *OCREngine {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.DPI < 1 {
		opts.DPI = 300
	}
	if opts.Language == "" {
		opts.Language = "eng"
	}
	if opts.TesseractPath == "" {
		opts.TesseractPath = "tesseract"
	}
	return &OCREngine{
		runner:    runner,
		opts:      opts,
		logger:    logger,
		rasterize: rasterizePDF,
	}
}

// Recognize OCRs every page of the document and concatenates the results,
// one trailing newline per page.
func (e *OCREngine) Recognize(ctx context.Context, doc *domain.SourceDocument) (*domain.ExtractedText, error) {
	raw, err := os.ReadFile(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}

	pages, err := e.rasterize(raw, e.opts.DPI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}
	if len(pages) == 0 {
		return &domain.ExtractedText{Content: "", Provenance: domain.ProvenanceOCR}, nil
	}

	tmpDir, err := os.MkdirTemp("", "cp-ocr-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}
	defer os.RemoveAll(tmpDir)

	imagePaths := make([]string, len(pages))
	for i, img := range pages {
		path := filepath.Join(tmpDir, fmt.Sprintf("page-%04d.png", i+1))
		if err := os.WriteFile(path, img, 0o600); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
		}
		imagePaths[i] = path
	}

	e.logger.Info("Running OCR", "filename", doc.Filename, "pages", len(pages), "workers", e.opts.Workers)

	results := make([]string, len(pages))
	sem := make(chan struct{}, e.opts.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range imagePaths {
		i := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			out, err := e.runner.Run(gctx, e.opts.TesseractPath, imagePaths[i], "stdout", "-l", e.opts.Language, "--psm", "3")
			if err != nil {
				return fmt.Errorf("ocr failed on page %d: %w", i+1, err)
			}
			results[i] = string(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}

	var sb strings.Builder
	for _, text := range results {
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return &domain.ExtractedText{Content: sb.String(), Provenance: domain.ProvenanceOCR}, nil
}

// rasterizePDF renders each page to a PNG at the given DPI.
func rasterizePDF(pdfBytes []byte, dpi int) ([][]byte, error) {
	pdf, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer pdf.Close()

	numPages := pdf.NumPage()
	pages := make([][]byte, 0, numPages)
	for i := 0; i < numPages; i++ {
		img, err := pdf.ImagePNG(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("failed to rasterize page %d: %w", i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
