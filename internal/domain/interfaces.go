package domain

import "context"

// TextExtractor recovers raw text from a stored document, choosing the
// strategy by media type. A failed read surfaces as an error; the pipeline
// converts it into a degraded ExtractedText rather than aborting.
type TextExtractor interface {
	Extract(ctx context.Context, doc *SourceDocument) (*ExtractedText, error)
}

// OCREngine rasterizes a stored PDF and recognizes text page by page.
// Invoked only when direct extraction yields fewer than MinDirectChars;
// its output replaces, not appends to, the direct result.
type OCREngine interface {
	Recognize(ctx context.Context, doc *SourceDocument) (*ExtractedText, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetCORSOrigins() []string
}
