// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"maritime-ai-server/internal/domain"
)

// UploadHandler handles charter party uploads and runs them through the
// ingestion pipeline.
type UploadHandler struct {
	pipeline    domain.PipelineService
	maxFileSize int64
	logger      domain.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(pipeline domain.PipelineService, maxFileSize int64, logger domain.Logger) *UploadHandler {
	return &UploadHandler{
		pipeline:    pipeline,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// UploadCP accepts a multipart upload under the "file" field and answers
// with the pipeline result. The pipeline degrades extraction and
// summarization failures into the response body, so anything past upload
// validation answers 200.
func (h *UploadHandler) UploadCP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	filename := strings.TrimSpace(filepath.Base(header.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}

	if header.Size > h.maxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
		return
	}

	result, err := h.pipeline.Process(r.Context(), filename, file)
	if err != nil {
		h.logger.Error("Failed to process upload", err, "filename", filename)
		writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}

	writeJSON(w, http.StatusOK, domain.UploadResponse{
		Message: fmt.Sprintf("File %s uploaded successfully!", result.Filename),
		Summary: result.SummaryPayload(),
		Path:    result.Path,
	})
}

func (h *UploadHandler) tooLargeMessage() string {
	return fmt.Sprintf("File too large. Maximum size is %dMB.", h.maxFileSize>>20)
}
