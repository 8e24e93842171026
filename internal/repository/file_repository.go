package repository

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"maritime-ai-server/internal/domain"
	apperrors "maritime-ai-server/pkg/errors"
)

// FileRepository stores uploaded charter parties on local disk.
type FileRepository struct {
	uploadPath string
	logger     domain.Logger
}

// NewFileRepository creates the upload directory if missing and returns
// a store rooted there.
func NewFileRepository(uploadPath string, logger domain.Logger) (*FileRepository, error) {
	if err := os.MkdirAll(uploadPath, 0o755); err != nil {
		return nil, apperrors.NewStorageError("failed to create upload directory", err)
	}
	return &FileRepository{
		uploadPath: uploadPath,
		logger:     logger,
	}, nil
}

// Save writes the uploaded file under the upload directory and returns the
// stored document. Re-uploading the same filename overwrites the previous
// copy.
func (r *FileRepository) Save(ctx context.Context, filename string, file io.Reader) (*domain.SourceDocument, error) {
	name := strings.TrimSpace(filepath.Base(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document"
	}

	path := filepath.Join(r.uploadPath, name)
	dst, err := os.Create(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create file", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to write file", err)
	}

	r.logger.Info("File stored", "filename", name, "size", size)

	return &domain.SourceDocument{
		Filename:  name,
		Path:      path,
		Size:      size,
		MediaType: domain.MediaTypeForFilename(name),
	}, nil
}
