package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"maritime-ai-server/internal/domain"
)

func TestFileRepository_Save(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir, NewMockLogger())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	doc, err := repo.Save(context.Background(), "voyage-cp.txt", strings.NewReader("Laytime shall commence at 0800."))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if doc.Filename != "voyage-cp.txt" {
		t.Errorf("unexpected filename %s", doc.Filename)
	}
	if doc.Path != filepath.Join(dir, "voyage-cp.txt") {
		t.Errorf("unexpected path %s", doc.Path)
	}
	if doc.MediaType != domain.MediaTypeText {
		t.Errorf("unexpected media type %v", doc.MediaType)
	}
	if doc.Size != int64(len("Laytime shall commence at 0800.")) {
		t.Errorf("unexpected size %d", doc.Size)
	}

	data, err := os.ReadFile(doc.Path)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "Laytime shall commence at 0800." {
		t.Errorf("unexpected content %q", data)
	}
}

func TestFileRepository_Save_StripsPath(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir, NewMockLogger())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	doc, err := repo.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if doc.Filename != "passwd" {
		t.Errorf("expected sanitized filename, got %s", doc.Filename)
	}
	if doc.Path != filepath.Join(dir, "passwd") {
		t.Errorf("expected file inside upload dir, got %s", doc.Path)
	}
}

func TestFileRepository_Save_EmptyFilename(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir, NewMockLogger())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	doc, err := repo.Save(context.Background(), "  ", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if doc.Filename != "document" {
		t.Errorf("expected fallback filename, got %s", doc.Filename)
	}
}

func TestNewFileRepository_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	if _, err := NewFileRepository(dir, NewMockLogger()); err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected upload directory to exist: %v", err)
	}
}
