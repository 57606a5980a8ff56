package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	apperrors "movie_catalog/internal/storage"

	"github.com/google/uuid"
)

// FileStorage stores uploaded images and hands back a path relative to the
// storage root.
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	GetFullPath(relativePath string) string
	BaseURL() string
	GetBaseDir() string
}

// LocalFileStorage keeps files on the local filesystem under baseDir and
// serves them under baseURL.
type LocalFileStorage struct {
	baseDir string
	baseURL string
	maxSize int64
}

// Extensions accepted for uploaded images.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

func NewLocalFileStorage(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: baseURL,
		maxSize: maxSize,
	}, nil
}

func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidFileType, ext)
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", 0, fmt.Errorf("%w: %d bytes", apperrors.ErrFileTooLarge, file.Size)
	}

	// Uploads never collide: every stored file gets a fresh name.
	storedName := uuid.New().String() + ext
	relPath := filepath.Join(subPath, storedName)
	filePath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return "", 0, fmt.Errorf("failed to write file: %w", copyErr)
		}
	case <-ctx.Done():
		_ = os.Remove(filePath)
		return "", 0, ctx.Err()
	}

	return relPath, size, nil
}

func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := s.GetFullPath(filePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, filePath)
	}

	return os.Remove(fullPath)
}

func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
