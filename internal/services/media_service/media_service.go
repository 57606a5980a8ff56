package services

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"

	"movie_catalog/internal/lib/logger/sl"
	storage "movie_catalog/internal/storage/filestorage"
)

type MediaService struct {
	log         *slog.Logger
	fileStorage storage.FileStorage
}

func NewMediaService(log *slog.Logger, fileStorage storage.FileStorage) *MediaService {
	return &MediaService{
		log:         log,
		fileStorage: fileStorage,
	}
}

// UploadImage stores an uploaded image and returns its public URL.
func (s *MediaService) UploadImage(ctx context.Context, file *multipart.FileHeader, subPath string) (string, error) {
	const op = "media_service.UploadImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filename", file.Filename),
	)

	relPath, size, err := s.fileStorage.Save(ctx, file, subPath)
	if err != nil {
		log.Error("failed to save file", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image uploaded",
		slog.String("path", relPath),
		slog.Int64("size", size),
	)

	return s.fileStorage.BaseURL() + "/" + filepath.ToSlash(relPath), nil
}
