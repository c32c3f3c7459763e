package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"blueskyvhs/internal/domain/entities"
	"blueskyvhs/internal/domain/repositories"
)

// MaxUploadBytes caps a single video upload.
const MaxUploadBytes = 20_000_000

var ErrFileTooLarge = errors.New("file too large")

// FileStore persists uploaded files under generated names.
type FileStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(name string) error
}

type VideoService struct {
	catalog repositories.VideoRepository
	files   FileStore
}

func NewVideoService(catalog repositories.VideoRepository, files FileStore) *VideoService {
	return &VideoService{catalog: catalog, files: files}
}

// Upload stores one file and records its generated name in the catalog.
// If the catalog write fails the stored file is removed again so no
// orphan is left behind; a failed removal is logged, not swallowed.
func (s *VideoService) Upload(ctx context.Context, originalName string, size int64, r io.Reader) (string, error) {
	if size > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	name, err := s.files.Save(io.LimitReader(r, MaxUploadBytes), originalName)
	if err != nil {
		return "", fmt.Errorf("storing upload: %w", err)
	}

	if err := s.catalog.Append(ctx, name); err != nil {
		if rmErr := s.files.Remove(name); rmErr != nil {
			log.Printf("could not remove %s after catalog failure: %v", name, rmErr)
		}
		return "", fmt.Errorf("recording upload: %w", err)
	}

	return name, nil
}

// List returns the catalog in append order. An empty slice means no
// videos have been uploaded yet; callers render that as an empty state.
func (s *VideoService) List(ctx context.Context) ([]entities.Video, error) {
	names, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}

	videos := make([]entities.Video, 0, len(names))
	for _, name := range names {
		videos = append(videos, entities.Video{Filename: name})
	}
	return videos, nil
}
