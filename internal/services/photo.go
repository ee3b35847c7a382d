package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsexpress/internal/domain"
)

type photoService struct {
	photoRepo domain.PhotoRepository
}

// NewPhotoService creates the photo metadata collaborator. It stores and
// removes references only; the image bytes are managed elsewhere.
func NewPhotoService(photoRepo domain.PhotoRepository) domain.PhotoService {
	return &photoService{photoRepo: photoRepo}
}

func (s *photoService) AddPhoto(ctx context.Context, upload *domain.PhotoUpload) (*domain.Photo, error) {
	if upload == nil || upload.Path == "" {
		return nil, domain.NewError(domain.ErrValidation, "photo", "photo path is required")
	}
	photo := &domain.Photo{Path: upload.Path, CreatedAt: time.Now()}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return photo, nil
}

func (s *photoService) Delete(ctx context.Context, photoID string) error {
	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewError(domain.ErrNotFound, "photo_id", "photo not found")
		}
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
