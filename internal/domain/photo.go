package domain

import (
	"context"
	"time"
)

// Photo is stored metadata for an uploaded image. No processing happens here;
// the bytes live wherever Path points.
// swagger:model Photo
type Photo struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoUpload is a caller-supplied image reference to attach to an event.
type PhotoUpload struct {
	Path string
}

// PhotoRepository defines storage operations for photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, p *Photo) error
	Delete(ctx context.Context, id string) error
}

// PhotoService is the photo collaborator the event lifecycle calls into.
// On edit the old photo is deleted before the new one is added, so a failure
// cannot leave an orphaned blob attached to the event.
type PhotoService interface {
	AddPhoto(ctx context.Context, upload *PhotoUpload) (*Photo, error)
	Delete(ctx context.Context, photoID string) error
}
