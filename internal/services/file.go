package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
)

// MaxImageSize caps a single uploaded image.
const MaxImageSize = 10 << 20

// ObjectStore is satisfied by *Storage.
type ObjectStore interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (*StoredObject, error)
	DeleteImage(ctx context.Context, key string) error
}

type FileService struct {
	store ObjectStore
	files ports.FileRepo
	log   *zap.Logger
}

func NewFileService(store ObjectStore, files ports.FileRepo, log *zap.Logger) *FileService {
	return &FileService{store: store, files: files, log: log.Named("file")}
}

// UploadImage stores the image and records it so fields can reference it.
func (s *FileService) UploadImage(ctx context.Context, actor *models.User, header *multipart.FileHeader) (*models.File, error) {
	if header.Size > MaxImageSize {
		return nil, fmt.Errorf("image larger than %d bytes: %w", MaxImageSize, models.ErrValidation)
	}

	obj, err := s.store.UploadImage(ctx, header, "fields")
	if err != nil {
		return nil, err
	}

	f := &models.File{
		Name:        header.Filename,
		Path:        obj.Path,
		URL:         obj.URL,
		Size:        obj.Size,
		ContentType: obj.ContentType,
		UploadedBy:  actor.ID,
	}
	if err := s.files.Create(ctx, f); err != nil {
		if delErr := s.store.DeleteImage(ctx, obj.Path); delErr != nil {
			s.log.Warn("remove orphaned upload", zap.String("path", obj.Path), zap.Error(delErr))
		}
		return nil, err
	}
	return f, nil
}
