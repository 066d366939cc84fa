package media

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxUploadBytes caps uploads read into memory.
const MaxUploadBytes = 10 << 20 // 10MB

// URLExpiry is how long resolved media URLs stay valid.
const URLExpiry = 15 * time.Minute

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UseCase describes media upload and resolution behavior.
type UseCase interface {
	Upload(ctx context.Context, uploadedBy uuid.UUID, filename, contentType string, data []byte) (Media, error)
	List(ctx context.Context, limit, offset int) ([]Media, error)
	ResolveURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repository
	objects ObjectStorage
}

func NewService(repo Repository, objects ObjectStorage) UseCase {
	return &service{repo: repo, objects: objects}
}

func (s *service) Upload(ctx context.Context, uploadedBy uuid.UUID, filename, contentType string, data []byte) (Media, error) {
	if len(data) == 0 {
		return Media{}, ErrValidation("file is empty")
	}
	if len(data) > MaxUploadBytes {
		return Media{}, ErrValidation("file exceeds the 10MB upload limit")
	}
	if !allowedTypes[strings.ToLower(contentType)] {
		return Media{}, ErrValidation("unsupported content type: only jpeg, png, webp, and gif images are allowed")
	}

	id := uuid.New()
	key := "media/" + id.String() + strings.ToLower(filepath.Ext(filename))
	if err := s.objects.Put(ctx, key, contentType, data); err != nil {
		return Media{}, err
	}
	m := Media{
		ID:          id,
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedBy:  uploadedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		// Keep the bucket consistent with the metadata store.
		_ = s.objects.Delete(ctx, key)
		return Media{}, err
	}
	return m, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Media, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) ResolveURL(ctx context.Context, id uuid.UUID) (string, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.objects.PresignGet(ctx, m.Key, URLExpiry)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, m.Key); err != nil {
		return err
	}
	return s.repo.Delete(ctx, m.ID)
}
