package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/google/uuid"
)

// ObjectStore is the storage backend for uploaded files.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type MediaService struct {
	repo       repository.MediaRepository
	store      ObjectStore
	presignTTL time.Duration
}

func NewMediaService(repo repository.MediaRepository, store ObjectStore, presignTTL time.Duration) *MediaService {
	return &MediaService{repo: repo, store: store, presignTTL: presignTTL}
}

// Upload stores the file under <userID>/<uuid>_<name>; images additionally
// get a 320px JPEG thumbnail.
func (s *MediaService) Upload(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Media, error) {
	id := uuid.NewString()
	key := userID + "/" + id + "_" + filename

	url, err := s.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	media := &models.Media{
		ID:          id,
		UserID:      userID,
		Key:         key,
		URL:         url,
		Type:        "file",
		Size:        int64(len(data)),
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}

	if strings.HasPrefix(contentType, "image/") {
		media.Type = "image"
		thumbKey := key + "_thumb.jpg"
		if thumb, terr := generateThumbnail(data); terr == nil {
			if _, uerr := s.store.Upload(ctx, thumbKey, "image/jpeg", thumb); uerr == nil {
				media.Thumbnail = thumbKey
			}
		}
	}

	if err := s.repo.Insert(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to persist media record: %w", err)
	}
	return media, nil
}

// GetURL returns the public URL when the bucket is public-read, a presigned
// URL otherwise.
func (s *MediaService) GetURL(ctx context.Context, id string) (string, error) {
	media, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if media.URL != "" {
		return media.URL, nil
	}
	return s.store.PresignURL(ctx, media.Key, s.presignTTL)
}

func generateThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
