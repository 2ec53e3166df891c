package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	objects   map[string][]byte
	publicURL string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	f.objects[key] = data
	if f.publicURL != "" {
		return f.publicURL + "/" + key, nil
	}
	return "", nil
}

func (f *fakeObjectStore) PresignURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example.com/" + key, nil
}

type fakeMediaRepo struct {
	records map[string]*models.Media
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{records: map[string]*models.Media{}}
}

func (f *fakeMediaRepo) Insert(_ context.Context, m *models.Media) error {
	cp := *m
	f.records[m.ID] = &cp
	return nil
}

func (f *fakeMediaRepo) FindByID(_ context.Context, id string) (*models.Media, error) {
	if m, ok := f.records[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadImageGeneratesThumbnail(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewMediaService(newFakeMediaRepo(), store, time.Minute)

	media, err := svc.Upload(context.Background(), "u1", "photo.png", "image/png", pngBytes(t, 640, 480))
	require.NoError(t, err)

	assert.Equal(t, "image", media.Type)
	assert.NotEmpty(t, media.Thumbnail)
	assert.Contains(t, media.Key, "u1/")
	assert.Contains(t, store.objects, media.Key)
	assert.Contains(t, store.objects, media.Thumbnail)
	assert.NotEmpty(t, store.objects[media.Thumbnail])
}

func TestUploadNonImageSkipsThumbnail(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewMediaService(newFakeMediaRepo(), store, time.Minute)

	media, err := svc.Upload(context.Background(), "u1", "notes.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, "file", media.Type)
	assert.Empty(t, media.Thumbnail)
	assert.Len(t, store.objects, 1)
}

func TestUploadCorruptImageStillStoresOriginal(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewMediaService(newFakeMediaRepo(), store, time.Minute)

	media, err := svc.Upload(context.Background(), "u1", "broken.png", "image/png", []byte("not an image"))
	require.NoError(t, err)

	assert.Equal(t, "image", media.Type)
	assert.Empty(t, media.Thumbnail)
	assert.Contains(t, store.objects, media.Key)
}

func TestGetURLPrefersPublicURL(t *testing.T) {
	store := newFakeObjectStore()
	store.publicURL = "https://cdn.example.com"
	repo := newFakeMediaRepo()
	svc := NewMediaService(repo, store, time.Minute)

	media, err := svc.Upload(context.Background(), "u1", "notes.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)

	url, err := svc.GetURL(context.Background(), media.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+media.Key, url)
}

func TestGetURLPresignsPrivateObjects(t *testing.T) {
	store := newFakeObjectStore()
	repo := newFakeMediaRepo()
	svc := NewMediaService(repo, store, time.Minute)

	media, err := svc.Upload(context.Background(), "u1", "notes.txt", "text/plain", []byte("hello"))
	require.NoError(t, err)

	url, err := svc.GetURL(context.Background(), media.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/"+media.Key, url)
}

func TestGetURLUnknownID(t *testing.T) {
	svc := NewMediaService(newFakeMediaRepo(), newFakeObjectStore(), time.Minute)

	_, err := svc.GetURL(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
