package services

import (
	"context"
	"testing"

	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLikeRepo struct {
	likes map[string]models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[string]models.Like{}}
}

func likeKey(userID, objectID, objType string) string {
	return userID + "/" + objectID + "/" + objType
}

func (f *fakeLikeRepo) Create(_ context.Context, l *models.Like) error {
	k := likeKey(l.UserID, l.ObjectID, l.ObjType)
	if _, ok := f.likes[k]; ok {
		return repository.ErrDuplicateLike
	}
	f.likes[k] = *l
	return nil
}

func (f *fakeLikeRepo) Delete(_ context.Context, userID, objectID, objType string) error {
	k := likeKey(userID, objectID, objType)
	if _, ok := f.likes[k]; !ok {
		return repository.ErrNotFound
	}
	delete(f.likes, k)
	return nil
}

func (f *fakeLikeRepo) Exists(_ context.Context, userID, objectID, objType string) (bool, error) {
	_, ok := f.likes[likeKey(userID, objectID, objType)]
	return ok, nil
}

func (f *fakeLikeRepo) FindByObject(_ context.Context, objectID, objType string) ([]models.Like, error) {
	out := []models.Like{}
	for _, l := range f.likes {
		if l.ObjectID == objectID && l.ObjType == objType {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestLikeAddIsIdempotentPerUser(t *testing.T) {
	svc := NewLikeService(newFakeLikeRepo(), nil)
	ctx := context.Background()

	like, err := svc.Add(ctx, "u1", "p1", models.ObjectTypePost)
	require.NoError(t, err)
	assert.Equal(t, "u1", like.UserID)

	_, err = svc.Add(ctx, "u1", "p1", models.ObjectTypePost)
	assert.ErrorIs(t, err, ErrLikeAlreadyExists)

	// same object, different user is fine
	_, err = svc.Add(ctx, "u2", "p1", models.ObjectTypePost)
	require.NoError(t, err)

	// a post like and a comment like on the same id are distinct
	_, err = svc.Add(ctx, "u1", "p1", models.ObjectTypeComment)
	require.NoError(t, err)
}

func TestLikeRejectsUnknownObjectType(t *testing.T) {
	svc := NewLikeService(newFakeLikeRepo(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", "p1", "story")
	assert.ErrorIs(t, err, ErrInvalidObjectType)

	assert.ErrorIs(t, svc.Remove(ctx, "u1", "p1", "story"), ErrInvalidObjectType)

	_, err = svc.GetByObject(ctx, "p1", "story")
	assert.ErrorIs(t, err, ErrInvalidObjectType)
}

func TestLikeRemoveAndCheck(t *testing.T) {
	svc := NewLikeService(newFakeLikeRepo(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", "p1", models.ObjectTypePost)
	require.NoError(t, err)

	liked, err := svc.HasLiked(ctx, "u1", "p1", models.ObjectTypePost)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, svc.Remove(ctx, "u1", "p1", models.ObjectTypePost))

	liked, err = svc.HasLiked(ctx, "u1", "p1", models.ObjectTypePost)
	require.NoError(t, err)
	assert.False(t, liked)

	assert.ErrorIs(t, svc.Remove(ctx, "u1", "p1", models.ObjectTypePost), ErrNotFound)
}

func TestLikeListByObject(t *testing.T) {
	svc := NewLikeService(newFakeLikeRepo(), nil)
	ctx := context.Background()

	for _, user := range []string{"u1", "u2", "u3"} {
		_, err := svc.Add(ctx, user, "p1", models.ObjectTypePost)
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, "u1", "p2", models.ObjectTypePost)
	require.NoError(t, err)

	likes, err := svc.GetByObject(ctx, "p1", models.ObjectTypePost)
	require.NoError(t, err)
	assert.Len(t, likes, 3)
}
