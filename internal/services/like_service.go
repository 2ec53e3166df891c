package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fathima-sithara/social-service/internal/events"
	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
)

type LikeService struct {
	repo      repository.LikeRepository
	publisher *events.Publisher
}

func NewLikeService(repo repository.LikeRepository, publisher *events.Publisher) *LikeService {
	return &LikeService{repo: repo, publisher: publisher}
}

func validObjectType(objType string) bool {
	return objType == models.ObjectTypePost || objType == models.ObjectTypeComment
}

func (s *LikeService) Add(ctx context.Context, userID, objectID, objType string) (*models.Like, error) {
	if userID == "" || objectID == "" {
		return nil, ErrMissingFields
	}
	if !validObjectType(objType) {
		return nil, ErrInvalidObjectType
	}
	like := &models.Like{UserID: userID, ObjectID: objectID, ObjType: objType}
	if err := s.repo.Create(ctx, like); err != nil {
		if errors.Is(err, repository.ErrDuplicateLike) {
			return nil, ErrLikeAlreadyExists
		}
		return nil, fmt.Errorf("failed to add like: %w", err)
	}
	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Type:     events.TypeLikeAdded,
		ActorID:  userID,
		ObjectID: objectID,
	})
	return like, nil
}

func (s *LikeService) Remove(ctx context.Context, userID, objectID, objType string) error {
	if !validObjectType(objType) {
		return ErrInvalidObjectType
	}
	err := s.repo.Delete(ctx, userID, objectID, objType)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *LikeService) HasLiked(ctx context.Context, userID, objectID, objType string) (bool, error) {
	return s.repo.Exists(ctx, userID, objectID, objType)
}

func (s *LikeService) GetByObject(ctx context.Context, objectID, objType string) ([]models.Like, error) {
	if !validObjectType(objType) {
		return nil, ErrInvalidObjectType
	}
	return s.repo.FindByObject(ctx, objectID, objType)
}
