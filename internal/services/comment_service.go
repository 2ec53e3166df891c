package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fathima-sithara/social-service/internal/events"
	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
)

type CommentService struct {
	repo      repository.CommentRepository
	publisher *events.Publisher
}

func NewCommentService(repo repository.CommentRepository, publisher *events.Publisher) *CommentService {
	return &CommentService{repo: repo, publisher: publisher}
}

func (s *CommentService) Create(ctx context.Context, owner, ownerName, postID, text string) (*models.Comment, error) {
	if text == "" || postID == "" {
		return nil, ErrMissingFields
	}
	comment := &models.Comment{Comment: text, Owner: owner, OwnerName: ownerName, PostID: postID}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Type:     events.TypeCommentCreated,
		ActorID:  owner,
		ObjectID: comment.ID.Hex(),
		PostID:   postID,
	})
	return comment, nil
}

func (s *CommentService) GetAll(ctx context.Context) ([]models.Comment, error) {
	return s.repo.FindAll(ctx)
}

func (s *CommentService) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.repo.FindByPostID(ctx, postID)
}

func (s *CommentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, id, text string) (*models.Comment, error) {
	if text == "" {
		return nil, ErrMissingFields
	}
	c, err := s.repo.Update(ctx, id, map[string]interface{}{"comment": text})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
