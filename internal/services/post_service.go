package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fathima-sithara/social-service/internal/events"
	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
)

type PostService struct {
	repo      repository.PostRepository
	publisher *events.Publisher
}

func NewPostService(repo repository.PostRepository, publisher *events.Publisher) *PostService {
	return &PostService{repo: repo, publisher: publisher}
}

func (s *PostService) Create(ctx context.Context, owner, title, content, imgURL string) (*models.Post, error) {
	if title == "" {
		return nil, ErrMissingFields
	}
	post := &models.Post{Title: title, Content: content, Owner: owner, ImgURL: imgURL}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.publisher.PublishActivity(ctx, events.ActivityEvent{
		Type:     events.TypePostCreated,
		ActorID:  owner,
		ObjectID: post.ID.Hex(),
	})
	return post, nil
}

func (s *PostService) GetAll(ctx context.Context, owner string) ([]models.Post, error) {
	return s.repo.FindAll(ctx, owner)
}

func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id, title, content, imgURL string) (*models.Post, error) {
	set := map[string]interface{}{}
	if title != "" {
		set["title"] = title
	}
	if content != "" {
		set["content"] = content
	}
	if imgURL != "" {
		set["img_url"] = imgURL
	}
	p, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
