package services

import (
	"context"
	"errors"

	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
)

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context, username string) ([]models.User, error) {
	return s.repo.List(ctx, username)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateEmail(ctx context.Context, username, email string) error {
	if email == "" {
		return ErrMissingFields
	}
	err := s.repo.UpdateEmailByUsername(ctx, username, email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateUser):
		return ErrUserAlreadyExists
	}
	return err
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	err := s.repo.DeleteByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrNotFound
	}
	return err
}
