package repository

import (
	"context"
	"errors"

	"github.com/fathima-sithara/social-service/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateUser        = errors.New("username or email already exists")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrDuplicateLike        = errors.New("like already exists")
	ErrNotFound             = errors.New("not found")
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	List(ctx context.Context, username string) ([]models.User, error)
	UpdateEmailByUsername(ctx context.Context, username, email string) error
	DeleteByUsername(ctx context.Context, username string) error

	// Refresh-token set mutations. PushRefreshToken appends (multi-device
	// sessions), ConsumeRefreshToken removes the token in a single conditional
	// update and reports ErrRefreshTokenNotFound when it was not present,
	// ClearRefreshTokens revokes every session.
	PushRefreshToken(ctx context.Context, id, token string) error
	ConsumeRefreshToken(ctx context.Context, id, token string) error
	ClearRefreshTokens(ctx context.Context, id string) error
}

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	FindAll(ctx context.Context, owner string) ([]models.Post, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id string, set map[string]interface{}) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	FindAll(ctx context.Context) ([]models.Comment, error)
	FindByID(ctx context.Context, id string) (*models.Comment, error)
	FindByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	Update(ctx context.Context, id string, set map[string]interface{}) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

type LikeRepository interface {
	Create(ctx context.Context, l *models.Like) error
	Delete(ctx context.Context, userID, objectID, objType string) error
	Exists(ctx context.Context, userID, objectID, objType string) (bool, error)
	FindByObject(ctx context.Context, objectID, objType string) ([]models.Like, error)
}

type MediaRepository interface {
	Insert(ctx context.Context, m *models.Media) error
	FindByID(ctx context.Context, id string) (*models.Media, error)
}
