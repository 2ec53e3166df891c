package services

import (
	"context"

	"github.com/fathima-sithara/social-service/internal/models"
)

// AuthService orchestrates the session-token lifecycle: registration, login,
// Google sign-in, refresh-token rotation, and logout.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.AuthTokens, error)
	Login(ctx context.Context, email, password string) (*models.AuthTokens, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*models.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
}
