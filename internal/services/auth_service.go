package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fathima-sithara/social-service/internal/google"
	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/fathima-sithara/social-service/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authService implements the AuthService interface.
type authService struct {
	userRepo repository.UserRepository
	tokens   *utils.TokenManager
	google   google.Verifier
	hashCost int
	log      *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens *utils.TokenManager,
	googleVerifier google.Verifier,
	hashCost int,
	log *zap.Logger,
) AuthService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		google:   googleVerifier,
		hashCost: hashCost,
		log:      log,
	}
}

// Register creates a user with a hashed credential and an empty session set,
// then opens the first session.
func (s *authService) Register(ctx context.Context, username, email, password string) (*models.AuthTokens, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:      username,
		Email:         email,
		PasswordHash:  string(hashed),
		RefreshTokens: []string{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			// lost the race with a concurrent registration
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.openSession(ctx, user)
}

// Login verifies the credential and opens a new session. Prior sessions stay
// valid so multiple devices can be logged in at once.
func (s *authService) Login(ctx context.Context, email, password string) (*models.AuthTokens, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// accounts created through Google sign-in have no password hash
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// LoginWithGoogle verifies a provider ID token, linking or creating the local
// account, and opens a session.
func (s *authService) LoginWithGoogle(ctx context.Context, idToken string) (*models.AuthTokens, error) {
	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, google.ErrInvalidIDToken) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to verify google id token: %w", err)
	}

	user, err := s.userRepo.FindByGoogleID(ctx, profile.Sub)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user by google id: %w", err)
	}

	if user == nil {
		user, err = s.userRepo.FindByEmail(ctx, profile.Email)
		switch {
		case err == nil:
			// existing email account, link the google identity
			user.GoogleID = profile.Sub
			if user.ImgURL == "" && profile.Picture != "" {
				user.ImgURL = profile.Picture
			}
			if uerr := s.userRepo.Update(ctx, user); uerr != nil {
				return nil, fmt.Errorf("failed to link google account: %w", uerr)
			}
		case errors.Is(err, repository.ErrUserNotFound):
			username := strings.ReplaceAll(profile.Name, " ", "") + "_" + uuid.NewString()[:5]
			user = &models.User{
				Username:      username,
				Email:         profile.Email,
				GoogleID:      profile.Sub,
				ImgURL:        profile.Picture,
				RefreshTokens: []string{},
			}
			if cerr := s.userRepo.Create(ctx, user); cerr != nil {
				return nil, fmt.Errorf("failed to create google user: %w", cerr)
			}
		default:
			return nil, fmt.Errorf("failed to find user by email: %w", err)
		}
	}

	return s.openSession(ctx, user)
}

// Refresh rotates the presented refresh token: it is consumed exactly once and
// replaced by the refresh half of the newly issued pair.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	userID, err := s.consumeRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.openSession(ctx, user)
}

// Logout consumes the refresh token without issuing a replacement. A second
// logout with the same token fails because the token is no longer present.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	_, err := s.consumeRefreshToken(ctx, refreshToken)
	return err
}

// consumeRefreshToken verifies the token and removes it from its owner's set
// in one conditional update. A verified token that is absent from the stored
// set means it was already rotated or revoked: every session of that user is
// cleared before the request fails.
func (s *authService) consumeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrInvalidToken
	}
	claims, err := s.tokens.Verify(refreshToken, utils.KindRefresh)
	if err != nil {
		return "", ErrInvalidToken
	}

	err = s.userRepo.ConsumeRefreshToken(ctx, claims.UserID, refreshToken)
	if err == nil {
		return claims.UserID, nil
	}
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		if _, ferr := s.userRepo.FindByID(ctx, claims.UserID); ferr == nil {
			s.log.Warn("refresh token replay detected, revoking all sessions",
				zap.String("user_id", claims.UserID))
			if cerr := s.userRepo.ClearRefreshTokens(ctx, claims.UserID); cerr != nil {
				return "", fmt.Errorf("failed to revoke sessions: %w", cerr)
			}
		}
		return "", ErrInvalidToken
	}
	return "", fmt.Errorf("failed to consume refresh token: %w", err)
}

// openSession issues a token pair and persists its refresh half.
func (s *authService) openSession(ctx context.Context, user *models.User) (*models.AuthTokens, error) {
	pair, err := s.tokens.GeneratePair(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}
	if err := s.userRepo.PushRefreshToken(ctx, user.ID.Hex(), pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return &models.AuthTokens{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.Unix(),
		UserID:       user.ID.Hex(),
		Username:     user.Username,
	}, nil
}
