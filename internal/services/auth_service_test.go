package services

import (
	"context"
	"sync"
	"testing"

	"github.com/fathima-sithara/social-service/internal/google"
	"github.com/fathima-sithara/social-service/internal/models"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/fathima-sithara/social-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo is an in-memory UserRepository guarded by a mutex so the
// rotation tests can exercise it concurrently.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicateUser
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	f.users[u.ID.Hex()] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID.Hex()]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID.Hex()] = &cp
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, username string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, u := range f.users {
		if username == "" || u.Username == username {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateEmailByUsername(_ context.Context, username, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			u.Email = email
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUserRepo) DeleteByUsername(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Username == username {
			delete(f.users, id)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUserRepo) PushRefreshToken(_ context.Context, id, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.RefreshTokens = append(u.RefreshTokens, token)
	return nil
}

func (f *fakeUserRepo) ConsumeRefreshToken(_ context.Context, id, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrRefreshTokenNotFound
	}
	for i, t := range u.RefreshTokens {
		if t == token {
			u.RefreshTokens = append(u.RefreshTokens[:i], u.RefreshTokens[i+1:]...)
			return nil
		}
	}
	return repository.ErrRefreshTokenNotFound
}

func (f *fakeUserRepo) ClearRefreshTokens(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.RefreshTokens = []string{}
	return nil
}

func (f *fakeUserRepo) tokenCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return len(u.RefreshTokens)
	}
	return 0
}

type fakeGoogleVerifier struct {
	profile *google.Profile
	err     error
}

func (f *fakeGoogleVerifier) Verify(_ context.Context, _ string) (*google.Profile, error) {
	return f.profile, f.err
}

func newTestAuthService(t *testing.T, repo repository.UserRepository, verifier google.Verifier) AuthService {
	t.Helper()
	tokens, err := utils.NewTokenManager("test-secret", 15, 7)
	require.NoError(t, err)
	return NewAuthService(repo, tokens, verifier, bcrypt.MinCost, zap.NewNop())
}

func TestRegisterIssuesSession(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "sithara", out.Username)
	assert.Equal(t, 1, repo.tokenCount(out.UserID))

	// hash must be stored, never the raw password
	u, err := repo.FindByID(ctx, out.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, "pass1234", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pass1234")))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "sithara", "other@example.com", "pass1234")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = svc.Register(ctx, "other", "sithara@example.com", "pass1234")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), nil)

	_, err := svc.Register(context.Background(), "", "a@b.c", "pass")
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.Register(context.Background(), "u", "", "pass")
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.Register(context.Background(), "u", "a@b.c", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)

	// unknown email and wrong password must yield the same error
	_, errUnknown := svc.Login(ctx, "nobody@example.com", "pass1234")
	_, errWrongPass := svc.Login(ctx, "sithara@example.com", "wrong")
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginSupportsMultipleDevices(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)
	ctx := context.Background()

	first, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)

	second, err := svc.Login(ctx, "sithara@example.com", "pass1234")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, 2, repo.tokenCount(first.UserID))

	// both sessions refresh independently
	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, out.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, 1, repo.tokenCount(out.UserID))

	// the consumed token is single use
	_, err = svc.Refresh(ctx, out.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshReplayRevokesAllSessions(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, out.RefreshToken)
	require.NoError(t, err)

	// replaying the consumed token revokes everything, including the
	// replacement issued by the rotation
	_, err = svc.Refresh(ctx, out.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, 0, repo.tokenCount(out.UserID))

	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, out.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	// a kind mismatch must not touch the stored session
	assert.Equal(t, 1, repo.tokenCount(out.UserID))
}

func TestLogoutConsumesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, out.RefreshToken))
	assert.Equal(t, 0, repo.tokenCount(out.UserID))

	// second logout with the same token fails
	assert.ErrorIs(t, svc.Logout(ctx, out.RefreshToken), ErrInvalidToken)

	_, err = svc.Refresh(ctx, out.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo(), nil)

	assert.ErrorIs(t, svc.Logout(context.Background(), ""), ErrInvalidToken)
	assert.ErrorIs(t, svc.Logout(context.Background(), "not-a-jwt"), ErrInvalidToken)
}

func TestLoginWithGoogleCreatesUser(t *testing.T) {
	repo := newFakeUserRepo()
	verifier := &fakeGoogleVerifier{profile: &google.Profile{
		Sub:   "google-sub-1",
		Email: "sithara@example.com",
		Name:  "Fathima Sithara",
	}}
	svc := newTestAuthService(t, repo, verifier)
	ctx := context.Background()

	out, err := svc.LoginWithGoogle(ctx, "id-token")
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	u, err := repo.FindByGoogleID(ctx, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, "sithara@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)

	// a passwordless google account cannot log in with a password
	_, err = svc.Login(ctx, "sithara@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithGoogleLinksExistingAccount(t *testing.T) {
	repo := newFakeUserRepo()
	verifier := &fakeGoogleVerifier{profile: &google.Profile{
		Sub:   "google-sub-1",
		Email: "sithara@example.com",
		Name:  "Fathima Sithara",
	}}
	svc := newTestAuthService(t, repo, verifier)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "sithara", "sithara@example.com", "pass1234")
	require.NoError(t, err)

	out, err := svc.LoginWithGoogle(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, out.UserID)

	u, err := repo.FindByID(ctx, registered.UserID)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", u.GoogleID)
}

func TestLoginWithGoogleRejectsInvalidToken(t *testing.T) {
	verifier := &fakeGoogleVerifier{err: google.ErrInvalidIDToken}
	svc := newTestAuthService(t, newFakeUserRepo(), verifier)

	_, err := svc.LoginWithGoogle(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
