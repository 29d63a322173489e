package services

import (
	"strings"
	"testing"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountRepo is a user repository with full create/lookup behavior.
type fakeAccountRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (r *fakeAccountRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return 0, repositories.ErrDuplicateKey
		}
	}
	stored := *user
	stored.ID = r.nextID
	r.users[stored.ID] = &stored
	r.nextID++
	return stored.ID, nil
}

func (r *fakeAccountRepo) FindUserByID(id int64) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		result := *user
		return &result, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAccountRepo) FindUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			result := *user
			return &result, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAccountRepo) FindDesignerByID(id int64) (*models.User, error) {
	user, err := r.FindUserByID(id)
	if err != nil || user.Role != models.RoleDesigner {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeAccountRepo) GetDesignerListings() ([]models.DesignerListing, error) {
	return nil, nil
}

func (r *fakeAccountRepo) UpdateProfile(_ repositories.SQLExecutor, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeAccountRepo) CountByRole() (map[string]int, error) {
	counts := make(map[string]int)
	for _, user := range r.users {
		counts[user.Role]++
	}
	return counts, nil
}

func registerRequest(username string) RegisterRequest {
	return RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse-battery",
		FullName: "Test User",
	}
}

func TestRegisterDefaultsToClient(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), nil)

	user, err := svc.Register(registerRequest("alice"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.Empty(t, user.PasswordHash)
	assert.True(t, user.IsActive)
}

func TestRegisterDesignerRole(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), nil)

	req := registerRequest("bob")
	req.Role = "designer"
	user, err := svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDesigner, user.Role)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), nil)

	req := registerRequest("mallory")
	req.Role = "admin"
	_, err := svc.Register(req)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	req.Role = "superuser"
	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), nil)

	_, err := svc.Register(registerRequest("alice"))
	require.NoError(t, err)

	_, err = svc.Register(registerRequest("alice"))
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(repo, nil)

	req := registerRequest("alice")
	_, err := svc.Register(req)
	require.NoError(t, err)

	resp, err := svc.Login(LoginRequest{Username: "alice", Password: req.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash)

	// The issued refresh token is accepted back.
	refreshed, err := svc.Refresh(RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), nil)

	req := registerRequest("alice")
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Login(LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Username: "nobody", Password: req.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(repo, nil)

	req := registerRequest("alice")
	user, err := svc.Register(req)
	require.NoError(t, err)
	repo.users[user.ID].IsActive = false

	_, err = svc.Login(LoginRequest{Username: "alice", Password: req.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), nil)

	_, err := svc.Refresh(RefreshRequest{RefreshToken: strings.Repeat("x", 40)})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUserProfile(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), nil)

	created, err := svc.Register(registerRequest("alice"))
	require.NoError(t, err)

	profile, err := svc.GetUserProfile(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Empty(t, profile.PasswordHash)

	_, err = svc.GetUserProfile(404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
