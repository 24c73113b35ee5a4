package services

import (
	"testing"

	"github.com/dkotenko/filegate/internal/models"
	"github.com/dkotenko/filegate/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	cfg := testConfig()
	svc := NewAuthService(users, NewCredentialService(), NewTokenAuthority(cfg.JWTSecret), cfg)
	return svc, users
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register("alice@example.com", "Sekret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "Sekret123", user.PasswordHash)
}

func TestAuthService_RegisterInvalidEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	for _, email := range []string{"", "alice", "alice@", "@example.com", "alice@example"} {
		_, err := svc.Register(email, "Sekret123")
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("alice@example.com", "Sekret123")
	require.NoError(t, err)

	_, err = svc.Register("alice@example.com", "Sekret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_RegisterWeakPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("alice@example.com", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthService_Login(t *testing.T) {
	svc, users := newAuthService(t)
	user := newStoredUser(t, users, "alice@example.com", "Sekret123")

	result, err := svc.Login("alice@example.com", "Sekret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user.ID, result.User.ID)

	// login stamps last_login
	updated, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, updated.LastLogin)
}

func TestAuthService_LoginBadCredentials(t *testing.T) {
	svc, users := newAuthService(t)
	newStoredUser(t, users, "alice@example.com", "Sekret123")

	// unknown account and wrong password yield the same error
	_, errUnknown := svc.Login("nobody@example.com", "Sekret123")
	_, errWrong := svc.Login("alice@example.com", "Wrong1234")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthService_LoginBlockedAccount(t *testing.T) {
	svc, users := newAuthService(t)
	user := newStoredUser(t, users, "alice@example.com", "Sekret123")
	require.NoError(t, users.SetActive(user.ID, false))

	_, err := svc.Login("alice@example.com", "Sekret123")
	assert.ErrorIs(t, err, ErrAccountBlocked)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, users := newAuthService(t)
	user := newStoredUser(t, users, "alice@example.com", "Sekret123")

	login, err := svc.Login("alice@example.com", "Sekret123")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, user.ID, refreshed.User.ID)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	svc, users := newAuthService(t)
	newStoredUser(t, users, "alice@example.com", "Sekret123")

	login, err := svc.Login("alice@example.com", "Sekret123")
	require.NoError(t, err)

	_, err = svc.Refresh(login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RefreshDeletedOrBlockedUser(t *testing.T) {
	svc, users := newAuthService(t)
	user := newStoredUser(t, users, "alice@example.com", "Sekret123")

	login, err := svc.Login("alice@example.com", "Sekret123")
	require.NoError(t, err)

	require.NoError(t, users.SetActive(user.ID, false))
	_, err = svc.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, ErrAccountBlocked)

	require.NoError(t, users.SetActive(user.ID, true))
	_, err = users.DeleteWithFiles(user.ID)
	require.NoError(t, err)
	_, err = svc.Refresh(login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
