package services

import (
	"testing"
	"time"

	"github.com/dkotenko/filegate/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTestUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "a@x.com",
		Role:  models.RoleAdmin,
	}
}

func TestTokenAuthority_IssueAndVerify(t *testing.T) {
	auth := NewTokenAuthority("secret")
	user := tokenTestUser()

	tokenStr, err := auth.Issue(user, 30*time.Minute, TokenTypeAccess)
	require.NoError(t, err)

	claims, err := auth.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestTokenAuthority_RefreshTokenCarriesNoRole(t *testing.T) {
	auth := NewTokenAuthority("secret")

	tokenStr, err := auth.Issue(tokenTestUser(), time.Hour, TokenTypeRefresh)
	require.NoError(t, err)

	claims, err := auth.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.Empty(t, claims.Role)
}

func TestTokenAuthority_ExpiredTokenRejected(t *testing.T) {
	auth := NewTokenAuthority("secret")

	tokenStr, err := auth.Issue(tokenTestUser(), -time.Minute, TokenTypeAccess)
	require.NoError(t, err)

	_, err = auth.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenAuthority_TamperedTokenRejected(t *testing.T) {
	auth := NewTokenAuthority("secret")

	tokenStr, err := auth.Issue(tokenTestUser(), time.Hour, TokenTypeAccess)
	require.NoError(t, err)

	_, err = auth.Verify(tokenStr + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenAuthority("another-secret")
	_, err = other.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenAuthority_GarbageRejected(t *testing.T) {
	auth := NewTokenAuthority("secret")

	_, err := auth.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenAuthority_VerifyAccessRejectsRefresh(t *testing.T) {
	auth := NewTokenAuthority("secret")
	user := tokenTestUser()

	refresh, err := auth.Issue(user, time.Hour, TokenTypeRefresh)
	require.NoError(t, err)
	_, err = auth.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := auth.Issue(user, time.Hour, TokenTypeAccess)
	require.NoError(t, err)
	claims, err := auth.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}
