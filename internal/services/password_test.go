package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_HashAndVerify(t *testing.T) {
	svc := NewCredentialService()

	hash, err := svc.HashPassword("Sekret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Sekret123", hash)

	assert.True(t, svc.VerifyPassword("Sekret123", hash))
	assert.False(t, svc.VerifyPassword("wrong", hash))
}

func TestCredentialService_HashesAreSalted(t *testing.T) {
	svc := NewCredentialService()

	h1, err := svc.HashPassword("Sekret123")
	require.NoError(t, err)
	h2, err := svc.HashPassword("Sekret123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, svc.VerifyPassword("Sekret123", h1))
	assert.True(t, svc.VerifyPassword("Sekret123", h2))
}

func TestCredentialService_CheckStrength(t *testing.T) {
	svc := NewCredentialService()

	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"too short", "Ab1", "at least 8 characters"},
		{"no uppercase", "abcdefg1", "uppercase letter"},
		{"no lowercase", "ABCDEFG1", "lowercase letter"},
		{"no digit", "Abcdefgh", "digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckStrength(tt.password)
			require.ErrorIs(t, err, ErrWeakPassword)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	assert.NoError(t, svc.CheckStrength("Abcdefg1"))
}

func TestCredentialService_LengthCheckedFirst(t *testing.T) {
	svc := NewCredentialService()

	// short and missing everything else still reports length
	err := svc.CheckStrength("a")
	require.ErrorIs(t, err, ErrWeakPassword)
	assert.Contains(t, err.Error(), "at least 8 characters")
}
