package services

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var ErrWeakPassword = errors.New("weak password")

// CredentialService hashes and verifies passwords and enforces the strength
// policy. bcrypt salts every hash, so two hashes of the same password differ.
type CredentialService struct {
	cost int
}

func NewCredentialService() *CredentialService {
	return &CredentialService{cost: bcrypt.DefaultCost}
}

func (s *CredentialService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *CredentialService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// CheckStrength evaluates the password rules in order and returns the first
// failure. All rules must pass.
func (s *CredentialService) CheckStrength(plaintext string) error {
	if len(plaintext) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrWeakPassword)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("%w: password must contain an uppercase letter", ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("%w: password must contain a lowercase letter", ErrWeakPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain a digit", ErrWeakPassword)
	}
	return nil
}
