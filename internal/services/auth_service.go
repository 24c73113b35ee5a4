package services

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dkotenko/filegate/internal/config"
	"github.com/dkotenko/filegate/internal/models"
	"github.com/dkotenko/filegate/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrEmailTaken   = errors.New("user with this email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password, so a
	// login attempt never reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("user account is blocked")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService orchestrates registration and login: credential policy,
// user persistence and token issuance.
type AuthService struct {
	users       *repository.UserRepository
	credentials *CredentialService
	tokens      *TokenAuthority
	cfg         *config.Config
}

func NewAuthService(users *repository.UserRepository, credentials *CredentialService, tokens *TokenAuthority, cfg *config.Config) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		cfg:         cfg,
	}
}

// LoginResult is the token pair plus the authenticated user.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

func (s *AuthService) Register(email, password string) (*models.User, error) {
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if err := s.credentials.CheckStrength(password); err != nil {
		return nil, err
	}

	hash, err := s.credentials.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     strings.SplitN(email, "@", 2)[0],
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
		IsVerified:   false,
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.credentials.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountBlocked
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}
	return result, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(refreshToken string) (*LoginResult, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrAccountBlocked
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*LoginResult, error) {
	accessToken, err := s.tokens.Issue(user, s.cfg.JWTAccessExpiry, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.Issue(user, s.cfg.JWTRefreshExpiry, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
