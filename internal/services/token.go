package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dkotenko/filegate/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified payload of a bearer token. Role is empty on refresh
// tokens: they prove identity only and carry no authorization.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	Type      string
	ExpiresAt time.Time
}

// TokenAuthority issues and verifies signed stateless bearer tokens.
// Verification is pure computation and safe for concurrent use.
type TokenAuthority struct {
	secret []byte
}

func NewTokenAuthority(secret string) *TokenAuthority {
	return &TokenAuthority{secret: []byte(secret)}
}

func (a *TokenAuthority) Issue(user *models.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"type":  tokenType,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if tokenType == TokenTypeAccess {
		claims["role"] = user.Role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and decodes the claims. Tampered,
// malformed or expired tokens all fail with ErrInvalidToken.
func (a *TokenAuthority) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	tokenType, _ := mc["type"].(string)

	return &Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		Type:      tokenType,
		ExpiresAt: exp.Time,
	}, nil
}

// VerifyAccess verifies the token and additionally requires type=access, so a
// refresh token can never be used as an authorization-bearing credential.
func (a *TokenAuthority) VerifyAccess(tokenStr string) (*Claims, error) {
	claims, err := a.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
