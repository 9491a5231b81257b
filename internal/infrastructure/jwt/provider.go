package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose scopes a token to the single endpoint class allowed to accept it.
// A password-reset token must never authenticate a session-required endpoint,
// and vice versa; Verify enforces the match.
type Purpose string

const (
	PurposeSession       Purpose = "session"
	PurposeEmailVerify   Purpose = "email-verify"
	PurposePasswordReset Purpose = "password-reset"
)

// Claims holds the JWT payload fields.
type Claims struct {
	UserID  string  `json:"user_id,omitempty"`
	Email   string  `json:"email,omitempty"`
	Role    string  `json:"role,omitempty"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a process-wide secret.
type Provider struct {
	secret []byte
}

func NewProvider(secret string) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &Provider{secret: []byte(secret)}, nil
}

func (p *Provider) Sign(userID, email, role string, purpose Purpose, ttl time.Duration) (string, error) {
	return p.SignWithID(userID, email, role, "", purpose, ttl)
}

// SignWithID embeds tokenID as the jti claim. Password-reset tokens use it so
// the consuming endpoint can enforce single use against the reset-token table.
func (p *Provider) SignWithID(userID, email, role, tokenID string, purpose Purpose, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify checks the signature and expiry, then the purpose. The purpose check
// is not optional: a syntactically valid token minted for another use fails here.
func (p *Provider) Verify(tokenStr string, expected Purpose) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Purpose != expected {
		return nil, fmt.Errorf("token purpose %q not accepted here", claims.Purpose)
	}
	return claims, nil
}
