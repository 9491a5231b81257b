package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/alienbase/auth-api/internal/domain"
	"github.com/alienbase/auth-api/internal/pkg/hash"
)

type challengeStore interface {
	Put(ctx context.Context, c *domain.Challenge) error
	Get(ctx context.Context, owner, purpose string) (*domain.Challenge, error)
	Delete(ctx context.Context, owner, purpose string) error
	DecrementAttempts(ctx context.Context, owner, purpose string) error
}

// Service manages one-time code challenges: issue, supersede, verify, consume.
type Service interface {
	// Request creates a fresh challenge for (owner, purpose), replacing any
	// prior one, and returns the plaintext code for delivery. The code is
	// stored only as a bcrypt hash.
	Request(ctx context.Context, owner, purpose string) (string, error)
	// Verify consumes the challenge on success. Failure reasons are wrapped
	// domain sentinels: ErrNotFound (nothing outstanding), ErrTooManyAttempts
	// (ceiling reached, challenge kept until re-requested) and ErrBadRequest
	// (expired — challenge removed — or wrong code — one attempt burned).
	Verify(ctx context.Context, owner, purpose, code string) error
}

type service struct {
	repo challengeStore
	ttl  time.Duration
}

func NewService(repo challengeStore, ttl time.Duration) Service {
	return &service{repo: repo, ttl: ttl}
}

func (s *service) Request(ctx context.Context, owner, purpose string) (string, error) {
	code, err := newCode()
	if err != nil {
		return "", err
	}
	codeHash, err := hash.Generate(code)
	if err != nil {
		return "", err
	}
	c := &domain.Challenge{
		Owner:        owner,
		Purpose:      purpose,
		CodeHash:     codeHash,
		ExpiresAt:    time.Now().Add(s.ttl).Unix(),
		AttemptsLeft: domain.DefaultChallengeAttempts,
	}
	// Put overwrites the (owner, purpose) key, so exactly one live challenge
	// exists afterward and the previous code stops verifying.
	if err := s.repo.Put(ctx, c); err != nil {
		return "", err
	}
	return code, nil
}

func (s *service) Verify(ctx context.Context, owner, purpose, code string) error {
	c, err := s.repo.Get(ctx, owner, purpose)
	if err != nil {
		return fmt.Errorf("no code requested: %w", domain.ErrNotFound)
	}
	if c.AttemptsLeft <= 0 {
		// Kept on purpose: the caller must request a new challenge.
		return fmt.Errorf("too many attempts, request a new code: %w", domain.ErrTooManyAttempts)
	}
	if c.ExpiresAt < time.Now().Unix() {
		if err := s.repo.Delete(ctx, owner, purpose); err != nil {
			slog.Warn("failed to delete expired challenge", "owner", owner, "purpose", purpose, "err", err)
		}
		return fmt.Errorf("code expired, request a new one: %w", domain.ErrBadRequest)
	}
	if !hash.Verify(code, c.CodeHash) {
		if err := s.repo.DecrementAttempts(ctx, owner, purpose); err != nil {
			slog.Warn("failed to decrement challenge attempts", "owner", owner, "purpose", purpose, "err", err)
		}
		return fmt.Errorf("invalid code: %w", domain.ErrBadRequest)
	}
	// Single use: the challenge must be gone before we report success.
	if err := s.repo.Delete(ctx, owner, purpose); err != nil {
		return fmt.Errorf("consume challenge: %w", err)
	}
	return nil
}

// newCode returns a uniformly random 6-digit decimal code. The range
// [100000, 999999] guarantees six digits, so no leading-zero handling is needed.
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
