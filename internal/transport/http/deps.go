package http

import (
	"context"

	"github.com/alienbase/auth-api/internal/domain"
	"github.com/alienbase/auth-api/internal/infrastructure/github"
	"github.com/alienbase/auth-api/internal/infrastructure/google"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByProviderID(ctx context.Context, provider, providerUserID string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

// ChallengeRepository is the minimal interface the router requires from a one-time code store.
type ChallengeRepository interface {
	Put(ctx context.Context, c *domain.Challenge) error
	Get(ctx context.Context, owner, purpose string) (*domain.Challenge, error)
	Delete(ctx context.Context, owner, purpose string) error
	DecrementAttempts(ctx context.Context, owner, purpose string) error
}

// ResetTokenRepository is the minimal interface the router requires from a reset-token store.
type ResetTokenRepository interface {
	Put(ctx context.Context, t *domain.ResetToken) error
	Consume(ctx context.Context, tokenID string) error
}

// OnboardingRepository is the minimal interface the router requires from an onboarding store.
type OnboardingRepository interface {
	Put(ctx context.Context, o *domain.Onboarding) error
	Get(ctx context.Context, userID string) (*domain.Onboarding, error)
}

// GoogleVerifier checks a Google ID token and returns its asserted identity.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

// GitHubVerifier exchanges an authorization code and returns the GitHub identity.
type GitHubVerifier interface {
	Verify(ctx context.Context, code string) (*github.Payload, error)
}
