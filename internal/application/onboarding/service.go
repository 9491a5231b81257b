package onboarding

import (
	"context"
	"errors"
	"time"

	"github.com/alienbase/auth-api/internal/domain"
)

type store interface {
	Put(ctx context.Context, o *domain.Onboarding) error
	Get(ctx context.Context, userID string) (*domain.Onboarding, error)
}

// Service stores the post-signup questionnaire. Completeness is a separate
// read so the auth core never depends on onboarding state.
type Service interface {
	Save(ctx context.Context, userID string, req domain.OnboardingRequest) (*domain.Onboarding, error)
	Get(ctx context.Context, userID string) (*domain.Onboarding, error)
	Completed(ctx context.Context, userID string) (bool, error)
}

type service struct {
	repo store
}

func NewService(repo store) Service {
	return &service{repo: repo}
}

// Save upserts the questionnaire for userID. Saving again replaces the
// answers and keeps the original creation time.
func (s *service) Save(ctx context.Context, userID string, req domain.OnboardingRequest) (*domain.Onboarding, error) {
	now := time.Now().UTC()
	createdAt := now
	if existing, err := s.repo.Get(ctx, userID); err == nil {
		createdAt = existing.CreatedAt
	}
	o := &domain.Onboarding{
		UserID:         userID,
		Interests:      req.Interests,
		Goals:          req.Goals,
		FieldOfStudy:   req.FieldOfStudy,
		CollegeDetails: req.CollegeDetails,
		Completed:      true,
		CreatedAt:      createdAt,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.Onboarding, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) Completed(ctx context.Context, userID string) (bool, error) {
	o, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return o.Completed, nil
}
