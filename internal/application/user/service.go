package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alienbase/auth-api/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
	fieldPhone     = "phone"
	fieldAddress   = "address"
	fieldDOB       = "dob"
	fieldGender    = "gender"
)

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type onboardingReader interface {
	Get(ctx context.Context, userID string) (*domain.Onboarding, error)
}

// Profile is the user row merged with the onboarding answers for display.
type Profile struct {
	User           *domain.User `json:"user"`
	Interests      []string     `json:"interests"`
	Goals          []string     `json:"goals"`
	FieldOfStudy   []string     `json:"field_of_study"`
	CollegeDetails string       `json:"college_details"`
	Bio            string       `json:"bio"`
}

type Service interface {
	Profile(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error)
}

type service struct {
	repo       userStore
	onboarding onboardingReader
}

func NewService(repo userStore, onboarding onboardingReader) Service {
	return &service{repo: repo, onboarding: onboarding}
}

func (s *service) Profile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := &Profile{
		User:           u,
		Interests:      []string{},
		Goals:          []string{},
		FieldOfStudy:   []string{},
		CollegeDetails: "",
	}
	if o, err := s.onboarding.Get(ctx, userID); err == nil {
		p.Interests = o.Interests
		p.Goals = o.Goals
		p.FieldOfStudy = o.FieldOfStudy
		p.CollegeDetails = o.CollegeDetails
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	p.Bio = buildBio(p.FieldOfStudy)
	return p, nil
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates[fieldFirstName] = *req.FirstName
	}
	if req.LastName != nil {
		updates[fieldLastName] = *req.LastName
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Address != nil {
		updates[fieldAddress] = *req.Address
	}
	if req.DOB != nil {
		t, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return nil, fmt.Errorf("dob must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
		updates[fieldDOB] = t
	}
	if req.Gender != nil {
		updates[fieldGender] = *req.Gender
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func buildBio(fieldOfStudy []string) string {
	if len(fieldOfStudy) > 0 {
		return fmt.Sprintf("Passionate learner studying %s.", fieldOfStudy[0])
	}
	return "Passionate learner."
}
