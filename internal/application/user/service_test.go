package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alienbase/auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	args := m.Called(ctx, limit, cursor)
	users, _ := args.Get(0).([]domain.User)
	return users, args.String(1), args.Error(2)
}

type mockOnboardingReader struct{ mock.Mock }

func (m *mockOnboardingReader) Get(ctx context.Context, userID string) (*domain.Onboarding, error) {
	args := m.Called(ctx, userID)
	if o, _ := args.Get(0).(*domain.Onboarding); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestProfile_MergesOnboardingAnswers(t *testing.T) {
	us := &mockUserStore{}
	ob := &mockOnboardingReader{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	ob.On("Get", mock.Anything, "u1").Return(&domain.Onboarding{
		UserID:         "u1",
		Interests:      []string{"ml"},
		FieldOfStudy:   []string{"Computer Science"},
		CollegeDetails: "MIT",
	}, nil)

	svc := NewService(us, ob)
	p, err := svc.Profile(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, []string{"ml"}, p.Interests)
	assert.Equal(t, "MIT", p.CollegeDetails)
	assert.Contains(t, p.Bio, "Computer Science")
}

func TestProfile_NoOnboardingYet(t *testing.T) {
	us := &mockUserStore{}
	ob := &mockOnboardingReader{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	ob.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	svc := NewService(us, ob)
	p, err := svc.Profile(context.Background(), "u1")

	require.NoError(t, err)
	assert.Empty(t, p.Interests)
	assert.NotEmpty(t, p.Bio)
}

func TestProfile_UserNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := NewService(us, nil)
	_, err := svc.Profile(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_OnlyProvidedFields(t *testing.T) {
	us := &mockUserStore{}
	first := "Ada"
	dob := "2000-12-31"
	us.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		if len(m) != 2 {
			return false
		}
		d, ok := m[fieldDOB].(time.Time)
		return m[fieldFirstName] == "Ada" && ok && d.Year() == 2000
	})).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", FirstName: "Ada"}, nil)

	svc := NewService(us, nil)
	u, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{FirstName: &first, DOB: &dob})

	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)
	us.AssertExpectations(t)
}

func TestUpdate_BadDOB(t *testing.T) {
	us := &mockUserStore{}
	dob := "31/12/2000"

	svc := NewService(us, nil)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{DOB: &dob})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NothingToChange_ReturnsCurrent(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)

	svc := NewService(us, nil)
	u, err := svc.Update(context.Background(), "u1", domain.UpdateProfileRequest{})

	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_DefaultsLimit(t *testing.T) {
	us := &mockUserStore{}
	us.On("ScanPage", mock.Anything, int32(50), "").Return([]domain.User{{UserID: "u1"}}, "next", nil)

	svc := NewService(us, nil)
	users, next, err := svc.List(context.Background(), 0, "")

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "next", next)
}
