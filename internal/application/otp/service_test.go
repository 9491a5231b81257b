package otp

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/alienbase/auth-api/internal/domain"
	"github.com/alienbase/auth-api/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockChallengeStore struct{ mock.Mock }

func (m *mockChallengeStore) Put(ctx context.Context, c *domain.Challenge) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockChallengeStore) Get(ctx context.Context, owner, purpose string) (*domain.Challenge, error) {
	args := m.Called(ctx, owner, purpose)
	if c, _ := args.Get(0).(*domain.Challenge); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockChallengeStore) Delete(ctx context.Context, owner, purpose string) error {
	return m.Called(ctx, owner, purpose).Error(0)
}
func (m *mockChallengeStore) DecrementAttempts(ctx context.Context, owner, purpose string) error {
	return m.Called(ctx, owner, purpose).Error(0)
}

func challengeFor(t *testing.T, code string, expiresAt time.Time, attemptsLeft int) *domain.Challenge {
	t.Helper()
	codeHash, err := hash.Generate(code)
	require.NoError(t, err)
	return &domain.Challenge{
		Owner:        "a@b.com",
		Purpose:      domain.PurposeSignupVerification,
		CodeHash:     codeHash,
		ExpiresAt:    expiresAt.Unix(),
		AttemptsLeft: attemptsLeft,
	}
}

// --- Request ---

func TestRequest_StoresHashedSixDigitCode(t *testing.T) {
	cs := &mockChallengeStore{}
	var stored *domain.Challenge
	cs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Challenge")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Challenge) }).
		Return(nil)

	svc := NewService(cs, 5*time.Minute)
	code, err := svc.Request(context.Background(), "a@b.com", domain.PurposeSignupVerification)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
	require.NotNil(t, stored)
	assert.NotEqual(t, code, stored.CodeHash) // never the plaintext
	assert.True(t, hash.Verify(code, stored.CodeHash))
	assert.Equal(t, domain.DefaultChallengeAttempts, stored.AttemptsLeft)
	assert.Greater(t, stored.ExpiresAt, time.Now().Unix())
}

func TestRequest_ReissueYieldsFreshCode(t *testing.T) {
	cs := &mockChallengeStore{}
	cs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Challenge")).Return(nil).Twice()

	svc := NewService(cs, 5*time.Minute)
	first, err := svc.Request(context.Background(), "a@b.com", domain.PurposeSignupVerification)
	require.NoError(t, err)
	second, err := svc.Request(context.Background(), "a@b.com", domain.PurposeSignupVerification)
	require.NoError(t, err)

	// Both writes hit the same key, so the second challenge replaces the first.
	cs.AssertNumberOfCalls(t, "Put", 2)
	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
}

func TestRequest_StoreFailure(t *testing.T) {
	cs := &mockChallengeStore{}
	cs.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := NewService(cs, 5*time.Minute)
	_, err := svc.Request(context.Background(), "a@b.com", domain.PurposeSignupVerification)
	require.Error(t, err)
}

// --- Verify ---

func TestVerify_HappyPath_ConsumesChallenge(t *testing.T) {
	cs := &mockChallengeStore{}
	c := challengeFor(t, "123456", time.Now().Add(5*time.Minute), 5)
	cs.On("Get", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(c, nil)
	cs.On("Delete", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(nil)

	svc := NewService(cs, 5*time.Minute)
	err := svc.Verify(context.Background(), "a@b.com", domain.PurposeSignupVerification, "123456")

	require.NoError(t, err)
	cs.AssertExpectations(t)
}

func TestVerify_NothingOutstanding(t *testing.T) {
	cs := &mockChallengeStore{}
	cs.On("Get", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(nil, domain.ErrNotFound)

	svc := NewService(cs, 5*time.Minute)
	err := svc.Verify(context.Background(), "a@b.com", domain.PurposeSignupVerification, "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerify_WrongCode_BurnsAttempt(t *testing.T) {
	cs := &mockChallengeStore{}
	c := challengeFor(t, "123456", time.Now().Add(5*time.Minute), 5)
	cs.On("Get", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(c, nil)
	cs.On("DecrementAttempts", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(nil)

	svc := NewService(cs, 5*time.Minute)
	err := svc.Verify(context.Background(), "a@b.com", domain.PurposeSignupVerification, "654321")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	cs.AssertCalled(t, "DecrementAttempts", mock.Anything, "a@b.com", domain.PurposeSignupVerification)
	cs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_AttemptsExhausted_EvenWithCorrectCode(t *testing.T) {
	cs := &mockChallengeStore{}
	c := challengeFor(t, "123456", time.Now().Add(5*time.Minute), 0)
	cs.On("Get", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(c, nil)

	svc := NewService(cs, 5*time.Minute)
	err := svc.Verify(context.Background(), "a@b.com", domain.PurposeSignupVerification, "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTooManyAttempts))
	// The exhausted challenge stays until a fresh request replaces it.
	cs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_Expired_RemovesChallenge(t *testing.T) {
	cs := &mockChallengeStore{}
	c := challengeFor(t, "123456", time.Now().Add(-time.Minute), 5)
	cs.On("Get", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(c, nil)
	cs.On("Delete", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(nil)

	svc := NewService(cs, 5*time.Minute)
	err := svc.Verify(context.Background(), "a@b.com", domain.PurposeSignupVerification, "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	cs.AssertCalled(t, "Delete", mock.Anything, "a@b.com", domain.PurposeSignupVerification)
}

func TestVerify_DeleteFailure_DoesNotReportSuccess(t *testing.T) {
	cs := &mockChallengeStore{}
	c := challengeFor(t, "123456", time.Now().Add(5*time.Minute), 5)
	cs.On("Get", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(c, nil)
	cs.On("Delete", mock.Anything, "a@b.com", domain.PurposeSignupVerification).Return(errors.New("dynamo down"))

	svc := NewService(cs, 5*time.Minute)
	err := svc.Verify(context.Background(), "a@b.com", domain.PurposeSignupVerification, "123456")

	require.Error(t, err)
}
