package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alienbase/auth-api/internal/application/oauth"
	"github.com/alienbase/auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockOAuthService struct{ mock.Mock }

func (m *mockOAuthService) GoogleLogin(ctx context.Context, req oauth.GoogleLoginRequest) (*oauth.Result, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*oauth.Result); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOAuthService) GitHubCallback(ctx context.Context, req oauth.GitHubCallbackRequest) (*oauth.Result, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*oauth.Result); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// Existing-account logins must say is_new_account: false explicitly; clients
// branch on the field to decide whether to show onboarding.
func TestGitHubCallback_ExistingAccount_FieldPresent(t *testing.T) {
	svc := &mockOAuthService{}
	svc.On("GitHubCallback", mock.Anything, oauth.GitHubCallbackRequest{Code: "code-1"}).Return(&oauth.Result{
		User:         &domain.User{UserID: "u1", Email: "a@b.com"},
		Bearer:       "session-token",
		IsNewAccount: false,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/github/callback", strings.NewReader(`{"code":"code-1"}`))
	rr := httptest.NewRecorder()
	NewOAuthHandler(svc).GitHubCallback(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"is_new_account":false`)
}

func TestGoogleLogin_NewAccount_FieldPresent(t *testing.T) {
	svc := &mockOAuthService{}
	svc.On("GoogleLogin", mock.Anything, mock.AnythingOfType("oauth.GoogleLoginRequest")).Return(&oauth.Result{
		User:         &domain.User{UserID: "u1", Email: "a@b.com"},
		Bearer:       "session-token",
		IsNewAccount: true,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/google/login", strings.NewReader(`{"email":"a@b.com","id_token":"tok"}`))
	rr := httptest.NewRecorder()
	NewOAuthHandler(svc).GoogleLogin(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"is_new_account":true`)
}
