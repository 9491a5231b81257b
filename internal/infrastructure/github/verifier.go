package github

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alienbase/auth-api/internal/domain"
	"github.com/go-resty/resty/v2"
)

// Payload holds the identity GitHub asserts after a successful code exchange.
type Payload struct {
	ID        string
	Login     string
	Name      string
	Email     string
	AvatarURL string
}

// Verifier exchanges GitHub OAuth authorization codes and loads the
// authenticated user's profile and primary email.
type Verifier struct {
	client       *resty.Client
	clientID     string
	clientSecret string
	tokenURL     string
	apiBaseURL   string
}

func NewVerifier(clientID, clientSecret string) *Verifier {
	return &Verifier{
		client:       resty.New().SetTimeout(10 * time.Second),
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     "https://github.com/login/oauth/access_token",
		apiBaseURL:   "https://api.github.com",
	}
}

// Verify swaps the authorization code for an access token and resolves the
// user behind it. A rejected code maps to domain.ErrUnauthorized; a failure to
// reach GitHub maps to domain.ErrUnavailable (retryable by the caller).
func (v *Verifier) Verify(ctx context.Context, code string) (*Payload, error) {
	var tokenResp struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	_, err := v.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(map[string]string{
			"client_id":     v.clientID,
			"client_secret": v.clientSecret,
			"code":          code,
		}).
		SetResult(&tokenResp).
		Post(v.tokenURL)
	if err != nil {
		return nil, fmt.Errorf("github token exchange: %w", domain.ErrUnavailable)
	}
	if tokenResp.Error != "" || tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("invalid github authorization code: %w", domain.ErrUnauthorized)
	}

	var user struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetAuthToken(tokenResp.AccessToken).
		SetResult(&user).
		Get(v.apiBaseURL + "/user")
	if err != nil {
		return nil, fmt.Errorf("github user fetch: %w", domain.ErrUnavailable)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("github rejected the access token: %w", domain.ErrUnauthorized)
	}

	email := user.Email
	if email == "" {
		email, err = v.primaryEmail(ctx, tokenResp.AccessToken)
		if err != nil {
			return nil, err
		}
	}

	return &Payload{
		ID:        strconv.FormatInt(user.ID, 10),
		Login:     user.Login,
		Name:      user.Name,
		Email:     email,
		AvatarURL: user.AvatarURL,
	}, nil
}

// primaryEmail reads /user/emails for accounts whose profile email is private.
func (v *Verifier) primaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetAuthToken(accessToken).
		SetResult(&emails).
		Get(v.apiBaseURL + "/user/emails")
	if err != nil {
		return "", fmt.Errorf("github emails fetch: %w", domain.ErrUnavailable)
	}
	if resp.IsError() {
		return "", fmt.Errorf("github rejected the access token: %w", domain.ErrUnauthorized)
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("github account has no verified primary email: %w", domain.ErrUnauthorized)
}
