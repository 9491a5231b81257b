package oauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alienbase/auth-api/internal/domain"
	"github.com/alienbase/auth-api/internal/infrastructure/github"
	"github.com/alienbase/auth-api/internal/infrastructure/google"
	jwtinfra "github.com/alienbase/auth-api/internal/infrastructure/jwt"
	"github.com/alienbase/auth-api/internal/pkg/id"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByProviderID(ctx context.Context, provider, providerUserID string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type googleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type githubVerifier interface {
	Verify(ctx context.Context, code string) (*github.Payload, error)
}

type tokenSigner interface {
	Sign(userID, email, role string, purpose jwtinfra.Purpose, ttl time.Duration) (string, error)
}

type GoogleLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	GoogleID string `json:"google_id"`
	IDToken  string `json:"id_token" validate:"required"`
	Username string `json:"username"`
	Picture  string `json:"picture"`
}

type GitHubCallbackRequest struct {
	Code string `json:"code" validate:"required"`
}

// Result reports the reconciled local account. IsNewAccount lets the caller
// route first-time users to onboarding.
type Result struct {
	User         *domain.User
	Bearer       string
	IsNewAccount bool
}

// Service reconciles an external identity assertion against local user rows
// without ever creating duplicate or conflicting links.
type Service interface {
	GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*Result, error)
	GitHubCallback(ctx context.Context, req GitHubCallbackRequest) (*Result, error)
}

type service struct {
	users      userStore
	google     googleVerifier
	github     githubVerifier
	tokens     tokenSigner
	sessionTTL time.Duration
}

type ServiceDeps struct {
	UserRepo        userStore
	Google          googleVerifier
	GitHub          githubVerifier
	Tokens          tokenSigner
	SessionTokenTTL time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:      deps.UserRepo,
		google:     deps.Google,
		github:     deps.GitHub,
		tokens:     deps.Tokens,
		sessionTTL: deps.SessionTokenTTL,
	}
}

// externalIdentity is a provider assertion reduced to the fields reconcile needs.
type externalIdentity struct {
	provider   string
	providerID string
	email      string
	firstName  string
	lastName   string
	picture    string
}

func (s *service) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*Result, error) {
	payload, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}
	// The whole reconciliation rests on Google vouching for the address; an
	// unverified email proves nothing.
	if !payload.EmailVerified {
		return nil, fmt.Errorf("google account email is not verified: %w", domain.ErrUnauthorized)
	}
	// The provider's asserted email must match the one the client claims.
	if !strings.EqualFold(payload.Email, req.Email) {
		return nil, fmt.Errorf("google token does not match the supplied email: %w", domain.ErrUnauthorized)
	}
	if req.GoogleID != "" && req.GoogleID != payload.Sub {
		return nil, fmt.Errorf("google token does not match the supplied account id: %w", domain.ErrUnauthorized)
	}
	first, last := payload.FirstName, payload.LastName
	if first == "" {
		first, last = splitDisplayName(req.Username)
	}
	picture := payload.Picture
	if picture == "" {
		picture = req.Picture
	}
	return s.reconcile(ctx, externalIdentity{
		provider:   domain.ProviderGoogle,
		providerID: payload.Sub,
		email:      strings.ToLower(payload.Email),
		firstName:  first,
		lastName:   last,
		picture:    picture,
	})
}

func (s *service) GitHubCallback(ctx context.Context, req GitHubCallbackRequest) (*Result, error) {
	payload, err := s.github.Verify(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	name := payload.Name
	if name == "" {
		name = payload.Login
	}
	first, last := splitDisplayName(name)
	return s.reconcile(ctx, externalIdentity{
		provider:   domain.ProviderGitHub,
		providerID: payload.ID,
		email:      strings.ToLower(payload.Email),
		firstName:  first,
		lastName:   last,
		picture:    payload.AvatarURL,
	})
}

func (s *service) reconcile(ctx context.Context, ext externalIdentity) (*Result, error) {
	// Linked identity wins: the same (provider, id) pair always resolves to
	// the same local user.
	if u, err := s.users.GetByProviderID(ctx, ext.provider, ext.providerID); err == nil {
		return s.finish(u, false)
	}

	u, err := s.users.GetByEmail(ctx, ext.email)
	if err != nil {
		return s.createUser(ctx, ext)
	}

	linked := providerID(u, ext.provider)
	switch {
	case linked == ext.providerID:
		// Already linked to this exact pair — nothing to do.
	case linked != "":
		return nil, fmt.Errorf("this email is already linked to a different %s account: %w", ext.provider, domain.ErrConflict)
	default:
		updates := map[string]interface{}{
			providerIDField(ext.provider): ext.providerID,
			"auth_provider":               ext.provider,
		}
		if u.PictureURL == "" && ext.picture != "" {
			updates["picture_url"] = ext.picture
		}
		if !u.Verified {
			// The provider vouches for the email.
			updates["verified"] = true
			u.Verified = true
		}
		if err := s.users.Update(ctx, u.UserID, updates); err != nil {
			return nil, err
		}
	}
	return s.finish(u, false)
}

func (s *service) createUser(ctx context.Context, ext externalIdentity) (*Result, error) {
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        ext.email,
		FirstName:    ext.firstName,
		LastName:     ext.lastName,
		Role:         domain.RoleUser,
		Verified:     true,
		AuthProvider: ext.provider,
		PictureURL:   ext.picture,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch ext.provider {
	case domain.ProviderGoogle:
		u.GoogleID = ext.providerID
	case domain.ProviderGitHub:
		u.GitHubID = ext.providerID
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	return s.finish(u, true)
}

func (s *service) finish(u *domain.User, isNew bool) (*Result, error) {
	bearer, err := s.tokens.Sign(u.UserID, u.Email, u.Role, jwtinfra.PurposeSession, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	return &Result{User: u, Bearer: bearer, IsNewAccount: isNew}, nil
}

func providerID(u *domain.User, provider string) string {
	if provider == domain.ProviderGoogle {
		return u.GoogleID
	}
	return u.GitHubID
}

func providerIDField(provider string) string {
	if provider == domain.ProviderGoogle {
		return "google_id"
	}
	return "github_id"
}

// splitDisplayName divides a display name on the first space: the head becomes
// the first name, the remainder joins into the last name.
func splitDisplayName(name string) (string, string) {
	first, last, found := strings.Cut(strings.TrimSpace(name), " ")
	if !found {
		return first, ""
	}
	return first, last
}
