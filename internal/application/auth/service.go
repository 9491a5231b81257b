package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alienbase/auth-api/internal/application/otp"
	"github.com/alienbase/auth-api/internal/domain"
	jwtinfra "github.com/alienbase/auth-api/internal/infrastructure/jwt"
	"github.com/alienbase/auth-api/internal/pkg/hash"
	"github.com/alienbase/auth-api/internal/pkg/id"
)

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type resetTokenStore interface {
	Put(ctx context.Context, t *domain.ResetToken) error
	Consume(ctx context.Context, tokenID string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type tokenProvider interface {
	Sign(userID, email, role string, purpose jwtinfra.Purpose, ttl time.Duration) (string, error)
	SignWithID(userID, email, role, tokenID string, purpose jwtinfra.Purpose, ttl time.Duration) (string, error)
	Verify(tokenStr string, expected jwtinfra.Purpose) (*jwtinfra.Claims, error)
}

// LoginResult is what a successful credential check yields: a session token
// and a projection of the user safe to return to the client.
type LoginResult struct {
	Bearer string
	User   *domain.User
}

// Service drives the register → verify → login state machine plus the
// password-reset flow.
type Service interface {
	// Register creates a local account. With a valid email-verify token the
	// account starts verified; without one it starts unverified and a
	// signup-verification code is emailed. Returns the user and, when
	// notification delivery failed, a non-empty warning — the created state
	// is never rolled back over a delivery failure.
	Register(ctx context.Context, req domain.SignupRequest) (*domain.User, string, error)
	RequestOTP(ctx context.Context, email string, phone *string) error
	// VerifyOTP consumes the signup-verification challenge, promotes a
	// matching user row to verified, and returns a short-lived email-verify
	// token for the signup form.
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// RequestPasswordReset always reports success so callers cannot probe
	// which emails exist.
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type ServiceDeps struct {
	UserRepo       userStore
	ResetTokenRepo resetTokenStore
	OTP            otp.Service
	Mailer         mailer
	SMSSender      smsSender
	Tokens         tokenProvider

	SessionTokenTTL time.Duration
	EmailVerifyTTL  time.Duration
	ResetTokenTTL   time.Duration
	OTPExpiry       time.Duration
	ResetURLBase    string
}

type service struct {
	users       userStore
	resetTokens resetTokenStore
	otp         otp.Service
	mailer      mailer
	sms         smsSender
	tokens      tokenProvider

	sessionTTL     time.Duration
	emailVerifyTTL time.Duration
	resetTTL       time.Duration
	otpExpiry      time.Duration
	resetURLBase   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:          deps.UserRepo,
		resetTokens:    deps.ResetTokenRepo,
		otp:            deps.OTP,
		mailer:         deps.Mailer,
		sms:            deps.SMSSender,
		tokens:         deps.Tokens,
		sessionTTL:     deps.SessionTokenTTL,
		emailVerifyTTL: deps.EmailVerifyTTL,
		resetTTL:       deps.ResetTokenTTL,
		otpExpiry:      deps.OTPExpiry,
		resetURLBase:   deps.ResetURLBase,
	}
}

func (s *service) Register(ctx context.Context, req domain.SignupRequest) (*domain.User, string, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		// A store failure must not be read as "email free".
		return nil, "", err
	}

	verified := false
	if req.Token != "" {
		claims, err := s.tokens.Verify(req.Token, jwtinfra.PurposeEmailVerify)
		if err != nil {
			return nil, "", fmt.Errorf("invalid or expired verification token: %w", domain.ErrUnauthorized)
		}
		if normalizeEmail(claims.Email) != email {
			return nil, "", fmt.Errorf("verification token does not match this email: %w", domain.ErrBadRequest)
		}
		verified = true
	}

	passwordHash, err := hash.Generate(req.Password)
	if err != nil {
		return nil, "", err
	}

	var dob *time.Time
	if req.DOB != "" {
		t, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return nil, "", fmt.Errorf("dob must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
		dob = &t
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		DOB:          dob,
		Gender:       req.Gender,
		Role:         domain.RoleUser,
		Verified:     verified,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, "", err
	}

	warning := ""
	if !verified {
		if err := s.sendSignupCode(ctx, email, req.Phone); err != nil {
			slog.Warn("signup verification code not delivered", "email", email, "err", err)
			warning = "account created, but the verification code could not be sent; request a new one"
		}
	}
	return u, warning, nil
}

func (s *service) RequestOTP(ctx context.Context, email string, phone *string) error {
	return s.sendSignupCode(ctx, normalizeEmail(email), phone)
}

func (s *service) sendSignupCode(ctx context.Context, email string, phone *string) error {
	code, err := s.otp.Request(ctx, email, domain.PurposeSignupVerification)
	if err != nil {
		return err
	}
	minutes := int(s.otpExpiry.Minutes())
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minute(s).", code, minutes)
	if err := s.mailer.SendEmail(email, "Your Verification Code", body); err != nil {
		// The challenge stays valid; a resend supersedes it anyway.
		return fmt.Errorf("verification code could not be delivered: %w", domain.ErrUnavailable)
	}
	if phone != nil && *phone != "" && s.sms != nil {
		// SMS is best-effort on top of email; a failed text is logged, not surfaced.
		if err := s.sms.SendSMS(ctx, *phone, body); err != nil {
			slog.Warn("sms delivery failed", "err", err)
		}
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)
	if err := s.otp.Verify(ctx, email, domain.PurposeSignupVerification, code); err != nil {
		return "", err
	}
	if u, err := s.users.GetByEmail(ctx, email); err == nil && !u.Verified {
		if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"verified": true}); err != nil {
			return "", err
		}
	}
	return s.tokens.Sign("", email, "", jwtinfra.PurposeEmailVerify, s.emailVerifyTTL)
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if !u.HasLocalCredential() {
		// Distinct message: the password wasn't wrong, there is none.
		return nil, fmt.Errorf("this account uses social login, sign in with Google or GitHub: %w", domain.ErrUnauthorized)
	}
	if !hash.Verify(password, u.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if !u.Verified {
		return nil, fmt.Errorf("please verify your email before login: %w", domain.ErrForbidden)
	}
	bearer, err := s.tokens.Sign(u.UserID, u.Email, u.Role, jwtinfra.PurposeSession, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Bearer: bearer, User: u}, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Anti-enumeration: same outcome whether or not the account exists.
		return nil
	}
	tokenID := id.New()
	expiresAt := time.Now().Add(s.resetTTL)
	if err := s.resetTokens.Put(ctx, &domain.ResetToken{
		TokenID:   tokenID,
		UserID:    u.UserID,
		Used:      false,
		ExpiresAt: expiresAt.Unix(),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		slog.Error("failed to persist reset token", "user_id", u.UserID, "err", err)
		return nil
	}
	token, err := s.tokens.SignWithID(u.UserID, u.Email, "", tokenID, jwtinfra.PurposePasswordReset, s.resetTTL)
	if err != nil {
		slog.Error("failed to sign reset token", "user_id", u.UserID, "err", err)
		return nil
	}
	link := s.resetURLBase + "?token=" + token
	body := fmt.Sprintf("Use the link below to reset your password. It expires in %d minute(s).\n\n%s", int(s.resetTTL.Minutes()), link)
	if err := s.mailer.SendEmail(u.Email, "Password Reset", body); err != nil {
		slog.Warn("reset email not delivered", "user_id", u.UserID, "err", err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.Verify(token, jwtinfra.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token: %w", domain.ErrBadRequest)
	}
	if claims.ID == "" {
		return fmt.Errorf("invalid or expired reset token: %w", domain.ErrBadRequest)
	}
	passwordHash, err := hash.Generate(newPassword)
	if err != nil {
		return err
	}
	// Single use: the conditional consume succeeds at most once per jti. It
	// runs after hashing so only a store failure on the final write can burn
	// a token without changing the password; that failure mode fails closed
	// and the user requests a fresh link.
	if err := s.resetTokens.Consume(ctx, claims.ID); err != nil {
		return fmt.Errorf("reset token already used or revoked: %w", domain.ErrBadRequest)
	}
	return s.users.Update(ctx, claims.UserID, map[string]interface{}{"password_hash": passwordHash})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
