package http

import (
	"net/http"

	"github.com/alienbase/auth-api/internal/application/auth"
	"github.com/alienbase/auth-api/internal/application/oauth"
	"github.com/alienbase/auth-api/internal/application/onboarding"
	"github.com/alienbase/auth-api/internal/application/otp"
	"github.com/alienbase/auth-api/internal/application/user"
	"github.com/alienbase/auth-api/internal/config"
	"github.com/alienbase/auth-api/internal/domain"
	jwtinfra "github.com/alienbase/auth-api/internal/infrastructure/jwt"
	"github.com/alienbase/auth-api/internal/infrastructure/smtp"
	"github.com/alienbase/auth-api/internal/infrastructure/sns"
	"github.com/alienbase/auth-api/internal/transport/http/handler"
	appmiddleware "github.com/alienbase/auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       UserRepository
	ChallengeRepo  ChallengeRepository
	ResetTokenRepo ResetTokenRepository
	OnboardingRepo OnboardingRepository
	Mailer         smtp.Mailer
	SMSSender      sns.SMSSender
	JWTProvider    *jwtinfra.Provider
	Google         GoogleVerifier
	GitHub         GitHubVerifier
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10. Applied to the public endpoints an
	// attacker would hammer: credential checks and code requests.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.ChallengeRepo, cfg.OTPExpiry)
	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:        deps.UserRepo,
		ResetTokenRepo:  deps.ResetTokenRepo,
		OTP:             otpSvc,
		Mailer:          deps.Mailer,
		SMSSender:       deps.SMSSender,
		Tokens:          deps.JWTProvider,
		SessionTokenTTL: cfg.SessionTokenTTL,
		EmailVerifyTTL:  cfg.EmailVerifyTTL,
		ResetTokenTTL:   cfg.ResetTokenTTL,
		OTPExpiry:       cfg.OTPExpiry,
		ResetURLBase:    cfg.ResetURLBase,
	})
	oauthSvc := oauth.NewService(oauth.ServiceDeps{
		UserRepo:        deps.UserRepo,
		Google:          deps.Google,
		GitHub:          deps.GitHub,
		Tokens:          deps.JWTProvider,
		SessionTokenTTL: cfg.SessionTokenTTL,
	})
	onboardingSvc := onboarding.NewService(deps.OnboardingRepo)
	userSvc := user.NewService(deps.UserRepo, deps.OnboardingRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	otpH := handler.NewOTPHandler(authSvc)
	oauthH := handler.NewOAuthHandler(oauthSvc)
	onboardingH := handler.NewOnboardingHandler(onboardingSvc)
	userH := handler.NewUserHandler(userSvc)

	r.Route("/v1", func(r chi.Router) {
		// Public routes (no auth)
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/test", healthH.Test)
		r.Post("/test", healthH.Test)
		r.With(sensitiveRL.Limit).Post("/otp/request", otpH.Request)
		r.With(sensitiveRL.Limit).Post("/otp/verify", otpH.Verify)
		r.With(sensitiveRL.Limit).Post("/signup", authH.Signup)
		r.With(sensitiveRL.Limit).Post("/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/forgot-password", authH.ForgotPassword)
		r.With(sensitiveRL.Limit).Post("/auth/reset-password", authH.ResetPassword)
		r.With(sensitiveRL.Limit).Post("/auth/google/login", oauthH.GoogleLogin)
		r.With(sensitiveRL.Limit).Post("/auth/github/callback", oauthH.GitHubCallback)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/onboarding", onboardingH.Save)
			r.Get("/onboarding", onboardingH.Get)
			r.Get("/onboarding/status", onboardingH.Status)
			r.Get("/profile", userH.Profile)
			r.Put("/profile", userH.UpdateProfile)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
			})
		})
	})

	return r
}
