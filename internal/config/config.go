package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTSecret          string
	SessionTokenTTL    time.Duration
	EmailVerifyTTL     time.Duration
	ResetTokenTTL      time.Duration
	OTPExpiry          time.Duration

	GoogleClientID     string
	GitHubClientID     string
	GitHubClientSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	SNSRegion    string

	ResetURLBase   string   // base URL for password-reset links sent by email
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users       string
	Challenges  string
	ResetTokens string
	Onboarding  string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:       getEnv("DYNAMO_TABLE_USERS", "users"),
			Challenges:  getEnv("DYNAMO_TABLE_OTP_CHALLENGES", "otp_challenges"),
			ResetTokens: getEnv("DYNAMO_TABLE_RESET_TOKENS", "reset_tokens"),
			Onboarding:  getEnv("DYNAMO_TABLE_ONBOARDING", "onboarding"),
		},

		JWTSecret:       getEnv("JWT_SECRET", ""),
		SessionTokenTTL: getEnvMinutes("SESSION_TOKEN_TTL_MINUTES", 60),
		EmailVerifyTTL:  getEnvMinutes("EMAIL_VERIFY_TOKEN_TTL_MINUTES", 10),
		ResetTokenTTL:   getEnvMinutes("RESET_TOKEN_TTL_MINUTES", 30),
		OTPExpiry:       getEnvMinutes("OTP_EXP_MINUTES", 5),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GitHubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@alienbase.dev"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SNSRegion:    getEnv("SNS_REGION", "us-east-1"),

		ResetURLBase:   getEnv("RESET_URL_BASE", "http://localhost:5173/reset-password"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvMinutes(key string, fallback int) time.Duration {
	n := fallback
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}
	return time.Duration(n) * time.Minute
}
