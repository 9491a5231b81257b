package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Auth providers recorded on a user row.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	FirstName    string     `json:"first_name" dynamodbav:"first_name"`
	MiddleName   string     `json:"middle_name,omitempty" dynamodbav:"middle_name"`
	LastName     string     `json:"last_name" dynamodbav:"last_name"`
	Phone        *string    `json:"phone,omitempty" dynamodbav:"phone"`
	Address      string     `json:"address,omitempty" dynamodbav:"address"`
	DOB          *time.Time `json:"dob,omitempty" dynamodbav:"dob"`
	Gender       string     `json:"gender,omitempty" dynamodbav:"gender"`
	Role         string     `json:"role" dynamodbav:"role"`
	Verified     bool       `json:"verified" dynamodbav:"verified"`
	AuthProvider string     `json:"auth_provider,omitempty" dynamodbav:"auth_provider"` // "local" | "google" | "github"
	GoogleID     string     `json:"-" dynamodbav:"google_id,omitempty"`
	GitHubID     string     `json:"-" dynamodbav:"github_id,omitempty"`
	PictureURL   string     `json:"picture_url,omitempty" dynamodbav:"picture_url"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// HasLocalCredential reports whether the account can authenticate with a
// password. OAuth-originated accounts have no hash until they set one.
func (u *User) HasLocalCredential() bool { return u.PasswordHash != "" }

type SignupRequest struct {
	FirstName       string  `json:"first_name" validate:"required"`
	MiddleName      string  `json:"middle_name"`
	LastName        string  `json:"last_name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string  `json:"confirm_password" validate:"omitempty,eqfield=Password"`
	Phone           *string `json:"phone"`
	Address         string  `json:"address"`
	DOB             string  `json:"dob"` // expected format: YYYY-MM-DD
	Gender          string  `json:"gender"`
	Token           string  `json:"token"` // email-verify token from /otp/verify, optional
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	DOB       *string `json:"dob"` // expected format: YYYY-MM-DD
	Gender    *string `json:"gender"`
}
