package domain

import "time"

// Onboarding is the post-signup questionnaire record, one row per user.
type Onboarding struct {
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Interests      []string  `json:"interests" dynamodbav:"interests"`
	Goals          []string  `json:"goals" dynamodbav:"goals"`
	FieldOfStudy   []string  `json:"field_of_study" dynamodbav:"field_of_study"`
	CollegeDetails string    `json:"college_details" dynamodbav:"college_details"`
	Completed      bool      `json:"completed" dynamodbav:"completed"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type OnboardingRequest struct {
	Interests      []string `json:"interests" validate:"required,min=1"`
	Goals          []string `json:"goals" validate:"required,min=1"`
	FieldOfStudy   []string `json:"field_of_study" validate:"required,min=1"`
	CollegeDetails string   `json:"college_details" validate:"required"`
}
