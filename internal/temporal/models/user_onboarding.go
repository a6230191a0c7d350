package models

import (
	"time"

	ierr "github.com/realstatepro/billing/internal/errors"
)

// UserOnboardingWorkflowInput represents the input for the user onboarding workflow
type UserOnboardingWorkflowInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`

	// FollowUpDelay is the durable sleep between the welcome and follow-up
	// emails; zero falls back to the production default of 7 days.
	FollowUpDelay time.Duration `json:"follow_up_delay,omitempty"`
}

// Validate validates the user onboarding workflow input
func (i *UserOnboardingWorkflowInput) Validate() error {
	if i.Email == "" {
		return ierr.NewError("email is required").
			WithHint("Please provide the new user's email address").
			Mark(ierr.ErrValidation)
	}
	if i.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide the new user's name").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ResolvedFollowUpDelay returns the configured delay or the default.
func (i *UserOnboardingWorkflowInput) ResolvedFollowUpDelay() time.Duration {
	if i.FollowUpDelay > 0 {
		return i.FollowUpDelay
	}
	return 7 * 24 * time.Hour
}

// UserOnboardingWorkflowResult represents the result of the user onboarding workflow
type UserOnboardingWorkflowResult struct {
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	StepsExecuted int       `json:"steps_executed"`
	CompletedAt   time.Time `json:"completed_at"`
}

// ValidateEmailActivityInput carries the address to verify
type ValidateEmailActivityInput struct {
	Email string `json:"email"`
}

// CreateUserActivityInput carries the identity to provision
type CreateUserActivityInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateUserActivityResult reports the provisioned identity
type CreateUserActivityResult struct {
	UserID string `json:"user_id"`
}

// SendEmailActivityInput is shared by the welcome and follow-up emails
type SendEmailActivityInput struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// TrackRegistrationActivityInput records the signup event
type TrackRegistrationActivityInput struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
