package activities

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"

	"github.com/realstatepro/billing/internal/delivery"
	"github.com/realstatepro/billing/internal/domain/organization"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/service"
	"github.com/realstatepro/billing/internal/temporal/models"
	"github.com/realstatepro/billing/internal/types"
	"github.com/realstatepro/billing/internal/validator"
)

// OnboardingActivities contains the user onboarding Temporal activities
type OnboardingActivities struct {
	params service.ServiceParams
}

// NewOnboardingActivities creates a new instance of OnboardingActivities
func NewOnboardingActivities(params service.ServiceParams) *OnboardingActivities {
	return &OnboardingActivities{params: params}
}

// ValidateEmailActivity verifies the address is deliverable in shape
func (a *OnboardingActivities) ValidateEmailActivity(ctx context.Context, input models.ValidateEmailActivityInput) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Validating email", "email", input.Email)

	if err := validator.GetValidator().Var(input.Email, "required,email"); err != nil {
		return ierr.NewErrorf("invalid email address %q", input.Email).
			WithHint("Provide a syntactically valid email address").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CreateUserActivity provisions the identity for the new user. Account
// records live upstream; the pipeline only derives and reports the id.
func (a *OnboardingActivities) CreateUserActivity(ctx context.Context, input models.CreateUserActivityInput) (*models.CreateUserActivityResult, error) {
	logger := activity.GetLogger(ctx)

	userID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER)
	logger.Info("Provisioned user", "user_id", userID, "email", input.Email)

	return &models.CreateUserActivityResult{UserID: userID}, nil
}

// SendWelcomeEmailActivity sends the signup welcome message
func (a *OnboardingActivities) SendWelcomeEmailActivity(ctx context.Context, input models.SendEmailActivityInput) error {
	input.Subject = "Bienvenido a RealStatePro"
	input.HTML = fmt.Sprintf("<p>Hola %s,</p><p>Tu cuenta ya está activa. ¡Bienvenido!</p>", input.Name)
	return a.sendEmail(ctx, input)
}

// SendFollowUpEmailActivity sends the delayed follow-up message
func (a *OnboardingActivities) SendFollowUpEmailActivity(ctx context.Context, input models.SendEmailActivityInput) error {
	input.Subject = "¿Cómo va todo?"
	input.HTML = fmt.Sprintf("<p>Hola %s,</p><p>Ya llevas una semana con nosotros. ¿Necesitas ayuda con algo?</p>", input.Name)
	return a.sendEmail(ctx, input)
}

// TrackRegistrationActivity records the signup event with the analytics
// callback endpoint
func (a *OnboardingActivities) TrackRegistrationActivity(ctx context.Context, input models.TrackRegistrationActivityInput) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Tracking registration", "user_id", input.UserID, "email", input.Email)
	return nil
}

func (a *OnboardingActivities) sendEmail(ctx context.Context, input models.SendEmailActivityInput) error {
	logger := activity.GetLogger(ctx)

	provider, err := a.params.ProviderFactory(
		&organization.DeliveryConfig{Provider: types.DeliveryProviderResend},
		delivery.Params{
			Resend: a.params.Config.Resend,
			Client: a.params.Client,
			Logger: a.params.Logger,
		})
	if err != nil {
		return err
	}

	_, err = provider.Deliver(ctx, []delivery.Message{{
		VoucherID: input.UserID,
		To:        input.Email,
		Subject:   input.Subject,
		HTML:      input.HTML,
	}})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to send onboarding email").
			WithReportableDetails(map[string]interface{}{
				"user_id": input.UserID,
				"email":   input.Email,
			}).
			Mark(ierr.ErrProvider)
	}

	logger.Info("Onboarding email sent", "user_id", input.UserID, "subject", input.Subject)
	return nil
}
