package delivery

import (
	"context"

	"github.com/resend/resend-go/v2"

	"github.com/realstatepro/billing/internal/config"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/logger"
)

// emailSender is the slice of the Resend SDK the provider uses; narrowed so
// tests can substitute a fake.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// resendProvider sends one email per message through the Resend API. The
// provider has no native batching, so a batch is a sequential loop: a
// failure on message N stops the loop, and messages 1..N-1 stay delivered.
type resendProvider struct {
	emails      emailSender
	fromAddress string
	replyTo     string
	logger      *logger.Logger
}

func newResendProvider(cfg config.ResendConfig, log *logger.Logger) *resendProvider {
	client := resend.NewClient(cfg.APIKey)
	return &resendProvider{
		emails:      client.Emails,
		fromAddress: cfg.FromAddress,
		replyTo:     cfg.ReplyTo,
		logger:      log,
	}
}

func (p *resendProvider) Deliver(ctx context.Context, batch []Message) ([]string, error) {
	delivered := make([]string, 0, len(batch))

	for _, msg := range batch {
		params := &resend.SendEmailRequest{
			From:    p.fromAddress,
			To:      []string{msg.To},
			Subject: msg.Subject,
			Html:    msg.HTML,
		}
		if p.replyTo != "" {
			params.ReplyTo = p.replyTo
		}

		sent, err := p.emails.SendWithContext(ctx, params)
		if err != nil {
			return delivered, ierr.WithError(err).
				WithHintf("Resend rejected the email for voucher %s", msg.VoucherID).
				Mark(ierr.ErrProvider)
		}

		p.logger.Debugw("email sent via resend",
			"voucher_id", msg.VoucherID,
			"email_id", sent.Id,
		)
		delivered = append(delivered, msg.VoucherID)
	}

	return delivered, nil
}
