package delivery

import (
	"context"
	"encoding/json"
	"net/http"

	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/httpclient"
	"github.com/realstatepro/billing/internal/logger"
)

// webhookProvider posts the full batch to an organization's n8n webhook in a
// single call. The call is all-or-nothing: on failure no message in the
// batch counts as delivered, on success all of them do.
type webhookProvider struct {
	url    string
	client httpclient.Client
	logger *logger.Logger
}

// webhookPayload is the wire shape of the batch call.
type webhookPayload struct {
	Vouchers []Message `json:"vouchers"`
}

func newWebhookProvider(url string, client httpclient.Client, log *logger.Logger) *webhookProvider {
	return &webhookProvider{url: url, client: client, logger: log}
}

func (p *webhookProvider) Deliver(ctx context.Context, batch []Message) ([]string, error) {
	body, err := json.Marshal(webhookPayload{Vouchers: batch})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode webhook payload").
			Mark(ierr.ErrProvider)
	}

	_, err = p.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    p.url,
		Body:   body,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Webhook call failed for a batch of %d vouchers", len(batch)).
			Mark(ierr.ErrProvider)
	}

	p.logger.Debugw("batch delivered via webhook",
		"url", p.url,
		"count", len(batch),
	)

	delivered := make([]string, len(batch))
	for i, msg := range batch {
		delivered[i] = msg.VoucherID
	}
	return delivered, nil
}
