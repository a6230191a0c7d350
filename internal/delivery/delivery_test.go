package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realstatepro/billing/internal/config"
	"github.com/realstatepro/billing/internal/domain/organization"
	"github.com/realstatepro/billing/internal/domain/tenant"
	"github.com/realstatepro/billing/internal/domain/voucher"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/httpclient"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/types"
)

// fakeEmailSender records sends and fails from a configurable index.
type fakeEmailSender struct {
	sent      []*resend.SendEmailRequest
	failAfter int
}

func (f *fakeEmailSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.failAfter >= 0 && len(f.sent) >= f.failAfter {
		return nil, errors.New("rate limited")
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email_1"}, nil
}

// fakeHTTPClient records the last request and returns a fixed outcome.
type fakeHTTPClient struct {
	lastRequest *httpclient.Request
	err         error
}

func (f *fakeHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &httpclient.Response{StatusCode: 200}, nil
}

func messageBatch(n int) []Message {
	batch := make([]Message, n)
	for i := range batch {
		batch[i] = Message{
			VoucherID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VOUCHER),
			To:        "tenant@example.com",
			Subject:   "Recordatorio de Pago - 2025-04",
			HTML:      "<p>hola</p>",
		}
	}
	return batch
}

func TestResendProvider_DeliversAll(t *testing.T) {
	sender := &fakeEmailSender{failAfter: -1}
	p := &resendProvider{
		emails:      sender,
		fromAddress: "billing@example.com",
		replyTo:     "support@example.com",
		logger:      logger.GetLogger(),
	}

	batch := messageBatch(3)
	delivered, err := p.Deliver(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, lo.Map(batch, func(m Message, _ int) string { return m.VoucherID }), delivered)
	require.Len(t, sender.sent, 3)
	assert.Equal(t, "billing@example.com", sender.sent[0].From)
	assert.Equal(t, "support@example.com", sender.sent[0].ReplyTo)
	assert.Equal(t, []string{"tenant@example.com"}, sender.sent[0].To)
}

func TestResendProvider_PartialFailureKeepsDelivered(t *testing.T) {
	sender := &fakeEmailSender{failAfter: 2}
	p := &resendProvider{
		emails:      sender,
		fromAddress: "billing@example.com",
		logger:      logger.GetLogger(),
	}

	batch := messageBatch(5)
	delivered, err := p.Deliver(context.Background(), batch)

	require.Error(t, err)
	assert.True(t, ierr.IsProvider(err))
	assert.Equal(t, []string{batch[0].VoucherID, batch[1].VoucherID}, delivered)
	assert.Len(t, sender.sent, 2)
}

func TestWebhookProvider_AllOrNothing(t *testing.T) {
	t.Run("success_delivers_whole_batch", func(t *testing.T) {
		client := &fakeHTTPClient{}
		p := newWebhookProvider("https://n8n.example.com/webhook/vouchers", client, logger.GetLogger())

		batch := messageBatch(3)
		delivered, err := p.Deliver(context.Background(), batch)
		require.NoError(t, err)
		assert.Len(t, delivered, 3)

		require.NotNil(t, client.lastRequest)
		assert.Equal(t, "POST", client.lastRequest.Method)
		assert.Equal(t, "https://n8n.example.com/webhook/vouchers", client.lastRequest.URL)

		var payload webhookPayload
		require.NoError(t, json.Unmarshal(client.lastRequest.Body, &payload))
		assert.Len(t, payload.Vouchers, 3)
	})

	t.Run("failure_delivers_nothing", func(t *testing.T) {
		client := &fakeHTTPClient{err: errors.New("connection refused")}
		p := newWebhookProvider("https://n8n.example.com/webhook/vouchers", client, logger.GetLogger())

		delivered, err := p.Deliver(context.Background(), messageBatch(3))
		require.Error(t, err)
		assert.True(t, ierr.IsProvider(err))
		assert.Empty(t, delivered)
	})
}

func TestNewProvider(t *testing.T) {
	params := Params{
		Resend: config.ResendConfig{APIKey: "re_test", FromAddress: "billing@example.com"},
		Client: &fakeHTTPClient{},
		Logger: logger.GetLogger(),
	}

	t.Run("resend", func(t *testing.T) {
		p, err := NewProvider(&organization.DeliveryConfig{
			Provider: types.DeliveryProviderResend,
		}, params)
		require.NoError(t, err)
		assert.IsType(t, &resendProvider{}, p)
	})

	t.Run("n8n_webhook", func(t *testing.T) {
		p, err := NewProvider(&organization.DeliveryConfig{
			Provider: types.DeliveryProviderN8N,
			Webhook:  "https://n8n.example.com/webhook/vouchers",
		}, params)
		require.NoError(t, err)
		assert.IsType(t, &webhookProvider{}, p)
	})

	t.Run("missing_config", func(t *testing.T) {
		_, err := NewProvider(nil, params)
		assert.True(t, ierr.IsConfigurationMissing(err))
	})

	t.Run("unknown_provider", func(t *testing.T) {
		_, err := NewProvider(&organization.DeliveryConfig{
			Provider: types.DeliveryProvider("sendgrid"),
		}, params)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestRenderReminder(t *testing.T) {
	v := &voucher.WithRecipient{
		Voucher: voucher.Voucher{
			ID:        "vchr_01test",
			Folio:     "FOLIO-prop_1-2025-04",
			Period:    "2025-04",
			AmountCLP: decimal.NewFromInt(1234567),
			DueDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		Recipient: tenant.Tenant{
			Name:  "Maria Gonzalez",
			Email: lo.ToPtr("maria@example.com"),
		},
	}

	msg := RenderReminder(v, "Inmobiliaria Centro")

	assert.Equal(t, "vchr_01test", msg.VoucherID)
	assert.Equal(t, "maria@example.com", msg.To)
	assert.Equal(t, "Recordatorio de Pago - 2025-04", msg.Subject)
	assert.Contains(t, msg.HTML, "Maria Gonzalez")
	assert.Contains(t, msg.HTML, "$1.234.567 CLP")
	assert.Contains(t, msg.HTML, "10/04/2025")
	assert.Contains(t, msg.HTML, "FOLIO-prop_1-2025-04")
	assert.Contains(t, msg.HTML, "Inmobiliaria Centro")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$500.000 CLP", FormatAmount(decimal.NewFromInt(500000), types.CurrencyCLP))
	assert.Equal(t, "$950 CLP", FormatAmount(decimal.NewFromInt(950), types.CurrencyCLP))
	assert.Equal(t, "$12.345.678 CLP", FormatAmount(decimal.NewFromInt(12345678), types.CurrencyCLP))
	assert.Equal(t, "$-1.000 CLP", FormatAmount(decimal.NewFromInt(-1000), types.CurrencyCLP))
	assert.Equal(t, "3.50 UF", FormatAmount(decimal.NewFromFloat(3.5), types.CurrencyUF))
}
