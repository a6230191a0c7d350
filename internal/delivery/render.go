package delivery

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realstatepro/billing/internal/domain/voucher"
	"github.com/realstatepro/billing/internal/types"
)

// RenderReminder builds the payment reminder message for one voucher. The
// HTML here is the collaborator interface for the real template system, not
// a design surface; it carries the same fields the templates consume.
func RenderReminder(v *voucher.WithRecipient, orgName string) Message {
	html := fmt.Sprintf(`<h2>Voucher de Pago - %s</h2>
<p>Estimado/a %s,</p>
<p>Le recordamos que tiene un pago pendiente de arriendo.</p>
<h3>Detalles del pago:</h3>
<ul>
  <li><strong>Período:</strong> %s</li>
  <li><strong>Monto:</strong> %s</li>
  <li><strong>Fecha de vencimiento:</strong> %s</li>
  <li><strong>Folio:</strong> %s</li>
</ul>
<p>Por favor, realice el pago antes de la fecha de vencimiento.</p>
<p>Saludos cordiales,</p>
<p>%s</p>`,
		v.Folio,
		v.Recipient.Name,
		v.Period,
		FormatAmount(v.AmountCLP, types.CurrencyCLP),
		FormatDateDisplay(v.DueDate),
		v.Folio,
		orgName,
	)

	to := ""
	if v.Recipient.Email != nil {
		to = *v.Recipient.Email
	}

	return Message{
		VoucherID: v.ID,
		To:        to,
		Subject:   fmt.Sprintf("Recordatorio de Pago - %s", v.Period),
		HTML:      html,
	}
}

// FormatDateDisplay renders a date as DD/MM/YYYY for tenant-facing text.
func FormatDateDisplay(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatAmount renders an amount for tenant-facing text: UF with two
// decimals, CLP with es-CL thousand grouping.
func FormatAmount(amount decimal.Decimal, currency types.Currency) string {
	if currency == types.CurrencyUF {
		return fmt.Sprintf("%s UF", amount.StringFixed(2))
	}
	return fmt.Sprintf("$%s CLP", groupThousands(amount.Truncate(0).String()))
}

// groupThousands inserts es-CL dot separators into an integer numeral.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
