package voucher

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realstatepro/billing/internal/types"
)

// Pure voucher computation. Nothing in this file performs I/O; every
// function is deterministic in its inputs so generation is replayable.

// BillingPeriod returns the period a voucher generated at t covers: the
// month following t's month, formatted YYYY-MM.
func BillingPeriod(t time.Time) string {
	// Anchor on the first of the month: AddDate on day 29-31 can skip a
	// month when the next month is shorter.
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return first.Format("2006-01")
}

// FolioFor derives the voucher folio from property and period. Identical
// inputs always yield the identical folio.
func FolioFor(propertyID, period string) string {
	return fmt.Sprintf("FOLIO-%s-%s", propertyID, period)
}

// ScheduledSendDate computes when a voucher should be dispatched. A nil
// sendDay means the voucher is sent the day it is generated; otherwise it is
// sent on that day of the period's month. Days beyond the month's end
// normalize forward per time.Date semantics.
func ScheduledSendDate(period string, sendDay *int, generatedAt time.Time) (time.Time, error) {
	if sendDay == nil {
		return time.Date(generatedAt.Year(), generatedAt.Month(), generatedAt.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return dayInPeriod(period, *sendDay)
}

// DueDate computes the payment deadline: the due day within the period's
// month.
func DueDate(period string, dueDay int) (time.Time, error) {
	return dayInPeriod(period, dueDay)
}

func dayInPeriod(period string, day int) (time.Time, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q: %w", period, err)
	}
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC), nil
}

// LocalAmount converts a rent amount to CLP units. UF amounts are multiplied
// by the resolved index value and truncated toward zero to whole pesos; CLP
// amounts pass through unchanged.
func LocalAmount(amount decimal.Decimal, currency types.Currency, ufValue *decimal.Decimal) decimal.Decimal {
	if currency != types.CurrencyUF || ufValue == nil {
		return amount
	}
	return amount.Mul(*ufValue).Truncate(0)
}
