package voucher

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realstatepro/billing/internal/types"
)

func TestBillingPeriod(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{
			name:     "mid_month",
			now:      time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC),
			expected: "2025-04",
		},
		{
			name:     "december_rolls_into_next_year",
			now:      time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
			expected: "2026-01",
		},
		{
			name:     "end_of_january_does_not_skip_february",
			now:      time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			expected: "2025-02",
		},
		{
			name:     "end_of_october",
			now:      time.Date(2024, 10, 31, 23, 59, 59, 0, time.UTC),
			expected: "2024-11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BillingPeriod(tt.now))
		})
	}
}

func TestFolioFor_Deterministic(t *testing.T) {
	first := FolioFor("prop_123", "2025-04")
	second := FolioFor("prop_123", "2025-04")

	assert.Equal(t, "FOLIO-prop_123-2025-04", first)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, FolioFor("prop_124", "2025-04"))
	assert.NotEqual(t, first, FolioFor("prop_123", "2025-05"))
}

func TestScheduledSendDate(t *testing.T) {
	generatedAt := time.Date(2025, 3, 5, 14, 22, 0, 0, time.UTC)

	t.Run("nil_send_day_means_same_day", func(t *testing.T) {
		got, err := ScheduledSendDate("2025-04", nil, generatedAt)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("send_day_lands_in_period_month", func(t *testing.T) {
		got, err := ScheduledSendDate("2025-04", lo.ToPtr(1), generatedAt)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("day_beyond_month_end_normalizes_forward", func(t *testing.T) {
		got, err := ScheduledSendDate("2025-02", lo.ToPtr(31), generatedAt)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("invalid_period", func(t *testing.T) {
		_, err := ScheduledSendDate("not-a-period", lo.ToPtr(5), generatedAt)
		assert.Error(t, err)
	})
}

func TestDueDate(t *testing.T) {
	got, err := DueDate("2025-04", 10)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestLocalAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency types.Currency
		ufValue  *decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name:     "clp_passes_through",
			amount:   decimal.NewFromInt(500000),
			currency: types.CurrencyCLP,
			expected: decimal.NewFromInt(500000),
		},
		{
			name:     "uf_truncates_toward_zero",
			amount:   decimal.NewFromInt(100),
			currency: types.CurrencyUF,
			ufValue:  lo.ToPtr(decimal.NewFromFloat(3.5)),
			expected: decimal.NewFromInt(350),
		},
		{
			name:     "uf_fractional_result_truncated",
			amount:   decimal.NewFromInt(20),
			currency: types.CurrencyUF,
			ufValue:  lo.ToPtr(decimal.NewFromFloat(37500.50)),
			expected: decimal.NewFromInt(750010),
		},
		{
			name:     "uf_without_value_passes_through",
			amount:   decimal.NewFromInt(20),
			currency: types.CurrencyUF,
			expected: decimal.NewFromInt(20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalAmount(tt.amount, tt.currency, tt.ufValue)
			assert.True(t, tt.expected.Equal(got),
				"expected %s, got %s", tt.expected, got)
		})
	}
}

// End-to-end date scenario: contract with generation day 5, no send day,
// due day 10, generated on 2025-03-05.
func TestVoucherDates_EndToEnd(t *testing.T) {
	generatedAt := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)

	period := BillingPeriod(generatedAt)
	require.Equal(t, "2025-04", period)

	folio := FolioFor("prop_9", period)
	assert.Equal(t, "FOLIO-prop_9-2025-04", folio)

	scheduled, err := ScheduledSendDate(period, nil, generatedAt)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), scheduled)

	due, err := DueDate(period, 10)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), due)

	amount := LocalAmount(decimal.NewFromInt(500000), types.CurrencyCLP, nil)
	assert.True(t, decimal.NewFromInt(500000).Equal(amount))
}
