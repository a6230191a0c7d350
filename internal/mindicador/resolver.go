package mindicador

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/types"
)

// RunValues is the per-run UF cache keyed by computation method. A
// generation run resolves values at most once regardless of how many
// UF-denominated contracts it processes.
type RunValues map[types.UFMethod]decimal.Decimal

// Resolver builds the per-run value set on top of a Client.
type Resolver struct {
	client Client
	logger *logger.Logger
}

func NewResolver(client Client, log *logger.Logger) *Resolver {
	return &Resolver{client: client, logger: log}
}

// ValuesForRun resolves today's UF value and the first-of-month value.
// Today's value is mandatory; when the period-start lookup fails the run
// degrades to today's value for both methods rather than aborting; the
// fallback is logged.
func (r *Resolver) ValuesForRun(ctx context.Context, now time.Time) (RunValues, error) {
	today, err := r.client.GetUFValue(ctx, nil)
	if err != nil {
		return nil, err
	}

	values := RunValues{
		types.UFMethodGenerationDay: today,
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startValue, err := r.client.GetUFValue(ctx, &monthStart)
	if err != nil {
		r.logger.Warnw("could not resolve period-start uf value, falling back to today's value",
			"month_start", monthStart.Format("2006-01-02"),
			"error", err,
		)
		startValue = today
	}
	values[types.UFMethodPeriodStart] = startValue

	return values, nil
}
