package mindicador

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realstatepro/billing/internal/config"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/types"
)

func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.MindicadorConfig{
		BaseURL:  srv.URL,
		Timeout:  5 * time.Second,
		CacheTTL: time.Minute,
	}, logger.GetLogger())
}

func TestClient_GetUFValue_SerieShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uf", r.URL.Path)
		w.Write([]byte(`{"serie":[{"fecha":"2025-03-05T03:00:00.000Z","valor":38976.41}]}`))
	}))

	value, err := c.GetUFValue(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(38976.41).Equal(value))
}

func TestClient_GetUFValue_LegacyShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"uf":{"valor":37500.50}}`))
	}))

	value, err := c.GetUFValue(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(37500.50).Equal(value))
}

func TestClient_GetUFValue_DatedLookup(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uf/2025-03-01", r.URL.Path)
		w.Write([]byte(`{"serie":[{"fecha":"2025-03-01T03:00:00.000Z","valor":38900.00}]}`))
	}))

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	value, err := c.GetUFValue(context.Background(), &date)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(38900).Equal(value))
}

func TestClient_GetUFValue_CachesByDate(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"serie":[{"valor":38976.41}]}`))
	}))

	for i := 0; i < 3; i++ {
		_, err := c.GetUFValue(context.Background(), nil)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_GetUFValue_EmptyPayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"serie":[]}`))
	}))

	_, err := c.GetUFValue(context.Background(), nil)
	assert.True(t, ierr.IsUpstreamUnavailable(err))
}

func TestClient_GetUFValue_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetUFValue(context.Background(), nil)
	assert.True(t, ierr.IsUpstreamUnavailable(err))
}

// fakeIndexClient drives the resolver without a server.
type fakeIndexClient struct {
	latest    decimal.Decimal
	dated     decimal.Decimal
	datedErr  error
	latestErr error
}

func (f *fakeIndexClient) GetUFValue(ctx context.Context, date *time.Time) (decimal.Decimal, error) {
	if date == nil {
		return f.latest, f.latestErr
	}
	return f.dated, f.datedErr
}

func TestResolver_ValuesForRun(t *testing.T) {
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

	t.Run("both_methods_resolved", func(t *testing.T) {
		r := NewResolver(&fakeIndexClient{
			latest: decimal.NewFromFloat(38976.41),
			dated:  decimal.NewFromFloat(38900.00),
		}, logger.GetLogger())

		values, err := r.ValuesForRun(context.Background(), now)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(38976.41).Equal(values[types.UFMethodGenerationDay]))
		assert.True(t, decimal.NewFromFloat(38900.00).Equal(values[types.UFMethodPeriodStart]))
	})

	t.Run("period_start_failure_falls_back_to_today", func(t *testing.T) {
		r := NewResolver(&fakeIndexClient{
			latest:   decimal.NewFromFloat(38976.41),
			datedErr: ierr.NewError("boom").Mark(ierr.ErrUpstreamUnavailable),
		}, logger.GetLogger())

		values, err := r.ValuesForRun(context.Background(), now)
		require.NoError(t, err)
		assert.True(t, values[types.UFMethodGenerationDay].Equal(values[types.UFMethodPeriodStart]))
	})

	t.Run("today_failure_aborts", func(t *testing.T) {
		r := NewResolver(&fakeIndexClient{
			latestErr: ierr.NewError("boom").Mark(ierr.ErrUpstreamUnavailable),
		}, logger.GetLogger())

		_, err := r.ValuesForRun(context.Background(), now)
		assert.Error(t, err)
	})
}
