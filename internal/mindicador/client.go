package mindicador

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"

	"github.com/realstatepro/billing/internal/cache"
	"github.com/realstatepro/billing/internal/config"
	ierr "github.com/realstatepro/billing/internal/errors"
	"github.com/realstatepro/billing/internal/logger"
)

// Client fetches daily UF values from the mindicador.cl index source.
type Client interface {
	// GetUFValue returns the UF value for the given date, or the latest
	// published value when date is nil
	GetUFValue(ctx context.Context, date *time.Time) (decimal.Decimal, error)
}

// ufResponse covers both payload shapes the source may return: the current
// serie-based shape and the legacy single-value shape.
type ufResponse struct {
	Serie []struct {
		Valor decimal.Decimal `json:"valor"`
		Fecha string          `json:"fecha"`
	} `json:"serie"`
	UF *struct {
		Valor decimal.Decimal `json:"valor"`
	} `json:"uf"`
}

type client struct {
	baseURL string
	http    *retryablehttp.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  *logger.Logger
}

// NewClient creates a mindicador client with retrying HTTP transport and a
// process-level cache keyed by date so repeated runs in one day hit the
// source once.
func NewClient(cfg config.MindicadorConfig, log *logger.Logger) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil

	return &client{
		baseURL: cfg.BaseURL,
		http:    rc,
		cache:   cache.NewInMemoryCache(cfg.CacheTTL),
		ttl:     cfg.CacheTTL,
		logger:  log,
	}
}

func (c *client) GetUFValue(ctx context.Context, date *time.Time) (decimal.Decimal, error) {
	cacheKey := cache.GenerateKey(cache.PrefixUFValue, "latest")
	url := fmt.Sprintf("%s/uf", c.baseURL)
	if date != nil {
		day := date.Format("2006-01-02")
		cacheKey = cache.GenerateKey(cache.PrefixUFValue, day)
		url = fmt.Sprintf("%s/uf/%s", c.baseURL, day)
	}

	if cached, found := c.cache.Get(ctx, cacheKey); found {
		return cached.(decimal.Decimal), nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to build UF index request").
			Mark(ierr.ErrUpstreamUnavailable)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("UF index source is unreachable").
			Mark(ierr.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, ierr.NewError("uf index source returned non-success status").
			WithHintf("Received status %d from %s", resp.StatusCode, url).
			Mark(ierr.ErrUpstreamUnavailable)
	}

	var payload ufResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("UF index response is not valid JSON").
			Mark(ierr.ErrUpstreamUnavailable)
	}

	value, err := payload.value()
	if err != nil {
		return decimal.Zero, err
	}

	c.logger.Debugw("resolved uf value", "url", url, "value", value)
	c.cache.Set(ctx, cacheKey, value, c.ttl)
	return value, nil
}

// value extracts the UF value, preferring the serie shape over the legacy
// one and failing explicitly when neither is present.
func (r *ufResponse) value() (decimal.Decimal, error) {
	if len(r.Serie) > 0 {
		return r.Serie[0].Valor, nil
	}
	if r.UF != nil && !r.UF.Valor.IsZero() {
		return r.UF.Valor, nil
	}
	return decimal.Zero, ierr.NewError("unrecognized uf index payload shape").
		WithHint("Expected a serie array or a legacy uf object").
		Mark(ierr.ErrUpstreamUnavailable)
}
