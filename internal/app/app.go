// Package app wires configured quote sources into a resolver. Both commands
// share it.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"stockquote/internal/config"
	"stockquote/internal/httpx"
	"stockquote/internal/hybrid"
	"stockquote/internal/provider"
	"stockquote/internal/provider/alphavantage"
	"stockquote/internal/provider/finnhub"
	"stockquote/internal/provider/synthetic"
)

// NewResolver builds the primary, secondary and synthetic steps enabled in
// cfg. Disabled providers are left out of the chain. The secondary's
// throttle fallback shares the synthetic generator and is only wired when
// synthetic data is enabled.
func NewResolver(cfg config.Config, logger *zap.Logger) (*hybrid.Resolver, error) {
	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	opts := []hybrid.Option{hybrid.WithLogger(logger)}

	var gen *synthetic.Generator
	if cfg.Synthetic.Enabled {
		gen = synthetic.New()
		opts = append(opts, hybrid.WithSynthetic(gen))
	}

	var primary, secondary provider.Provider
	if cfg.Finnhub.Enabled {
		client, err := finnhub.NewClient(cfg.Finnhub.APIKey,
			finnhub.WithHTTPClient(httpClient),
			finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
		)
		if err != nil {
			return nil, fmt.Errorf("finnhub client: %w", err)
		}
		primary = finnhub.New(finnhub.Config{}, client)
	}
	if cfg.AlphaVantage.Enabled {
		client, err := alphavantage.NewClient(cfg.AlphaVantage.APIKey,
			alphavantage.WithHTTPClient(httpClient),
			alphavantage.WithBaseURL(cfg.AlphaVantage.BaseURL),
		)
		if err != nil {
			return nil, fmt.Errorf("alphavantage client: %w", err)
		}
		acfg := alphavantage.Config{Logger: logger}
		if cfg.AlphaVantage.FallbackOnRateLimit && gen != nil {
			acfg.Fallback = gen
		}
		secondary = alphavantage.New(acfg, client)
	}

	return hybrid.New(primary, secondary, opts...), nil
}
