package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockquote/internal/app"
	"stockquote/internal/config"
	"stockquote/internal/hybrid"
	"stockquote/internal/provider"
)

// upstream fakes both vendors on one server. finnhubUp and throttled pick
// how each behaves.
func upstream(t *testing.T, finnhubUp, throttled bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, body any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}
	mux.HandleFunc("/fh/quote", func(w http.ResponseWriter, r *http.Request) {
		if !finnhubUp {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		reply(w, map[string]any{"c": 210.16, "d": 1.05, "dp": 0.5, "pc": 209.11})
	})
	mux.HandleFunc("/fh/stock/profile2", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]any{"name": "Apple Inc", "currency": "USD", "marketCapitalization": 3200000})
	})
	mux.HandleFunc("/av/query", func(w http.ResponseWriter, r *http.Request) {
		if throttled {
			reply(w, map[string]any{"Information": "rate limit is 25 requests per day"})
			return
		}
		reply(w, map[string]any{"Global Quote": map[string]any{"05. price": "209.50", "09. change": "0.39", "10. change percent": "0.1865%"}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) config.Config {
	cfg := config.Default()
	cfg.Finnhub.APIKey = "fhTESTKEY_0001"
	cfg.Finnhub.BaseURL = baseURL + "/fh"
	cfg.AlphaVantage.APIKey = "AVTESTKEY0002"
	cfg.AlphaVantage.BaseURL = baseURL + "/av"
	return cfg
}

func TestNewResolver_Primary(t *testing.T) {
	t.Parallel()

	srv := upstream(t, true, false)
	r, err := app.NewResolver(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	q, err := r.Resolve(t.Context(), "aapl")

	require.NoError(t, err)
	require.Equal(t, provider.SourcePrimary, q.Source)
	require.Equal(t, "Apple Inc", q.CompanyName)
	require.Equal(t, "210.16", q.Price.String())
}

func TestNewResolver_Secondary(t *testing.T) {
	t.Parallel()

	srv := upstream(t, false, false)
	r, err := app.NewResolver(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	q, err := r.Resolve(t.Context(), "AAPL")

	require.NoError(t, err)
	require.Equal(t, provider.SourceSecondary, q.Source)
	require.Equal(t, "209.5", q.Price.String())
	require.Equal(t, "0.1865", q.ChangePercent.String())
}

func TestNewResolver_ThrottledSecondaryFallsBack(t *testing.T) {
	t.Parallel()

	srv := upstream(t, false, true)
	r, err := app.NewResolver(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	q, err := r.Resolve(t.Context(), "AAPL")

	require.NoError(t, err)
	require.Equal(t, provider.SourceSynthetic, q.Source)
	require.True(t, q.IsMockData)
	require.Equal(t, "Apple Inc.", q.CompanyName)
}

func TestNewResolver_SyntheticDisabled(t *testing.T) {
	t.Parallel()

	srv := upstream(t, false, true)
	cfg := testConfig(srv.URL)
	cfg.Synthetic.Enabled = false
	r, err := app.NewResolver(cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = r.Resolve(t.Context(), "AAPL")

	// Without a generator the throttle notice is a plain failure.
	require.ErrorIs(t, err, hybrid.ErrExhausted)
	var rerr *hybrid.ResolutionError
	require.ErrorAs(t, err, &rerr)
	require.Len(t, rerr.Attempts, 2)
	require.ErrorIs(t, rerr.Attempts[0].Err, provider.ErrHTTPStatus)
	require.ErrorIs(t, rerr.Attempts[1].Err, provider.ErrRateLimited)
}

func TestNewResolver_ProvidersDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Finnhub.Enabled = false
	cfg.AlphaVantage.Enabled = false
	r, err := app.NewResolver(cfg, zap.NewNop())
	require.NoError(t, err)

	q, err := r.Resolve(t.Context(), "ZZZZ")

	require.NoError(t, err)
	require.Equal(t, provider.SourceSynthetic, q.Source)
	require.Equal(t, "ZZZZ Corp.", q.CompanyName)

	st := r.Status(t.Context())
	require.Equal(t, provider.SourceSynthetic, st.Recommended)
}
