package alphavantage

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"stockquote/internal/provider"
)

var keyCharset = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Fallback produces placeholder quotes when the API is throttling us.
type Fallback interface {
	Generate(symbol provider.Symbol) provider.Quote
}

type Config struct {
	Name string // display name, default: alphavantage
	// Fallback answers throttled requests with mock data. When nil a
	// throttled response fails with provider.ErrRateLimited.
	Fallback Fallback
	Logger   *zap.Logger
}

// Adapter maps GLOBAL_QUOTE onto provider.Quote.
type Adapter struct {
	cfg    Config
	client *Client
}

func New(cfg Config, client *Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = providerName
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.L()
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// CheckCredentials validates the API key without touching the network.
func (a *Adapter) CheckCredentials() error {
	return provider.CheckCredential(a.cfg.Name, a.client.key, keyCharset)
}

// CheckKey applies the alphavantage API key rules to key.
func CheckKey(key string) error {
	return provider.CheckCredential(providerName, key, keyCharset)
}

// FetchQuote returns the quote for symbol. On a throttle notice with a
// Fallback configured, the result is the fallback's quote with IsMockData
// set.
func (a *Adapter) FetchQuote(ctx context.Context, symbol provider.Symbol) (provider.Quote, error) {
	if err := a.CheckCredentials(); err != nil {
		return provider.Quote{}, err
	}

	res, err := a.client.GetGlobalQuote(ctx, symbol)
	if err != nil {
		return provider.Quote{}, err
	}

	if res.Throttled() {
		if a.cfg.Fallback == nil {
			return provider.Quote{}, a.client.errs.New(provider.ErrRateLimited, "%s", firstNonEmpty(res.Note, res.Information))
		}
		a.cfg.Logger.Warn("rate limit reached, using synthetic data",
			zap.String("provider", a.cfg.Name),
			zap.String("symbol", symbol.String()))
		q := a.cfg.Fallback.Generate(symbol)
		q.IsMockData = true
		return q, nil
	}

	return a.normalize(symbol, res.Quote)
}

func (a *Adapter) normalize(symbol provider.Symbol, gq *GlobalQuote) (provider.Quote, error) {
	if gq == nil {
		return provider.Quote{}, a.client.errs.New(provider.ErrMalformedQuote, "no data found for symbol: %s", symbol)
	}
	if !gq.Price.Valid || !gq.Price.Value.IsPositive() {
		return provider.Quote{}, a.client.errs.New(provider.ErrMalformedQuote, "missing or invalid price for symbol: %s", symbol)
	}

	price := provider.RoundPrice(gq.Price.Value)
	change := provider.RoundPrice(gq.Change.OrZero())
	percent := gq.ChangePercent.Value.Round(provider.PercentPlaces)
	if !gq.ChangePercent.Valid {
		percent = provider.ChangePercent(price, change)
	}

	return provider.Quote{
		Symbol: symbol.String(),
		// GLOBAL_QUOTE carries no company name.
		CompanyName:   symbol.String(),
		Price:         price,
		Change:        change,
		ChangePercent: percent,
		Volume:        gq.Volume.OrZero().IntPart(),
		Currency:      "USD",
	}, nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
