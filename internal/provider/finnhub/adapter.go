package finnhub

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"stockquote/internal/provider"
)

var (
	keyCharset = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	million    = decimal.NewFromInt(1_000_000)
)

type Config struct {
	Name string // display name, default: finnhub
	// Rand drives the synthesized volume, default: math/rand/v2 Float64.
	Rand func() float64
}

// Adapter turns the quote and profile endpoints into one provider.Quote.
type Adapter struct {
	cfg    Config
	client *Client
}

func New(cfg Config, client *Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = providerName
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// CheckCredentials validates the API token without touching the network.
func (a *Adapter) CheckCredentials() error {
	return provider.CheckCredential(a.cfg.Name, a.client.key, keyCharset)
}

// CheckKey applies the finnhub token rules to key.
func CheckKey(key string) error {
	return provider.CheckCredential(providerName, key, keyCharset)
}

// FetchQuote queries /quote and /stock/profile2 concurrently. Both must
// succeed; the first failure cancels the other request.
func (a *Adapter) FetchQuote(ctx context.Context, symbol provider.Symbol) (provider.Quote, error) {
	if err := a.CheckCredentials(); err != nil {
		return provider.Quote{}, err
	}

	var (
		quote   QuotePayload
		profile ProfilePayload
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quote, err = a.client.GetQuote(gctx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = a.client.GetProfile(gctx, symbol)
		return err
	})
	if err := g.Wait(); err != nil {
		return provider.Quote{}, a.client.errs.Sanitize(err)
	}
	return a.normalize(symbol, quote, profile)
}

func (a *Adapter) normalize(symbol provider.Symbol, q QuotePayload, p ProfilePayload) (provider.Quote, error) {
	if !q.Current.Valid || !q.Current.Value.IsPositive() {
		return provider.Quote{}, a.client.errs.New(provider.ErrMalformedQuote, "no quote data found for symbol: %s", symbol)
	}
	price := provider.RoundPrice(q.Current.Value)

	var change decimal.Decimal
	switch {
	case q.PreviousClose.Valid && q.PreviousClose.Value.IsPositive():
		change = q.Current.Value.Sub(q.PreviousClose.Value)
	default:
		change = q.Change.OrZero()
	}
	change = provider.RoundPrice(change)

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = symbol.String()
	}
	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = "USD"
	}

	return provider.Quote{
		Symbol:        symbol.String(),
		CompanyName:   name,
		Price:         price,
		Change:        change,
		ChangePercent: provider.ChangePercent(price, change),
		// The free tier has no volume.
		Volume:    provider.SyntheticVolume(symbol, a.cfg.Rand()),
		MarketCap: p.MarketCapitalization.OrZero().Mul(million),
		Currency:  currency,
	}, nil
}
