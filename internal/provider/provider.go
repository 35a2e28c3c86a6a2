package provider

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Source tags which strategy produced a quote. Providers never set it;
// the resolver does.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
	SourceSynthetic Source = "synthetic"
)

// Label is the user facing name of the source.
func (s Source) Label() string {
	switch s {
	case SourcePrimary:
		return "Primary Provider"
	case SourceSecondary:
		return "Secondary Provider"
	case SourceSynthetic:
		return "Mock Data (Demo)"
	default:
		return "Unknown Source"
	}
}

// Quote is the normalized shape returned by all providers.
// Optional fundamentals are nil when the provider does not know them.
type Quote struct {
	Symbol        string           `json:"symbol"`
	CompanyName   string           `json:"companyName"`
	Price         decimal.Decimal  `json:"price"`
	Change        decimal.Decimal  `json:"change"`
	ChangePercent decimal.Decimal  `json:"changePercent"`
	Volume        int64            `json:"volume"`
	MarketCap     decimal.Decimal  `json:"marketCap"`
	PERatio       *decimal.Decimal `json:"peRatio,omitempty"`
	DividendYield *decimal.Decimal `json:"dividendYield,omitempty"`
	High52Week    *decimal.Decimal `json:"high52Week,omitempty"`
	Low52Week     *decimal.Decimal `json:"low52Week,omitempty"`
	Currency      string           `json:"currency"`
	LastUpdated   time.Time        `json:"lastUpdated"`
	Source        Source           `json:"source,omitempty"`
	IsMockData    bool             `json:"isMockData"`
}

// Provider fetches a single quote from one upstream.
//
//go:generate mockgen -package=hybrid_test -destination=../hybrid/mock_provider_test.go -source=provider.go Provider
type Provider interface {
	Name() string
	FetchQuote(ctx context.Context, symbol Symbol) (Quote, error)
}

// CredentialChecker is implemented by providers that need an API key.
type CredentialChecker interface {
	CheckCredentials() error
}
