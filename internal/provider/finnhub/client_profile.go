package finnhub

import (
	"context"

	"stockquote/internal/provider"
)

// ProfilePayload is the /stock/profile2 response. Unknown tickers yield an
// empty object.
type ProfilePayload struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Exchange string `json:"exchange"`
	// MarketCapitalization is in millions.
	MarketCapitalization provider.Number `json:"marketCapitalization"`
	ShareOutstanding     provider.Number `json:"shareOutstanding"`
	Logo                 string          `json:"logo"`
	WebURL               string          `json:"weburl"`
	Error                string          `json:"error"`
}

// GetProfile retrieves the company profile for symbol.
func (c *Client) GetProfile(ctx context.Context, symbol provider.Symbol) (ProfilePayload, error) {
	var out ProfilePayload
	if err := c.get(ctx, "/stock/profile2", symbol, &out); err != nil {
		return ProfilePayload{}, err
	}
	if err := c.payloadError("/stock/profile2", out.Error); err != nil {
		return ProfilePayload{}, err
	}
	return out, nil
}
