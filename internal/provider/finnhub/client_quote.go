package finnhub

import (
	"context"

	"stockquote/internal/provider"
)

// QuotePayload is the /quote response.
//
//	{"c":261.74,"d":-0.81,"dp":-0.3085,"h":263.31,"l":260.68,"o":261.07,"pc":262.55,"t":1582641000}
type QuotePayload struct {
	Current       provider.Number `json:"c"`
	Change        provider.Number `json:"d"`
	ChangePercent provider.Number `json:"dp"`
	High          provider.Number `json:"h"`
	Low           provider.Number `json:"l"`
	Open          provider.Number `json:"o"`
	PreviousClose provider.Number `json:"pc"`
	Timestamp     provider.Number `json:"t"`
	Error         string          `json:"error"`
}

// GetQuote retrieves the latest quote for symbol.
func (c *Client) GetQuote(ctx context.Context, symbol provider.Symbol) (QuotePayload, error) {
	var out QuotePayload
	if err := c.get(ctx, "/quote", symbol, &out); err != nil {
		return QuotePayload{}, err
	}
	if err := c.payloadError("/quote", out.Error); err != nil {
		return QuotePayload{}, err
	}
	return out, nil
}
