package alphavantage

import (
	"context"
	"net/url"
	"strings"

	"stockquote/internal/provider"
)

// GlobalQuote is the "Global Quote" object. Every value is string encoded.
type GlobalQuote struct {
	Symbol           string          `json:"01. symbol"`
	Open             provider.Number `json:"02. open"`
	High             provider.Number `json:"03. high"`
	Low              provider.Number `json:"04. low"`
	Price            provider.Number `json:"05. price"`
	Volume           provider.Number `json:"06. volume"`
	LatestTradingDay string          `json:"07. latest trading day"`
	PreviousClose    provider.Number `json:"08. previous close"`
	Change           provider.Number `json:"09. change"`
	ChangePercent    provider.Number `json:"10. change percent"`
}

// GlobalQuoteResponse is the GLOBAL_QUOTE payload. Errors and throttling
// arrive as 200 responses carrying one of the message fields.
type GlobalQuoteResponse struct {
	Quote        *GlobalQuote `json:"Global Quote"`
	ErrorMessage string       `json:"Error Message"`
	Note         string       `json:"Note"`
	Information  string       `json:"Information"`
}

// Throttled reports whether the response is a usage limit notice.
func (r GlobalQuoteResponse) Throttled() bool {
	return strings.TrimSpace(r.Note) != "" || strings.TrimSpace(r.Information) != ""
}

// GetGlobalQuote retrieves the latest quote for symbol. A throttled
// response is returned as is with a nil error; callers decide what to do
// with it.
func (c *Client) GetGlobalQuote(ctx context.Context, symbol provider.Symbol) (GlobalQuoteResponse, error) {
	var out GlobalQuoteResponse
	if err := c.do(ctx, "GLOBAL_QUOTE", url.Values{"symbol": {symbol.String()}}, &out); err != nil {
		return GlobalQuoteResponse{}, err
	}
	if msg := strings.TrimSpace(out.ErrorMessage); msg != "" {
		return GlobalQuoteResponse{}, c.errs.New(provider.ErrApplication, "%s", msg)
	}
	return out, nil
}
