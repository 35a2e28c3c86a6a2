package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"stockquote/internal/provider"
)

const (
	// DefaultBaseURL is the Finnhub REST root.
	DefaultBaseURL = "https://finnhub.io/api/v1"
	providerName   = "finnhub"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=finnhub_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Finnhub API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
	// key is the API token, also used to scrub error messages.
	key  string
	errs provider.Errors
}

// ClientOption is a configuration option for the Finnhub client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a new Finnhub client. An empty key is accepted here;
// the adapter refuses to use it.
func NewClient(key string, options ...ClientOption) (*Client, error) {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
		key:        key,
		errs:       provider.Errors{Provider: providerName, Secret: key},
	}
	if key != "" {
		// https://finnhub.io/docs/api/authentication
		c.query.Set("token", key)
	}
	for _, option := range options {
		option(c)
	}
	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("finnhub: invalid base url: %w", err)
	}
	return c, nil
}

// get performs a GET on path for symbol and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, symbol provider.Symbol, out any) error {
	query := maps.Clone(c.query)
	query.Set("symbol", symbol.String())

	addr := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, http.NoBody)
	if err != nil {
		return c.errs.New(provider.ErrNetwork, "creating request: %v", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return c.errs.Network(fmt.Errorf("performing request: %w", err))
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode == http.StatusTooManyRequests:
		return c.errs.Status(res.StatusCode, "GET %s: rate limited", path)
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return c.errs.Status(res.StatusCode, "GET %s: unauthorized", path)
	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return c.errs.Status(res.StatusCode, "GET %s: %s", path, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return c.errs.New(provider.ErrMalformedQuote, "decoding %s response: %v", path, err)
	}
	return nil
}

// payloadError maps the "error" field Finnhub embeds in 200 responses.
func (c *Client) payloadError(path, msg string) error {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(msg), "limit") {
		return c.errs.New(provider.ErrRateLimited, "GET %s: %s", path, msg)
	}
	return c.errs.New(provider.ErrApplication, "GET %s: %s", path, msg)
}
