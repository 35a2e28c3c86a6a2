package alphavantage

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
	// DefaultBaseURL is the Alpha Vantage REST root.
	DefaultBaseURL = "https://www.alphavantage.co"
	providerName   = "alphavantage"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Alpha Vantage API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	header     http.Header
	query      url.Values
	key        string
	errs       provider.Errors
}

// ClientOption is a configuration option for the Alpha Vantage client.
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

// NewClient creates a new Alpha Vantage client.
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
		c.query.Set("apikey", key)
	}
	for _, option := range options {
		option(c)
	}
	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("alphavantage: invalid base url: %w", err)
	}
	return c, nil
}

// do runs GET /query for function with the extra params and decodes into out.
func (c *Client) do(ctx context.Context, function string, params url.Values, out any) error {
	query := maps.Clone(c.query)
	query.Set("function", function)
	for k, v := range params {
		query[k] = v
	}

	addr := fmt.Sprintf("%s/query?%s", c.baseURL, query.Encode())
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

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return c.errs.Status(res.StatusCode, "%s: %s", function, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return c.errs.New(provider.ErrMalformedQuote, "decoding %s response: %v", function, err)
	}
	return nil
}
