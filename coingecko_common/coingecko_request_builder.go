package coingecko_common

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const (
	// Base URL for public API
	COINGECKO_PUBLIC_URL = "https://api.coingecko.com"
	// Base URL for Pro API
	COINGECKO_PRO_URL = "https://pro-api.coingecko.com"

	defaultUserAgent = "SolScope/1.0"
)

// joinURL safely combines a base URL with a path
func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// CoingeckoRequestBuilder implements the Builder pattern for CoinGecko API requests
type CoingeckoRequestBuilder struct {
	baseURL   string
	apiPath   string
	params    url.Values
	apiKey    APIKey
	userAgent string
	headers   http.Header
}

// NewCoingeckoRequestBuilder creates a new base request builder for CoinGecko endpoints
func NewCoingeckoRequestBuilder(baseURL, apiPath string) *CoingeckoRequestBuilder {
	rb := &CoingeckoRequestBuilder{
		baseURL:   baseURL,
		apiPath:   apiPath,
		params:    url.Values{},
		headers:   http.Header{},
		userAgent: defaultUserAgent,
	}
	rb.headers.Set("Accept", "application/json")
	return rb
}

// With sets a query parameter, replacing any previous value
func (rb *CoingeckoRequestBuilder) With(key, value string) *CoingeckoRequestBuilder {
	rb.params.Set(key, value)
	return rb
}

// WithCurrency adds vs_currency parameter
func (rb *CoingeckoRequestBuilder) WithCurrency(currency string) *CoingeckoRequestBuilder {
	if currency != "" {
		rb.params.Set("vs_currency", currency)
	}
	return rb
}

// WithApiKey sets the key used for the request; the keyless entry is ignored
func (rb *CoingeckoRequestBuilder) WithApiKey(key APIKey) *CoingeckoRequestBuilder {
	if key.Key != "" {
		rb.apiKey = key
	}
	return rb
}

// WithHeader adds a custom HTTP header
func (rb *CoingeckoRequestBuilder) WithHeader(name, value string) *CoingeckoRequestBuilder {
	rb.headers.Set(name, value)
	return rb
}

// Param returns the current value of a query parameter
func (rb *CoingeckoRequestBuilder) Param(key string) string {
	return rb.params.Get(key)
}

// BuildURL builds the complete URL for the request
func (rb *CoingeckoRequestBuilder) BuildURL() string {
	query := url.Values{}
	for key, values := range rb.params {
		query[key] = append([]string(nil), values...)
	}

	switch rb.apiKey.Type {
	case ProKey:
		query.Set("x_cg_pro_api_key", rb.apiKey.Key)
	case DemoKey:
		query.Set("x_cg_demo_api_key", rb.apiKey.Key)
	}

	finalURL := joinURL(rb.baseURL, rb.apiPath)
	if encoded := query.Encode(); encoded != "" {
		finalURL += "?" + encoded
	}
	return finalURL
}

// Build creates an http.Request bound to ctx
func (rb *CoingeckoRequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for key, values := range rb.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}
