package coingecko_markets

import (
	"strconv"

	cg "github.com/status-im/solscope/coingecko_common"
)

const (
	// Complete path for markets API endpoint
	MARKETS_API_PATH = "/api/v3/coins/markets"
)

// MarketsRequestBuilder implements the Builder pattern for CoinGecko markets API requests
type MarketsRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewMarketRequestBuilder creates a request builder with the parameters every category
// ranking request carries.
func NewMarketRequestBuilder(baseURL string) *MarketsRequestBuilder {
	rb := &MarketsRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, MARKETS_API_PATH),
	}

	rb.WithCurrency("usd")
	rb.WithOrder("market_cap_desc")
	rb.WithPage(1)
	rb.WithSparkline(false)
	rb.WithPriceChangePercentage("24h")
	rb.With("locale", "en")

	return rb
}

// WithPage adds page parameter for pagination
func (rb *MarketsRequestBuilder) WithPage(page int) *MarketsRequestBuilder {
	if page > 0 {
		rb.With("page", strconv.Itoa(page))
	}
	return rb
}

// WithPerPage adds per_page parameter
func (rb *MarketsRequestBuilder) WithPerPage(perPage int) *MarketsRequestBuilder {
	if perPage > 0 {
		rb.With("per_page", strconv.Itoa(perPage))
	}
	return rb
}

// WithOrder adds ordering parameter
func (rb *MarketsRequestBuilder) WithOrder(order string) *MarketsRequestBuilder {
	if order != "" {
		rb.With("order", order)
	}
	return rb
}

// WithCategory adds category parameter
func (rb *MarketsRequestBuilder) WithCategory(category string) *MarketsRequestBuilder {
	if category != "" {
		rb.With("category", category)
	}
	return rb
}

// WithSparkline sets the sparkline parameter
func (rb *MarketsRequestBuilder) WithSparkline(enabled bool) *MarketsRequestBuilder {
	rb.With("sparkline", strconv.FormatBool(enabled))
	return rb
}

// WithPriceChangePercentage adds price_change_percentage parameter
func (rb *MarketsRequestBuilder) WithPriceChangePercentage(window string) *MarketsRequestBuilder {
	if window != "" {
		rb.With("price_change_percentage", window)
	}
	return rb
}

// WithCurrency overrides vs_currency
func (rb *MarketsRequestBuilder) WithCurrency(currency string) *MarketsRequestBuilder {
	rb.CoingeckoRequestBuilder.WithCurrency(currency)
	return rb
}

// WithApiKey sets the key used for the request
func (rb *MarketsRequestBuilder) WithApiKey(key cg.APIKey) *MarketsRequestBuilder {
	rb.CoingeckoRequestBuilder.WithApiKey(key)
	return rb
}
