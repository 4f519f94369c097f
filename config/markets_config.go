package config

import (
	"fmt"
	"slices"
	"time"
)

// MarketsConfig controls how category rankings are fetched from CoinGecko.
type MarketsConfig struct {
	Category     string        `yaml:"category"`      // preferred category
	Categories   []string      `yaml:"categories"`    // fallback order
	Currency     string        `yaml:"currency"`      // vs_currency
	PerPage      int           `yaml:"per_page"`      // coins fetched per category
	TTL          time.Duration `yaml:"ttl"`           // cache TTL for a category page
	RequestDelay time.Duration `yaml:"request_delay"` // pause between fallback attempts
	MaxRetries   int           `yaml:"max_retries"`
}

func DefaultMarketsConfig() MarketsConfig {
	return MarketsConfig{
		Category: "artificial-intelligence",
		Categories: []string{
			"solana-meme-coins",
			"artificial-intelligence",
			"decentralized-finance-defi",
			"layer-1",
			"initial-coin-offerings",
		},
		Currency:     "usd",
		PerPage:      50,
		TTL:          time.Minute,
		RequestDelay: 200 * time.Millisecond,
		MaxRetries:   3,
	}
}

func (c *MarketsConfig) Validate() error {
	if c.Category == "" {
		return fmt.Errorf("category must not be empty")
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category must be configured")
	}
	if !slices.Contains(c.Categories, c.Category) {
		return fmt.Errorf("category %q is not one of %v", c.Category, c.Categories)
	}
	if c.PerPage < 1 || c.PerPage > 250 {
		return fmt.Errorf("per_page must be between 1 and 250, got %d", c.PerPage)
	}
	if c.Currency == "" {
		return fmt.Errorf("currency must not be empty")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	return nil
}

// FallbackOrder returns preferred followed by every other configured category.
func (c *MarketsConfig) FallbackOrder(preferred string) []string {
	order := make([]string, 0, len(c.Categories)+1)
	order = append(order, preferred)
	for _, cat := range c.Categories {
		if cat != preferred {
			order = append(order, cat)
		}
	}
	return order
}
