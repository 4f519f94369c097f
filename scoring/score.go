// Package scoring computes the gem score of a coin and ranks a category by it.
package scoring

import (
	"math"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
)

// Component caps.
const (
	MaxVolumeScore    = 5.0
	MaxChangeScore    = 3.0
	SupplyScoreWeight = 2.0
	SentimentWeight   = 2.0
)

// Components is the contribution of each factor to a score.
type Components struct {
	Volume    float64 `json:"volume"`
	Change    float64 `json:"change"`
	Supply    float64 `json:"supply"`
	Sentiment float64 `json:"sentiment"`
}

// Total is the rounded sum of the components.
func (c Components) Total() float64 {
	return Round2(c.Volume + c.Change + c.Supply + c.Sentiment)
}

// Breakdown returns the unrounded contribution of each factor.
func Breakdown(coin domain.MarketCoin, categorySize int, sentiment *float64, params config.ScoringConfig) Components {
	var c Components

	if coin.TotalVolume > params.MinVolume {
		divisor := params.VolumeReference / math.Max(1, float64(categorySize)/params.CategorySizeUnit)
		c.Volume = math.Min(MaxVolumeScore, coin.TotalVolume/divisor)
	}

	if coin.PriceChangePercentage24h > params.MinChange {
		c.Change = math.Min(coin.PriceChangePercentage24h/10, MaxChangeScore)
	}

	// A missing total supply decodes to zero and skips this factor.
	if coin.TotalSupply > 0 && coin.CirculatingSupply > 0 {
		ratio := coin.CirculatingSupply / coin.TotalSupply
		if ratio < params.MaxSupplyRatio {
			c.Supply = (1 - ratio) * SupplyScoreWeight
		}
	}

	if sentiment != nil && *sentiment != 0 {
		c.Sentiment = *sentiment * SentimentWeight
	}

	return c
}

// Score is the weighted sum of volume, 24h change, supply ratio and sentiment,
// rounded to two decimals.
func Score(coin domain.MarketCoin, categorySize int, sentiment *float64, params config.ScoringConfig) float64 {
	return Breakdown(coin, categorySize, sentiment, params).Total()
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
