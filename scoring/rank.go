package scoring

import (
	"sort"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
)

// Rank scores every coin of a category and returns the best MaxResults of them,
// ranked from 1. Coins keep their input order on equal scores.
func Rank(coins []domain.MarketCoin, sentiments map[string]float64, params config.ScoringConfig) []domain.RankedCoin {
	categorySize := len(coins)
	candidates := make([]domain.RankedCoin, 0, len(coins))

	for _, coin := range coins {
		if coin.CurrentPrice < params.MinPrice {
			continue
		}

		var sentiment *float64
		if s, ok := sentiments[coin.ID]; ok {
			sentiment = &s
		}

		score := Score(coin, categorySize, sentiment, params)
		if score <= params.MinScore || coin.TotalVolume <= params.MinVolume {
			continue
		}

		candidates = append(candidates, domain.RankedCoin{
			ID:                coin.ID,
			Symbol:            coin.Symbol,
			Name:              coin.Name,
			Image:             coin.Image,
			Price:             coin.CurrentPrice,
			Change24h:         coin.PriceChangePercentage24h,
			Volume:            coin.TotalVolume,
			MarketCap:         coin.MarketCap,
			Score:             score,
			Sentiment:         sentiment,
			CirculatingSupply: coin.CirculatingSupply,
			TotalSupply:       coin.TotalSupply,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if params.MaxResults > 0 && len(candidates) > params.MaxResults {
		candidates = candidates[:params.MaxResults]
	}
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return candidates
}

// BreakdownOf recomputes the components of a ranked coin.
func BreakdownOf(coin domain.RankedCoin, categorySize int, params config.ScoringConfig) Components {
	return Breakdown(domain.MarketCoin{
		ID:                       coin.ID,
		CurrentPrice:             coin.Price,
		TotalVolume:              coin.Volume,
		PriceChangePercentage24h: coin.Change24h,
		CirculatingSupply:        coin.CirculatingSupply,
		TotalSupply:              coin.TotalSupply,
	}, categorySize, coin.Sentiment, params)
}
