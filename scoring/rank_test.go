package scoring

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
)

func coin(id string, price, volume, change float64) domain.MarketCoin {
	return domain.MarketCoin{
		ID:                       id,
		Symbol:                   id,
		Name:                     id,
		CurrentPrice:             price,
		TotalVolume:              volume,
		PriceChangePercentage24h: change,
	}
}

func TestRank_FiltersAndOrders(t *testing.T) {
	params := config.DefaultScoringConfig()
	coins := []domain.MarketCoin{
		coin("dust", 0.00001, 900_000_000, 50), // below min price
		coin("thin", 1, 400_000, 50),           // volume below minimum
		coin("flat", 1, 60_000_000, 0),         // score 0.6, not above 1.0
		coin("mid", 1, 150_000_000, 5),         // 1.5 + 0.5
		coin("top", 1, 400_000_000, 20),        // 4 + 2
		coin("tie", 2, 150_000_000, 5),         // same score as mid, later in input
		coin("edge", 1, 100_000_000, 0),        // exactly 1.0 is not kept
	}

	ranked := Rank(coins, nil, params)

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
		assert.Equal(t, i+1, r.Rank)
		assert.Nil(t, r.Sentiment)
	}
	assert.Equal(t, []string{"top", "mid", "tie"}, ids)
	assert.InDelta(t, 6.0, ranked[0].Score, 1e-9)
}

func TestRank_UsesSentiment(t *testing.T) {
	params := config.DefaultScoringConfig()
	coins := []domain.MarketCoin{
		coin("a", 1, 100_000_000, 0),
		coin("b", 1, 100_000_000, 0),
	}

	ranked := Rank(coins, map[string]float64{"b": 0.5}, params)

	require.Len(t, ranked, 1)
	assert.Equal(t, "b", ranked[0].ID)
	assert.InDelta(t, 2.0, ranked[0].Score, 1e-9)
	require.NotNil(t, ranked[0].Sentiment)
	assert.InDelta(t, 0.5, *ranked[0].Sentiment, 1e-9)
}

func TestRank_TruncatesToMaxResults(t *testing.T) {
	params := config.DefaultScoringConfig()
	params.MaxResults = 3

	var coins []domain.MarketCoin
	for i := 0; i < 8; i++ {
		coins = append(coins, coin(fmt.Sprintf("c%d", i), 1, float64(200_000_000+i*10_000_000), 10))
	}

	ranked := Rank(coins, nil, params)

	require.Len(t, ranked, 3)
	assert.Equal(t, "c7", ranked[0].ID)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, nil, config.DefaultScoringConfig()))
}

func TestRank_CarriesMarketFields(t *testing.T) {
	params := config.DefaultScoringConfig()
	in := domain.MarketCoin{
		ID:                       "fetch-ai",
		Symbol:                   "fet",
		Name:                     "Fetch.ai",
		Image:                    "https://example.com/fet.png",
		CurrentPrice:             1.23,
		MarketCap:                3e9,
		TotalVolume:              250_000_000,
		PriceChangePercentage24h: 12.5,
		CirculatingSupply:        2.5e9,
		TotalSupply:              2.63e9,
	}

	ranked := Rank([]domain.MarketCoin{in}, nil, params)

	want := []domain.RankedCoin{{
		Rank:              1,
		ID:                "fetch-ai",
		Symbol:            "fet",
		Name:              "Fetch.ai",
		Image:             "https://example.com/fet.png",
		Price:             1.23,
		Change24h:         12.5,
		Volume:            250_000_000,
		MarketCap:         3e9,
		Score:             3.75,
		CirculatingSupply: 2.5e9,
		TotalSupply:       2.63e9,
	}}
	if diff := cmp.Diff(want, ranked); diff != "" {
		t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
	}

	c := BreakdownOf(ranked[0], 1, params)
	assert.InDelta(t, ranked[0].Score, c.Total(), 1e-9)
}
