package domain

// MarketCoin is a row of the CoinGecko /coins/markets response.
// Nullable numeric fields decode to zero.
type MarketCoin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	TotalVolume              float64 `json:"total_volume"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	CirculatingSupply        float64 `json:"circulating_supply"`
	TotalSupply              float64 `json:"total_supply"`
	MaxSupply                float64 `json:"max_supply"`
	LastUpdated              string  `json:"last_updated"`
}

// RankedCoin is a scored coin that made it into a ranking.
type RankedCoin struct {
	Rank      int      `json:"rank"`
	ID        string   `json:"id"`
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Image     string   `json:"image,omitempty"`
	Price     float64  `json:"price"`
	Change24h float64  `json:"change_24h"`
	Volume    float64  `json:"volume"`
	MarketCap float64  `json:"market_cap"`
	Score     float64  `json:"score"`
	Sentiment *float64 `json:"sentiment,omitempty"`

	// Supply figures are kept so the score breakdown can be recomputed for display.
	CirculatingSupply float64 `json:"circulating_supply,omitempty"`
	TotalSupply       float64 `json:"total_supply,omitempty"`
}

// ScorePoint is one appearance of a coin in a stored snapshot.
type ScorePoint struct {
	SnapshotID  string  `json:"snapshot_id"`
	CoinID      string  `json:"coin_id"`
	Rank        int     `json:"rank"`
	Score       float64 `json:"score"`
	Price       float64 `json:"price"`
	GeneratedAt int64   `json:"generated_at"`
}
