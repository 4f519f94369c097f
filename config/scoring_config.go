package config

import "fmt"

// ScoringConfig holds the thresholds and weights of the gem score.
type ScoringConfig struct {
	MinVolume        float64 `yaml:"min_volume"`
	MinPrice         float64 `yaml:"min_price"`
	MinChange        float64 `yaml:"min_change"`
	MaxSupplyRatio   float64 `yaml:"max_supply_ratio"`
	MinScore         float64 `yaml:"min_score"`
	MaxResults       int     `yaml:"max_results"`
	ScoreThreshold   float64 `yaml:"score_threshold"`
	VolumeReference  float64 `yaml:"volume_reference"`
	CategorySizeUnit float64 `yaml:"category_size_unit"`
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MinVolume:        500_000,
		MinPrice:         0.0001,
		MinChange:        0,
		MaxSupplyRatio:   0.8,
		MinScore:         1.0,
		MaxResults:       10,
		ScoreThreshold:   5.0,
		VolumeReference:  100_000_000,
		CategorySizeUnit: 50,
	}
}

func (c *ScoringConfig) Validate() error {
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be at least 1")
	}
	if c.VolumeReference <= 0 {
		return fmt.Errorf("volume_reference must be positive")
	}
	if c.CategorySizeUnit <= 0 {
		return fmt.Errorf("category_size_unit must be positive")
	}
	if c.MaxSupplyRatio < 0 || c.MaxSupplyRatio > 1 {
		return fmt.Errorf("max_supply_ratio must be within [0, 1]")
	}
	return nil
}
