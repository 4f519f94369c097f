package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type APITokens struct {
	Tokens     []string `json:"api_tokens"`
	DemoTokens []string `json:"demo_api_tokens,omitempty"`
}

// LoadAPITokens reads CoinGecko keys from a JSON file. A missing file yields no keys.
func LoadAPITokens(filename string) (*APITokens, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return &APITokens{Tokens: []string{}}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var tokens APITokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("parse tokens file %s: %w", filename, err)
	}
	if tokens.Tokens == nil {
		tokens.Tokens = []string{}
	}
	return &tokens, nil
}
