package config

import "strings"

// DefaultChain is used for categories without an explicit chain.
const DefaultChain = "solana"

var categoryChains = map[string]string{
	"solana-meme-coins":          "solana",
	"artificial-intelligence":    "ethereum",
	"decentralized-finance-defi": "ethereum",
	"layer-1":                    "ethereum",
	"initial-coin-offerings":     "ethereum",
}

// ChainForCategory returns the chain whose DEX listings match a category.
func ChainForCategory(category string) string {
	if chain, ok := categoryChains[strings.ToLower(category)]; ok {
		return chain
	}
	return DefaultChain
}
