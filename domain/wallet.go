package domain

import "time"

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// TokenHolding is an SPL token balance held by a wallet.
type TokenHolding struct {
	Mint     string  `json:"mint"`
	Amount   string  `json:"amount"`
	Decimals int     `json:"decimals"`
	UIAmount float64 `json:"ui_amount"`
}

// WalletSummary is the on-chain state of a Solana wallet.
type WalletSummary struct {
	Address   string         `json:"address"`
	Lamports  uint64         `json:"lamports"`
	SOL       float64        `json:"sol"`
	Tokens    []TokenHolding `json:"tokens"`
	FetchedAt time.Time      `json:"fetched_at"`
}
