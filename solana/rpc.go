// Package solana is a minimal JSON-RPC client for wallet lookups.
package solana

import (
	"context"

	"github.com/status-im/solscope/domain"
)

// TokenProgramID is the SPL Token program.
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// RPCClient defines the Solana RPC calls used by wallet lookups.
type RPCClient interface {
	// GetBalance returns the lamport balance of an account.
	GetBalance(ctx context.Context, address string) (uint64, error)

	// GetTokenAccountsByOwner returns the SPL token balances held by owner.
	GetTokenAccountsByOwner(ctx context.Context, owner string) ([]domain.TokenHolding, error)
}
