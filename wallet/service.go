// Package wallet summarizes Solana wallets for the dashboard and CLI.
package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/status-im/solscope/cache"
	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/metrics"
	"github.com/status-im/solscope/solana"
)

// Service looks up wallet balances over Solana RPC and caches the result.
type Service struct {
	rpc   solana.RPCClient
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewService(rpc solana.RPCClient, c cache.Cache, ttl time.Duration) *Service {
	s := &Service{rpc: rpc, ttl: ttl, now: time.Now}
	if c != nil {
		s.cache = cache.Namespaced(c, "wallet")
	}
	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.rpc == nil {
		return fmt.Errorf("solana rpc client not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// Lookup returns the SOL balance and SPL token holdings of address.
// Invalid addresses fail with solana.ErrInvalidAddress before any RPC call.
func (s *Service) Lookup(ctx context.Context, address string) (*domain.WalletSummary, error) {
	if err := solana.ValidateAddress(address); err != nil {
		metrics.RecordWalletLookup("invalid")
		return nil, err
	}

	if s.cache == nil {
		summary, err := s.fetch(ctx, address)
		s.record(err)
		return summary, err
	}

	data, hit, err := s.cache.GetOrLoad(ctx, address, s.ttl, func(ctx context.Context) ([]byte, error) {
		summary, err := s.fetch(ctx, address)
		if err != nil {
			return nil, err
		}
		return json.Marshal(summary)
	})
	if err != nil {
		s.record(err)
		return nil, err
	}
	if hit {
		metrics.RecordWalletLookup("cached")
	} else {
		s.record(nil)
	}

	var summary domain.WalletSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("decode cached wallet: %w", err)
	}
	return &summary, nil
}

func (s *Service) record(err error) {
	if err != nil {
		metrics.RecordWalletLookup("error")
		return
	}
	metrics.RecordWalletLookup("success")
}

func (s *Service) fetch(ctx context.Context, address string) (*domain.WalletSummary, error) {
	var (
		lamports uint64
		tokens   []domain.TokenHolding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lamports, err = s.rpc.GetBalance(gctx, address)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tokens, err = s.rpc.GetTokenAccountsByOwner(gctx, address)
		if err != nil {
			return fmt.Errorf("get token accounts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		zap.L().Warn("wallet lookup failed", zap.String("address", address), zap.Error(err))
		return nil, err
	}

	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].UIAmount > tokens[j].UIAmount })
	if tokens == nil {
		tokens = []domain.TokenHolding{}
	}

	return &domain.WalletSummary{
		Address:   address,
		Lamports:  lamports,
		SOL:       float64(lamports) / domain.LamportsPerSOL,
		Tokens:    tokens,
		FetchedAt: s.now().UTC(),
	}, nil
}
