package e2etest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	marketsPath = "/api/v3/coins/markets"
	rpcPath     = "/rpc"
)

// MarketRequest records one /coins/markets call received by the mock.
type MarketRequest struct {
	Category string
	DemoKey  string
	ProKey   string
}

// MockServer serves CoinGecko category rankings and Solana JSON-RPC.
type MockServer struct {
	server *httptest.Server

	mu         sync.RWMutex
	categories map[string]string // category -> markets JSON
	requests   []MarketRequest
	balances   map[string]uint64
	tokens     map[string]string // owner -> getTokenAccountsByOwner result JSON
}

// NewMockServer creates and starts a mock upstream
func NewMockServer() *MockServer {
	ms := &MockServer{
		categories: map[string]string{
			"artificial-intelligence": defaultMarketsData(),
		},
		balances: make(map[string]uint64),
		tokens:   make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(marketsPath, ms.handleMarkets)
	mux.HandleFunc(rpcPath, ms.handleRPC)
	ms.server = httptest.NewServer(mux)
	return ms
}

// Close shuts the mock down
func (ms *MockServer) Close() {
	if ms.server != nil {
		ms.server.Close()
	}
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// SetCategory replaces the markets response of a category. An empty body removes it.
func (ms *MockServer) SetCategory(category, body string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if body == "" {
		delete(ms.categories, category)
		return
	}
	ms.categories[category] = body
}

// SetWallet registers the lamport balance and token accounts returned for owner.
func (ms *MockServer) SetWallet(owner string, lamports uint64, tokenAccounts string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.balances[owner] = lamports
	ms.tokens[owner] = tokenAccounts
}

// MarketRequests returns the markets calls received so far.
func (ms *MockServer) MarketRequests() []MarketRequest {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	out := make([]MarketRequest, len(ms.requests))
	copy(out, ms.requests)
	return out
}

func (ms *MockServer) handleMarkets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	category := query.Get("category")

	ms.mu.Lock()
	ms.requests = append(ms.requests, MarketRequest{
		Category: category,
		DemoKey:  query.Get("x_cg_demo_api_key"),
		ProKey:   query.Get("x_cg_pro_api_key"),
	})
	body, ok := ms.categories[category]
	ms.mu.Unlock()

	if !ok {
		zap.L().Debug("mock: unknown category", zap.String("category", category))
		http.Error(w, `{"error":"category not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

type rpcRequest struct {
	ID     uint64            `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func (ms *MockServer) handleRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var owner string
	if len(req.Params) > 0 {
		_ = json.Unmarshal(req.Params[0], &owner)
	}

	ms.mu.RLock()
	lamports, known := ms.balances[owner]
	accounts := ms.tokens[owner]
	ms.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if !known {
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32602,"message":"Invalid param: could not find account"}}`, req.ID)
		return
	}

	switch req.Method {
	case "getBalance":
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":{"context":{"slot":1},"value":%d}}`, req.ID, lamports)
	case "getTokenAccountsByOwner":
		if strings.TrimSpace(accounts) == "" {
			accounts = "[]"
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":{"context":{"slot":1},"value":%s}}`, req.ID, accounts)
	default:
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"Method not found"}}`, req.ID)
	}
}

// tokenAccount renders one jsonParsed SPL token account.
func tokenAccount(mint, amount string, decimals int, uiAmount float64) string {
	return fmt.Sprintf(`{"pubkey":"acc-%s","account":{"data":{"parsed":{"info":{"mint":%q,"tokenAmount":{"amount":%q,"decimals":%d,"uiAmount":%v,"uiAmountString":"%v"}}}}}}`,
		mint, mint, amount, decimals, uiAmount, uiAmount)
}

// defaultMarketsData returns three coins: alpha scores 8, beta 3.5 and a penny coin
// below the minimum price.
func defaultMarketsData() string {
	return `[
	{
		"id": "alpha",
		"symbol": "alp",
		"name": "Alpha",
		"image": "https://assets.coingecko.com/coins/images/1/large/alpha.png",
		"current_price": 1.5,
		"market_cap": 1000000000,
		"market_cap_rank": 10,
		"total_volume": 500000000,
		"price_change_percentage_24h": 30,
		"circulating_supply": 100,
		"total_supply": null,
		"max_supply": null,
		"last_updated": "2025-04-20T12:34:56.789Z"
	},
	{
		"id": "beta",
		"symbol": "bet",
		"name": "Beta",
		"image": "https://assets.coingecko.com/coins/images/2/large/beta.png",
		"current_price": 0.5,
		"market_cap": 100000000,
		"market_cap_rank": 20,
		"total_volume": 50000000,
		"price_change_percentage_24h": 20,
		"circulating_supply": 50,
		"total_supply": 100,
		"max_supply": 100,
		"last_updated": "2025-04-20T12:34:56.789Z"
	},
	{
		"id": "dust",
		"symbol": "dst",
		"name": "Dust",
		"current_price": 0.0000001,
		"market_cap": 1000,
		"total_volume": 10,
		"price_change_percentage_24h": -80,
		"circulating_supply": 1,
		"total_supply": 1
	}
]`
}

// memeMarketsData is served for the fallback category.
func memeMarketsData() string {
	return `[
	{"id":"gamma","symbol":"gam","name":"Gamma","current_price":2,"market_cap":50000000,"total_volume":250000000,"price_change_percentage_24h":10,"circulating_supply":10,"total_supply":null}
]`
}
