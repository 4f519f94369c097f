package sentiment

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// MockAnalyzer returns a uniform random sentiment in [0.1, 0.5].
type MockAnalyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockAnalyzer creates a mock analyzer. A zero seed uses the current time.
func NewMockAnalyzer(seed int64) *MockAnalyzer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockAnalyzer{rng: rand.New(rand.NewSource(seed))}
}

func (m *MockAnalyzer) Name() string { return "mock" }

func (m *MockAnalyzer) Analyze(ctx context.Context, _ Subject) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	v := 0.1 + m.rng.Float64()*0.4
	m.mu.Unlock()
	return math.Round(v*100) / 100, nil
}
