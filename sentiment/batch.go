package sentiment

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/status-im/solscope/metrics"
)

// AnalyzeAll rates every subject with at most concurrency calls in flight. Failed
// subjects are logged and left out of the result; they never fail the batch.
func AnalyzeAll(ctx context.Context, analyzer Analyzer, subjects []Subject, concurrency int, timeout time.Duration) map[string]float64 {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu      sync.Mutex
		results = make(map[string]float64, len(subjects))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, s := range subjects {
		g.Go(func() error {
			callCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			score, err := analyzer.Analyze(callCtx, s)
			if err != nil {
				metrics.RecordSentiment(analyzer.Name(), "error")
				zap.L().Warn("sentiment failed", zap.String("provider", analyzer.Name()), zap.String("coin", s.ID), zap.Error(err))
				return nil
			}
			metrics.RecordSentiment(analyzer.Name(), "success")

			mu.Lock()
			results[s.ID] = score
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}
