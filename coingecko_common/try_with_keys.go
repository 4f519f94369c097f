package coingecko_common

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNoKeys is returned when the key manager offers nothing to try.
var ErrNoKeys = errors.New("no api keys available")

// TryWithKeys calls fn with each key in order until one succeeds.
// Failed keys are reported to onFail. The last error is returned when every key fails.
func TryWithKeys[T any](keys []APIKey, logPrefix string, onFail func(APIKey, error), fn func(APIKey) (T, error)) (T, error) {
	var zero T
	if len(keys) == 0 {
		return zero, ErrNoKeys
	}

	var lastErr error
	for _, key := range keys {
		result, err := fn(key)
		if err == nil {
			return result, nil
		}
		lastErr = err
		zap.L().Debug("request failed with key",
			zap.String("caller", logPrefix), zap.Stringer("key_type", key.Type), zap.Error(err))
		if onFail != nil {
			onFail(key, err)
		}
	}
	return zero, fmt.Errorf("%s: all %d keys failed: %w", logPrefix, len(keys), lastErr)
}

// CreateFailCallback returns an onFail callback that puts failed keys into backoff.
func CreateFailCallback(manager IAPIKeyManager) func(APIKey, error) {
	return func(key APIKey, _ error) {
		if key.Type != NoKey {
			manager.MarkKeyAsFailed(key.Key)
		}
	}
}
