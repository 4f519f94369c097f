package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// TokensWatcher reloads the API tokens file whenever it changes on disk.
type TokensWatcher struct {
	mu       sync.Mutex
	path     string
	onChange func(*APITokens)
	debounce time.Duration
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewTokensWatcher creates a watcher for path. onChange receives every successfully parsed reload.
func NewTokensWatcher(path string, onChange func(*APITokens)) *TokensWatcher {
	return &TokensWatcher{
		path:     path,
		onChange: onChange,
		debounce: 250 * time.Millisecond,
	}
}

// Start watches the directory holding the tokens file so atomic replaces are seen too.
func (w *TokensWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create tokens watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.run(ctx)
	zap.L().Info("watching API tokens file", zap.String("path", w.path))
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *TokensWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		zap.L().Warn("error closing tokens watcher", zap.Error(err))
	}
}

func (w *TokensWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	target := filepath.Clean(w.path)
	ticker := time.NewTicker(w.debounce / 5)
	defer ticker.Stop()

	var pendingSince time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			pendingSince = time.Now()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			zap.L().Warn("tokens watcher error", zap.Error(err))
		case <-ticker.C:
			if pendingSince.IsZero() || time.Since(pendingSince) < w.debounce {
				continue
			}
			pendingSince = time.Time{}
			w.reload()
		}
	}
}

func (w *TokensWatcher) reload() {
	tokens, err := LoadAPITokens(w.path)
	if err != nil {
		zap.L().Warn("failed to reload API tokens", zap.String("path", w.path), zap.Error(err))
		return
	}
	zap.L().Info("reloaded API tokens",
		zap.Int("pro", len(tokens.Tokens)), zap.Int("demo", len(tokens.DemoTokens)))
	if w.onChange != nil {
		w.onChange(tokens)
	}
}
