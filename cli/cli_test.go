package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/solana"
)

const marketsBody = `[
	{"id":"alpha","symbol":"alp","name":"Alpha","current_price":1.5,"market_cap":1000000000,"total_volume":500000000,"price_change_percentage_24h":30,"circulating_supply":100,"total_supply":null},
	{"id":"beta","symbol":"bet","name":"Beta","current_price":0.5,"market_cap":100000000,"total_volume":50000000,"price_change_percentage_24h":20,"circulating_supply":50,"total_supply":100}
]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, dir, upstream string) string {
	t.Helper()
	body := fmt.Sprintf(`tokens_file: %s
override_coingecko_public_url: %s
api_key_config:
  nokey:
    rate_limit_per_minute: 6000
    burst: 10
markets:
  request_delay: 0s
  max_retries: 1
sentiment:
  enabled: false
storage:
  driver: sqlite
  dsn: %s
log:
  level: error
`, filepath.Join(dir, "tokens.json"), upstream, filepath.Join(dir, "history.db"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	for name, def := range map[string]string{
		"category":        "",
		"export-csv":      "false",
		"csv-dir":         ".",
		"no-sentiment":    "false",
		"no-web":          "false",
		"score-threshold": "0",
		"port":            "0",
	} {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}

	f := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, f)
	assert.Equal(t, config.DefaultPath, f.DefValue)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"history", "wallet", "version"}, names)
}

func TestApplyFlags(t *testing.T) {
	opts := &rootOptions{}
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&opts.category, "category", "", "")
	cmd.Flags().Float64Var(&opts.scoreThreshold, "score-threshold", 0, "")
	cmd.Flags().IntVar(&opts.port, "port", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--category", "layer-1", "--port", "9000"}))
	opts.noSentiment = true

	cfg := config.Default()
	threshold := cfg.Scoring.ScoreThreshold
	applyFlags(cmd, opts, cfg)

	assert.Equal(t, "layer-1", cfg.Markets.Category)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Sentiment.Enabled)
	assert.Equal(t, threshold, cfg.Scoring.ScoreThreshold, "unset flag keeps config value")
}

func TestLoadConfig_LogsWarningsBeforeLoggerSetup(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	orig := bootstrapLogger
	bootstrapLogger = func(bool) (*zap.Logger, error) { return zap.New(core), nil }
	t.Cleanup(func() { bootstrapLogger = orig })

	t.Setenv("PORT", "abc")
	path := writeConfig(t, t.TempDir(), "http://127.0.0.1:1")

	cfg, flush, err := loadConfig(&cobra.Command{}, &rootOptions{configPath: path})
	require.NoError(t, err)
	defer flush()

	assert.Equal(t, config.Default().Server.Port, cfg.Server.Port)
	warnings := logs.FilterMessage("ignoring invalid PORT").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "abc", warnings[0].ContextMap()["value"])
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "solscope dev\n", out)
}

func TestWalletCommand_InvalidAddress(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "http://127.0.0.1:1")

	_, err := run(t, "--config", cfgPath, "wallet", "not-a-wallet")

	assert.ErrorIs(t, err, solana.ErrInvalidAddress)
}

func TestRootCommand_MissingConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "--no-web")

	assert.ErrorContains(t, err, "read config")
}

func TestRootCommand_InvalidCategory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "http://127.0.0.1:1")

	_, err := run(t, "--config", cfgPath, "--no-web", "--category", "not-a-category")

	assert.ErrorContains(t, err, "invalid markets config")
}

func TestRootCommand_NoWebExportAndHistory(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(marketsBody))
	}))
	defer upstream.Close()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, upstream.URL)
	csvDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(csvDir, 0o755))

	out, err := run(t, "--config", cfgPath, "--no-web", "--export-csv", "--csv-dir", csvDir, "--score-threshold", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "Top 2 Artificial Intelligence Gems Dashboard")
	assert.Contains(t, out, "Hot Picks (Score > 5):")
	assert.Contains(t, out, "  Alpha: 8.00")
	assert.NotContains(t, out, "  Beta: 3.50")
	assert.Contains(t, out, "Exported results to ")

	files, err := filepath.Glob(filepath.Join(csvDir, "artificial-intelligence_gems_*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)

	out, err = run(t, "--config", cfgPath, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Artificial Intelligence")
	assert.Contains(t, out, "Alpha (8.00)")
}

func TestRootCommand_NoWebUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, upstream.URL)

	_, err := run(t, "--config", cfgPath, "--no-web")

	assert.ErrorContains(t, err, "fetch markets")
}
