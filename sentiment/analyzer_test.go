package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		reply   string
		want    float64
		wantErr bool
	}{
		{reply: "0.73", want: 0.73},
		{reply: "Sentiment: 0.4\n", want: 0.4},
		{reply: "1", want: 1},
		{reply: "1.8 very bullish", want: 1},
		{reply: "-0.2", want: 0},
		{reply: "0.456", want: 0.46},
		{reply: "bullish", wantErr: true},
		{reply: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			got, err := parseScore(tt.reply)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnparsable)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(Subject{ID: "fetch-ai", Name: "Fetch.ai", Symbol: "fet", Category: "artificial-intelligence", Change24h: 12.345})

	assert.Contains(t, prompt, "Fetch.ai (FET)")
	assert.Contains(t, prompt, "artificial-intelligence")
	assert.Contains(t, prompt, "12.35%")
	assert.Contains(t, prompt, "between 0 and 1")
}

func TestLLMAnalyzer(t *testing.T) {
	var gotPrompt string
	a := &llmAnalyzer{
		name: "stub",
		complete: func(_ context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return "0.62", nil
		},
	}

	score, err := a.Analyze(context.Background(), Subject{ID: "sol", Name: "Solana", Symbol: "sol"})

	require.NoError(t, err)
	assert.InDelta(t, 0.62, score, 1e-9)
	assert.Contains(t, gotPrompt, "Solana (SOL)")
	assert.Equal(t, "stub", a.Name())

	a.complete = func(context.Context, string) (string, error) { return "", errors.New("overloaded") }
	_, err = a.Analyze(context.Background(), Subject{ID: "sol"})
	assert.ErrorContains(t, err, "stub: overloaded")
}

func TestMissingAPIKeys(t *testing.T) {
	_, err := NewClaudeAnalyzer("", "")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewGeminiAnalyzer(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNewClaudeAnalyzer(t *testing.T) {
	a, err := NewClaudeAnalyzer("sk-test", "")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", a.Name())
}
