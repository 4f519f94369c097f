// Package sentiment scores market sentiment for coins on a 0..1 scale.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoAPIKey is returned when an LLM provider is configured without a key.
var ErrNoAPIKey = errors.New("sentiment provider api key not configured")

// ErrUnparsable is returned when a provider reply carries no number.
var ErrUnparsable = errors.New("no sentiment value in reply")

// Subject is the coin a sentiment is requested for.
type Subject struct {
	ID        string
	Name      string
	Symbol    string
	Category  string
	Change24h float64
}

// Analyzer returns a sentiment in [0, 1] for a subject.
type Analyzer interface {
	Analyze(ctx context.Context, s Subject) (float64, error)
	Name() string
}

// completeFunc sends a prompt to a text model and returns its reply.
type completeFunc func(ctx context.Context, prompt string) (string, error)

var numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

func buildPrompt(s Subject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rate the current market sentiment for the crypto token %s (%s)", s.Name, strings.ToUpper(s.Symbol))
	if s.Category != "" {
		fmt.Fprintf(&b, " in the %s category", s.Category)
	}
	fmt.Fprintf(&b, ". Its price moved %.2f%% in the last 24 hours.\n", s.Change24h)
	b.WriteString("Answer with a single number between 0 and 1, where 0 is very bearish and 1 is very bullish. ")
	b.WriteString("Do not add any other text.")
	return b.String()
}

// parseScore extracts the first number of a reply and clamps it to [0, 1].
func parseScore(reply string) (float64, error) {
	m := numberRe.FindString(reply)
	if m == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, truncate(reply, 80))
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return math.Round(clamp(v, 0, 1)*100) / 100, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// llmAnalyzer is the shared prompt/parse loop of the model-backed providers.
type llmAnalyzer struct {
	name     string
	complete completeFunc
}

func (a *llmAnalyzer) Name() string { return a.name }

func (a *llmAnalyzer) Analyze(ctx context.Context, s Subject) (float64, error) {
	reply, err := a.complete(ctx, buildPrompt(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", a.name, err)
	}
	return parseScore(reply)
}
