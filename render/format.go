// Package render turns snapshots into terminal tables, CSV files and the web dashboard.
package render

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ScoreTooltip explains how scores are composed.
const ScoreTooltip = "Weighted sum: Volume (0-5), 24h Change (0-3), Supply Ratio (0-2), Sentiment (0-2)"

var titleCaser = cases.Title(language.English)

// CategoryTitle turns a category id such as "layer-1" into "Layer 1".
func CategoryTitle(category string) string {
	return titleCaser.String(strings.ReplaceAll(category, "-", " "))
}

// FormatPrice prints six decimals without trailing zeros.
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func FormatChange(change float64) string {
	return strconv.FormatFloat(change, 'f', 2, 64)
}

// FormatAmount adds thousands separators.
func FormatAmount(v float64) string {
	return humanize.Commaf(v)
}

func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func formatThreshold(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// ScoreColor maps 0 to green and 10 or more to red.
func ScoreColor(score float64) template.CSS {
	hue := math.Max(120-score*10, 0)
	return template.CSS(fmt.Sprintf("hsl(%s, 70%%, 50%%)", strconv.FormatFloat(hue, 'f', -1, 64)))
}

// DexscreenerURL links a coin name to a DEX Screener search.
func DexscreenerURL(name string) string {
	return "https://dexscreener.com/search?q=" + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
