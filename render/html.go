package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/domain"
	"github.com/status-im/solscope/scoring"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

// Page is the input of the web dashboard. Snapshot may be nil before the first refresh.
type Page struct {
	Category string
	Snapshot *domain.Snapshot
	Scoring  config.ScoringConfig
}

type pageRow struct {
	Rank        int
	Name        string
	URL         string
	Price       string
	Change      string
	ChangeClass string
	Volume      string
	MarketCap   string
	Score       string
	ScoreValue  float64
	ScoreColor  template.CSS
	Breakdown   string
}

type pageData struct {
	Title        string
	Count        int
	Threshold    string
	HotPicks     []string
	Rows         []pageRow
	SnapshotID   string
	GeneratedAt  string
	ScoreTooltip string
}

func newPageData(p Page) pageData {
	category := p.Category
	if p.Snapshot != nil {
		category = p.Snapshot.Category
	}

	data := pageData{
		Title:        CategoryTitle(category),
		Threshold:    formatThreshold(p.Scoring.ScoreThreshold),
		ScoreTooltip: ScoreTooltip,
	}
	if p.Snapshot == nil {
		return data
	}

	snap := p.Snapshot
	data.SnapshotID = snap.ID
	data.Threshold = formatThreshold(snap.ScoreThreshold)
	data.GeneratedAt = snap.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")
	data.Count = len(snap.Results)
	for _, c := range snap.HotPicks() {
		data.HotPicks = append(data.HotPicks, c.Name)
	}

	for _, c := range snap.Results {
		b := scoring.BreakdownOf(c, snap.Considered, p.Scoring)
		changeClass := "negative"
		if c.Change24h > 0 {
			changeClass = "positive"
		}
		data.Rows = append(data.Rows, pageRow{
			Rank:        c.Rank,
			Name:        c.Name,
			URL:         DexscreenerURL(c.Name),
			Price:       FormatPrice(c.Price),
			Change:      FormatChange(c.Change24h),
			ChangeClass: changeClass,
			Volume:      FormatAmount(c.Volume),
			MarketCap:   FormatAmount(c.MarketCap),
			Score:       FormatScore(c.Score),
			ScoreValue:  c.Score,
			ScoreColor:  ScoreColor(c.Score),
			Breakdown: fmt.Sprintf("Volume %.2f, 24h Change %.2f, Supply Ratio %.2f, Sentiment %.2f",
				b.Volume, b.Change, b.Supply, b.Sentiment),
		})
	}
	return data
}

// HTML renders the dashboard page.
func HTML(w io.Writer, p Page) error {
	return dashboardTemplate.Execute(w, newPageData(p))
}
