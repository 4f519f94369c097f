package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/status-im/solscope/domain"
)

var terminalHeaders = []string{"Rank", "Coin", "Price ($)", "24h Change (%)", "Volume ($)", "Mkt Cap ($)", "Score"}

const changeColumn = 3

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	positiveStyle = cellStyle.Foreground(lipgloss.Color("#28a745"))
	negativeStyle = cellStyle.Foreground(lipgloss.Color("#dc3545"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Terminal writes the ranking table followed by the hot picks.
func Terminal(w io.Writer, snap *domain.Snapshot) error {
	if snap.Empty() {
		_, err := fmt.Fprintln(w, "No coins meet criteria.")
		return err
	}

	rows := make([][]string, 0, len(snap.Results))
	for _, c := range snap.Results {
		rows = append(rows, []string{
			fmt.Sprint(c.Rank),
			c.Name,
			FormatPrice(c.Price),
			FormatChange(c.Change24h) + "%",
			FormatAmount(c.Volume),
			FormatAmount(c.MarketCap),
			FormatScore(c.Score),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(terminalHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == changeColumn && row >= 0 && row < len(snap.Results) {
				if snap.Results[row].Change24h > 0 {
					return positiveStyle
				}
				return negativeStyle
			}
			return cellStyle
		})

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Top %d %s Gems Dashboard", len(snap.Results), CategoryTitle(snap.Category))))
	sb.WriteString("\n")
	sb.WriteString(t.String())
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Hot Picks (Score > %s):\n", formatThreshold(snap.ScoreThreshold)))
	picks := snap.HotPicks()
	if len(picks) == 0 {
		sb.WriteString("  No coins above threshold.\n")
	}
	for _, c := range picks {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", c.Name, FormatScore(c.Score)))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Wallet writes a wallet summary.
func Wallet(w io.Writer, summary *domain.WalletSummary) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Wallet " + summary.Address))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("SOL: %s (%s lamports)\n", FormatPrice(summary.SOL), FormatAmount(float64(summary.Lamports))))

	if len(summary.Tokens) == 0 {
		sb.WriteString("No SPL token holdings.\n")
	} else {
		rows := make([][]string, 0, len(summary.Tokens))
		for _, tok := range summary.Tokens {
			rows = append(rows, []string{tok.Mint, FormatAmount(tok.UIAmount), fmt.Sprint(tok.Decimals)})
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			Headers("Mint", "Amount", "Decimals").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// History writes one line per stored snapshot.
func History(w io.Writer, snaps []*domain.Snapshot) error {
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(w, "No stored snapshots.")
		return err
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		top := "-"
		if !s.Empty() {
			top = fmt.Sprintf("%s (%s)", s.Results[0].Name, FormatScore(s.Results[0].Score))
		}
		rows = append(rows, []string{
			s.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			s.ID,
			CategoryTitle(s.Category),
			fmt.Sprint(len(s.Results)),
			fmt.Sprint(len(s.HotPicks())),
			top,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Generated", "ID", "Category", "Ranked", "Hot", "Top").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := io.WriteString(w, t.String()+"\n")
	return err
}
