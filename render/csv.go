package render

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/status-im/solscope/domain"
)

// ErrNoResults is returned when exporting an empty snapshot.
var ErrNoResults = errors.New("no results to export")

var csvHeader = []string{"Rank", "Coin", "Price ($)", "24h Change (%)", "Volume ($)", "Market Cap ($)", "Score"}

// CSVFileName is "{category}_gems_{unix seconds}.csv".
func CSVFileName(category string, now time.Time) string {
	return fmt.Sprintf("%s_gems_%d.csv", category, now.Unix())
}

// WriteCSV writes the ranking with a header row.
func WriteCSV(w io.Writer, snap *domain.Snapshot) error {
	if snap.Empty() {
		return ErrNoResults
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range snap.Results {
		record := []string{
			strconv.Itoa(c.Rank),
			c.Name,
			FormatPrice(c.Price),
			FormatChange(c.Change24h),
			strconv.FormatFloat(c.Volume, 'f', -1, 64),
			strconv.FormatFloat(c.MarketCap, 'f', -1, 64),
			strconv.FormatFloat(c.Score, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSVFile writes the snapshot to dir and returns the file path.
func ExportCSVFile(dir string, snap *domain.Snapshot, now time.Time) (string, error) {
	if snap.Empty() {
		return "", ErrNoResults
	}

	path := filepath.Join(dir, CSVFileName(snap.Category, now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := WriteCSV(f, snap); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
