// Package export renders the filtered directory as the downloadable CSV.
package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/apylist/apylist/internal/model"
)

// Filename is the attachment name offered to the browser.
const Filename = "apy-list-data.csv"

var headers = []string{"Name", "Provider", "Type", "APY (%)", "Risk", "TVL (USD)", "Chain", "Project"}

// WriteCSV emits the fixed 8-column table. Every cell is double-quoted,
// matching the file format the site has always produced.
func WriteCSV(w io.Writer, items []model.Item) error {
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, headers)
	for _, item := range items {
		rows = append(rows, []string{
			item.Name,
			item.Provider,
			item.Type,
			formatNumber(item.APY),
			item.Risk,
			formatNumber(item.TVLUSD),
			item.Chain,
			item.Project,
		})
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
