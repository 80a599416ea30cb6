package render

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/broker-client/src/view"
)

func formatPrice(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.2f", v)
}

func WriteMessage(w io.Writer, m view.Message) {
	if m.IsZero() {
		return
	}

	if m.IsError() {
		fmt.Fprintf(w, "error (%s): %s\n", m.Kind, m.Text)
		return
	}

	fmt.Fprintln(w, m.Text)
}

func WriteAccounts(w io.Writer, accounts []view.Option) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, "no accounts")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "account"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for i, account := range accounts {
		table.Append([]string{fmt.Sprintf("%d", i+1), account.Label})
	}

	table.Render()
}

func WriteStockRows(w io.Writer, rows []view.StockRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no stocks found")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"label", "value", "isin"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	values := make(stats.Float64Data, 0, len(rows))
	for _, row := range rows {
		table.Append([]string{row.Label, formatPrice(row.Value), row.Isin})
		values = append(values, row.Value)
	}

	table.Render()

	summary, err := summarize(values)
	if err != nil {
		return fmt.Errorf("WriteStockRows: %w", err)
	}

	fmt.Fprintln(w, summary)
	return nil
}

func summarize(values stats.Float64Data) (string, error) {
	min, err := stats.Min(values)
	if err != nil {
		return "", fmt.Errorf("summarize: min: %w", err)
	}

	max, err := stats.Max(values)
	if err != nil {
		return "", fmt.Errorf("summarize: max: %w", err)
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return "", fmt.Errorf("summarize: mean: %w", err)
	}

	return fmt.Sprintf("%d stocks, value min %s / mean %s / max %s", len(values), formatPrice(min), formatPrice(mean), formatPrice(max)), nil
}
