package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/guttosm/stockr/internal/domain/dto"
	"github.com/guttosm/stockr/internal/domain/models"
	"github.com/guttosm/stockr/internal/service"
)

func newAnalyzeCmd() *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the daily quotes and min/max close of a symbol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol = service.NormalizeSymbol(symbol)
			if symbol == "" {
				return fmt.Errorf("missing --symbol (e.g. AAPL)")
			}

			rep, err := newAnalysisService().Analyze(cmd.Context(), symbol)
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}

	cmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Ticker symbol to analyze")
	return cmd
}

const rowFormat = "%-10s %10s %10s %10s %10s %12s %10s %-8s\n"

// printReport writes the quotes in date order, volatile rows highlighted,
// followed by the min/max summary.
func printReport(w io.Writer, rep *models.AnalysisReport) {
	quotes := make([]models.DailyQuote, 0, rep.QuoteCount())
	quotes = append(quotes, rep.RegularQuotes...)
	quotes = append(quotes, rep.VolatileQuotes...)
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Date.Before(quotes[j].Date) })

	bold := color.New(color.Bold)
	volatile := color.New(color.FgYellow)

	_, _ = bold.Fprintf(w, "%s %s to %s\n", rep.Symbol, rep.StartDate.Format(dto.DateLayout), rep.EndDate.Format(dto.DateLayout))
	_, _ = bold.Fprintf(w, rowFormat, "Date", "Open", "High", "Low", "Close", "Volume", "AdjClose", "Volatile")

	for _, q := range quotes {
		row := fmt.Sprintf(rowFormat,
			q.Date.Format(dto.DateLayout),
			price(q.Open), price(q.High), price(q.Low), price(q.Close),
			fmt.Sprintf("%d", q.Volume), price(q.AdjClose), yesNo(q.IsVolatile))
		if q.IsVolatile {
			_, _ = volatile.Fprint(w, row)
			continue
		}
		_, _ = fmt.Fprint(w, row)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Minimum close: %s on %s\n", price(rep.MinClosePrice), rep.MinCloseDate.Format(dto.DateLayout))
	_, _ = fmt.Fprintf(w, "Maximum close: %s on %s\n", price(rep.MaxClosePrice), rep.MaxCloseDate.Format(dto.DateLayout))
	_, _ = fmt.Fprintf(w, "Price range:   %s to %s\n", price(rep.MinLowPrice), price(rep.MaxHighPrice))
	_, _ = fmt.Fprintf(w, "Volatile days: %d of %d\n", len(rep.VolatileQuotes), rep.QuoteCount())
}

func price(v float64) string { return fmt.Sprintf("%.2f", v) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
