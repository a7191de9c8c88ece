package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockr/config"
	"github.com/guttosm/stockr/internal/chart"
	"github.com/guttosm/stockr/internal/client"
	"github.com/guttosm/stockr/internal/domain/models"
	"github.com/guttosm/stockr/internal/logger"
	"github.com/guttosm/stockr/internal/service"
)

// reportSource produces the analysis of one symbol.
type reportSource func(ctx context.Context, symbol string) (*models.AnalysisReport, error)

func newChartCmd() *cobra.Command {
	var (
		symbols  []string
		outDir   string
		server   string
		parallel int
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render candlestick charts (<SYMBOL>.svg) for one or more symbols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := normalizeSymbols(symbols)
			if len(list) == 0 {
				return fmt.Errorf("missing --symbol (e.g. AAPL,MSFT)")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}

			var src reportSource
			if server != "" {
				src = client.New(server, timeout).FetchReport
			} else {
				src = newAnalysisService().Analyze
			}

			opts := chart.DefaultSVGOptions()
			if c := config.AppConfig.Chart; c.Width > 0 && c.Height > 0 {
				opts.Width, opts.Height = c.Width, c.Height
			}

			return renderCharts(cmd.Context(), src, list, outDir, parallel, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&symbols, "symbol", "s", nil, "Ticker symbols, comma separated")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&server, "server", "", "Fetch reports from a running stockr server instead of the provider")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "How many symbols to render concurrently")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "HTTP timeout in --server mode")
	return cmd
}

// normalizeSymbols upper-cases, trims and de-duplicates symbols, keeping order.
func normalizeSymbols(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = service.NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// renderCharts writes one SVG per symbol into outDir. Symbols are processed
// concurrently, at most parallel at a time; the first failure cancels the rest.
func renderCharts(ctx context.Context, src reportSource, symbols []string, outDir string, parallel int, opts chart.SVGOptions) error {
	if parallel < 1 {
		parallel = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, sym := range symbols {
		sym := sym
		g.Go(func() error {
			rep, err := src(gctx, sym)
			if err != nil {
				return fmt.Errorf("%s: %w", sym, err)
			}
			img, err := chart.RenderSVG(rep, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", sym, err)
			}
			path := filepath.Join(outDir, sym+".svg")
			if err := os.WriteFile(path, img, 0o644); err != nil {
				return fmt.Errorf("%s: write %s: %w", sym, path, err)
			}
			logger.L().Info().Str("symbol", sym).Str("file", path).Int("quotes", rep.QuoteCount()).Msg("chart written")
			return nil
		})
	}

	return g.Wait()
}
