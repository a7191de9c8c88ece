package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guttosm/stockr/internal/analysis"
	"github.com/guttosm/stockr/internal/domain/models"
	"github.com/guttosm/stockr/internal/logger"
	"github.com/guttosm/stockr/internal/provider"
)

// Default lookback of an analysis request.
const (
	DefaultInterval = "1d"
	DefaultRange    = "6mo"
)

// AnalysisService fetches a symbol's quotes and builds its analysis report.
// This decouples HTTP handlers and CLI commands from the provider.
type AnalysisService interface {
	Analyze(ctx context.Context, symbol string) (*models.AnalysisReport, error)
}

type analysisService struct {
	provider provider.QuoteProvider
	interval string
	rng      string
}

// NewAnalysisService builds a service over p. Empty interval/rng fall back
// to DefaultInterval/DefaultRange.
func NewAnalysisService(p provider.QuoteProvider, interval, rng string) AnalysisService {
	if interval == "" {
		interval = DefaultInterval
	}
	if rng == "" {
		rng = DefaultRange
	}
	return &analysisService{provider: p, interval: interval, rng: rng}
}

// Analyze runs one self-contained analysis. The provider call holds no lock
// and its result is handed to the assembler as-is; the call either returns a
// full report or an error.
func (s *analysisService) Analyze(ctx context.Context, symbol string) (*models.AnalysisReport, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", provider.ErrSymbolNotFound)
	}

	raw, err := s.provider.FetchDailyQuotes(ctx, symbol, s.interval, s.rng)
	if err != nil {
		return nil, err
	}

	report, err := analysis.Assemble(symbol, raw)
	if err != nil {
		return nil, err
	}

	logger.L().Info().
		Str("symbol", symbol).
		Str("provider", s.provider.Name()).
		Int("quotes", report.QuoteCount()).
		Int("volatile", len(report.VolatileQuotes)).
		Float64("min_close", report.MinClosePrice).
		Str("min_close_date", report.MinCloseDate.Format("2006-01-02")).
		Float64("max_close", report.MaxClosePrice).
		Str("max_close_date", report.MaxCloseDate.Format("2006-01-02")).
		Msg("analysis complete")

	return report, nil
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
