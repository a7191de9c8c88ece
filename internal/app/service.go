package app

import (
	"github.com/guttosm/stockr/config"
	"github.com/guttosm/stockr/internal/provider"
	"github.com/guttosm/stockr/internal/service"
)

// NewQuoteProvider builds the provider selected by PROVIDER.
func NewQuoteProvider(cfg config.Config) provider.QuoteProvider {
	if cfg.Provider.Kind == config.ProviderCSV {
		return provider.NewCSVProvider(cfg.Provider.CSVDir)
	}
	return provider.NewYahooProvider(cfg.Provider.BaseURL, cfg.Provider.Proxy, cfg.Provider.Timeout)
}

// NewAnalysisService wires the configured provider into the analysis service.
// Shared by the HTTP server and the CLI commands.
func NewAnalysisService(cfg config.Config) service.AnalysisService {
	return service.NewAnalysisService(NewQuoteProvider(cfg), cfg.Provider.Interval, cfg.Provider.Range)
}
