package main

//
//  @title           stockr API
//  @version         1.0
//  @description     Six-month daily quote analysis with volatility split and candlestick charts.
//  @termsOfService  https://github.com/guttosm/stockr
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockr
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stock
//  @tag.description Stock analysis, charts and the session's last symbol
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/guttosm/stockr/config"
	_ "github.com/guttosm/stockr/docs" // swagger docs
	"github.com/guttosm/stockr/internal/app"
	"github.com/guttosm/stockr/internal/logger"
	"github.com/guttosm/stockr/internal/service"
)

// newAnalysisService is an indirection used by the CLI commands; overridden in tests.
var newAnalysisService = func() service.AnalysisService {
	return app.NewAnalysisService(config.AppConfig)
}

// newRootCmd builds the stockr command tree.
//
// Subcommands:
//   - serve:   HTTP API and browser client.
//   - analyze: print one symbol's daily table and min/max summary.
//   - chart:   render SVG charts for one or more symbols.
//   - migrate: apply the session store migrations.
//
// Configuration is loaded before any subcommand runs. CLI logs go to stderr
// so table output on stdout stays clean; serve switches back to stdout.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stockr",
		Short:         "Six-month stock quote analysis and charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
			logger.InitWithWriter(cmd.ErrOrStderr())
		},
	}

	root.AddCommand(
		newServeCmd(),
		newAnalyzeCmd(),
		newChartCmd(),
		newMigrateCmd(),
	)

	return root
}

// main is the entry point of the stockr application.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.L().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
