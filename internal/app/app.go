package app

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockr/config"
	"github.com/guttosm/stockr/internal/api"
	"github.com/guttosm/stockr/internal/chart"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the Yahoo provider and analysis service.
//   - Opens the session store (memory or PostgreSQL via InitPostgres()).
//   - Schedules session pruning with cron.
//   - Configures the Gin router with all API routes and the browser client.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to stop the scheduler and close the store.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	svc := NewAnalysisService(cfg)

	sessions, closeStore, err := NewSessionStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	pruner, err := NewSessionPruner(sessions, cfg.Session.TTL, cfg.Session.PruneCron)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	pruner.Start()

	chartOpts := chart.DefaultSVGOptions()
	if cfg.Chart.Width > 0 && cfg.Chart.Height > 0 {
		chartOpts.Width, chartOpts.Height = cfg.Chart.Width, cfg.Chart.Height
	}

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc, sessions, cfg.Server.DefaultSymbol, chartOpts)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		SessionCookie:  cfg.Session.CookieName,
		SessionTTL:     cfg.Session.TTL,
	})

	// Register health and readiness probes
	api.NewHealthHandler(sessions.Ping).Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		pruner.Stop()
		closeStore()
	}

	return router, cleanup, nil
}
