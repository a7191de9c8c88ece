package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockr/internal/middleware"
	"github.com/guttosm/stockr/web"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions tunes the transport-level middlewares.
type RouterOptions struct {
	RequestTimeout time.Duration // deadline of every request context
	SessionCookie  string        // name of the session cookie
	SessionTTL     time.Duration // cookie max age
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler).
//   - Adds the request timeout.
//   - Mounts Swagger docs (/swagger/*any) and the browser client (/).
//   - Configures API v1 routes (/api/v1) behind the rate limiter and session cookie.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.Timeout(opts.RequestTimeout),
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Browser client ───────────────────────────
	web.Register(router)

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1",
		middleware.RateLimiter(),
		middleware.Session(opts.SessionCookie, int(opts.SessionTTL.Seconds())),
	)
	{
		v1.GET("/stock", handler.GetLastSymbol)
		v1.GET("/stock/:symbol", handler.GetAnalysis)
		v1.GET("/stock/:symbol/chart.svg", handler.GetChart)
	}

	return router
}
