package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockr/internal/chart"
	"github.com/guttosm/stockr/internal/domain/dto"
	"github.com/guttosm/stockr/internal/logger"
	"github.com/guttosm/stockr/internal/middleware"
	"github.com/guttosm/stockr/internal/provider"
	"github.com/guttosm/stockr/internal/service"
	"github.com/guttosm/stockr/internal/storage"
)

// errNoSymbol is reported when a session has no symbol and no default is configured.
var errNoSymbol = errors.New("no symbol recorded for this session")

// Handler provides HTTP handlers for the stock analysis endpoints.
//
// Responsibilities:
//   - Normalize the requested symbol
//   - Run the analysis service with the request context
//   - Encode reports (JSON) or render charts (SVG)
//   - Remember the last symbol per browser session
type Handler struct {
	svc           service.AnalysisService
	sessions      storage.SessionRepository
	defaultSymbol string
	chartOpts     chart.SVGOptions
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc: analysis service.
//   - sessions: last-symbol store; may be nil to disable session tracking.
//   - defaultSymbol: symbol returned by GetLastSymbol for new sessions ("" for none).
//   - chartOpts: size of charts served by GetChart.
func NewHandler(svc service.AnalysisService, sessions storage.SessionRepository, defaultSymbol string, chartOpts chart.SVGOptions) *Handler {
	return &Handler{
		svc:           svc,
		sessions:      sessions,
		defaultSymbol: service.NormalizeSymbol(defaultSymbol),
		chartOpts:     chartOpts,
	}
}

// GetAnalysis handles GET /api/v1/stock/:symbol requests.
//
// GetAnalysis godoc
// @Summary      Analyze a stock symbol
// @Description  Fetches about six months of daily quotes and returns min/max close, price bounds and the regular/volatile split
// @Tags         stock
// @Produce      json
// @Param        symbol  path      string  true   "Ticker symbol" example(AAPL)
// @Param        chart   query     string  false  "Set to svg to embed the chart in chart_svg" Enums(svg)
// @Success      200     {object}  dto.AnalysisResponse  "Success"
// @Failure      404     {object}  dto.ErrorResponse     "Unknown symbol or empty series"
// @Failure      422     {object}  dto.ErrorResponse     "Invalid provider data"
// @Failure      502     {object}  dto.ErrorResponse     "Provider failure"
// @Failure      504     {object}  dto.ErrorResponse     "Timeout"
// @Router       /api/v1/stock/{symbol} [get]
func (h *Handler) GetAnalysis(c *gin.Context) {
	ctx := c.Request.Context()
	symbol := service.NormalizeSymbol(c.Param("symbol"))

	report, err := h.svc.Analyze(ctx, symbol)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := dto.NewAnalysisResponse(report)
	if c.Query("chart") == "svg" {
		img, err := chart.RenderSVG(report, h.chartOpts)
		if err != nil {
			h.fail(c, err)
			return
		}
		resp.ChartSVG = string(img)
	}

	body, err := resp.Encode()
	if err != nil {
		h.fail(c, err)
		return
	}

	h.remember(c, symbol)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetChart handles GET /api/v1/stock/:symbol/chart.svg requests.
//
// GetChart godoc
// @Summary      Candlestick chart of a stock symbol
// @Description  Renders regular (outlined) and volatile (filled) candlesticks as SVG
// @Tags         stock
// @Produce      image/svg+xml
// @Param        symbol  path      string  true  "Ticker symbol" example(AAPL)
// @Success      200     {string}  string             "SVG document"
// @Failure      404     {object}  dto.ErrorResponse  "Unknown symbol or empty series"
// @Failure      500     {object}  dto.ErrorResponse  "Render failure"
// @Failure      502     {object}  dto.ErrorResponse  "Provider failure"
// @Router       /api/v1/stock/{symbol}/chart.svg [get]
func (h *Handler) GetChart(c *gin.Context) {
	symbol := service.NormalizeSymbol(c.Param("symbol"))

	report, err := h.svc.Analyze(c.Request.Context(), symbol)
	if err != nil {
		h.fail(c, err)
		return
	}

	img, err := chart.RenderSVG(report, h.chartOpts)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", img)
}

// GetLastSymbol handles GET /api/v1/stock requests.
//
// GetLastSymbol godoc
// @Summary      Last analyzed symbol
// @Description  Returns the last symbol analyzed by this browser session, or the configured default
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.SessionSymbolResponse  "Success"
// @Failure      404  {object}  dto.ErrorResponse          "No symbol yet"
// @Failure      500  {object}  dto.ErrorResponse          "Session store failure"
// @Router       /api/v1/stock [get]
func (h *Handler) GetLastSymbol(c *gin.Context) {
	if sid := middleware.SessionID(c); sid != "" && h.sessions != nil {
		last, err := h.sessions.LastSymbol(c.Request.Context(), sid)
		if err != nil {
			middleware.AbortWithCode(c, http.StatusInternalServerError, "session_error", "failed to read session", err)
			return
		}
		if last != nil {
			c.JSON(http.StatusOK, dto.SessionSymbolResponse{Symbol: last.Symbol, Source: dto.SymbolSourceSession})
			return
		}
	}

	if h.defaultSymbol == "" {
		middleware.AbortWithCode(c, http.StatusNotFound, "symbol_not_found", "no symbol yet", errNoSymbol)
		return
	}
	c.JSON(http.StatusOK, dto.SessionSymbolResponse{Symbol: h.defaultSymbol, Source: dto.SymbolSourceDefault})
}

// remember stores symbol for the caller's session. Failures are logged only;
// the analysis has already succeeded.
func (h *Handler) remember(c *gin.Context, symbol string) {
	sid := middleware.SessionID(c)
	if sid == "" || h.sessions == nil {
		return
	}
	if err := h.sessions.SaveSymbol(c.Request.Context(), sid, symbol); err != nil {
		logger.L().Warn().Err(err).Str("session_id", sid).Str("symbol", symbol).Msg("failed to save session symbol")
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code, msg := statusFor(err)
	ev := logger.L().Warn()
	if status >= http.StatusInternalServerError && !errors.Is(err, provider.ErrProvider) {
		ev = logger.L().Error()
	}
	ev.Err(err).Str("path", c.Request.URL.Path).Int("status", status).Str("code", code).Msg("request failed")
	middleware.AbortWithCode(c, status, code, msg, err)
}
