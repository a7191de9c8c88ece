package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockr/internal/analysis"
	"github.com/guttosm/stockr/internal/chart"
	"github.com/guttosm/stockr/internal/domain/dto"
	"github.com/guttosm/stockr/internal/domain/models"
	"github.com/guttosm/stockr/internal/middleware"
	"github.com/guttosm/stockr/internal/provider"
	"github.com/guttosm/stockr/internal/service"
	"github.com/guttosm/stockr/internal/storage"
)

type mockAnalysisService struct {
	resp *models.AnalysisReport
	err  error
	got  string
}

func (m *mockAnalysisService) Analyze(_ context.Context, symbol string) (*models.AnalysisReport, error) {
	m.got = symbol
	return m.resp, m.err
}

var _ service.AnalysisService = (*mockAnalysisService)(nil)

type failingSessions struct {
	storage.SessionRepository
	err error
}

func (f failingSessions) SaveSymbol(context.Context, string, string) error { return f.err }
func (f failingSessions) LastSymbol(context.Context, string) (*models.SessionSymbol, error) {
	return nil, f.err
}

func sampleReport(t *testing.T) *models.AnalysisReport {
	t.Helper()
	rep, err := analysis.Assemble("ACME", []models.RawQuote{
		{Timestamp: 1704153600, Open: 100, High: 101, Low: 100, Close: 100.5, AdjClose: 100.5, Volume: 10},
		{Timestamp: 1704240000, Open: 101, High: 110, Low: 100, Close: 108, AdjClose: 108, Volume: 20},
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return rep
}

func setupRouterWithMock(s service.AnalysisService, sessions storage.SessionRepository, def string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, sessions, def, chart.DefaultSVGOptions())
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.Session("stockr_session", 60))
	v1.GET("/stock", h.GetLastSymbol)
	v1.GET("/stock/:symbol", h.GetAnalysis)
	v1.GET("/stock/:symbol/chart.svg", h.GetChart)
	return r
}

func TestGetAnalysis_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockAnalysisService
		path   string
		status int
		code   string
	}{
		{name: "not found", svc: &mockAnalysisService{err: fmt.Errorf("%w: ZZZZ", provider.ErrSymbolNotFound)}, path: "/api/v1/stock/zzzz", status: http.StatusNotFound, code: "symbol_not_found"},
		{name: "provider down", svc: &mockAnalysisService{err: fmt.Errorf("%w: yahoo status 500", provider.ErrProvider)}, path: "/api/v1/stock/ACME", status: http.StatusBadGateway, code: "provider_error"},
		{name: "empty series", svc: &mockAnalysisService{err: analysis.ErrEmptySeries}, path: "/api/v1/stock/ACME", status: http.StatusNotFound, code: "empty_series"},
		{name: "degenerate", svc: &mockAnalysisService{err: fmt.Errorf("quote 3: %w", analysis.ErrDegenerateQuote)}, path: "/api/v1/stock/ACME", status: http.StatusUnprocessableEntity, code: "degenerate_quote"},
		{name: "timeout", svc: &mockAnalysisService{err: fmt.Errorf("%w: fetch: %w", provider.ErrProvider, context.DeadlineExceeded)}, path: "/api/v1/stock/ACME", status: http.StatusGatewayTimeout, code: "timeout"},
		{name: "unknown", svc: &mockAnalysisService{err: errors.New("boom")}, path: "/api/v1/stock/ACME", status: http.StatusInternalServerError, code: "internal_error"},
		{name: "success", svc: &mockAnalysisService{resp: sampleReport(t)}, path: "/api/v1/stock/acme", status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc, storage.NewMemorySessionRepository(), "")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, w.Code, w.Body.String())
			}

			if tc.code != "" {
				var e dto.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if e.Code != tc.code || e.ErrorDetails == "" {
					t.Fatalf("unexpected error body: %+v", e)
				}
				return
			}

			rep, err := dto.DecodeReport(w.Body.Bytes())
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if rep.MaxClosePrice != 108 || len(rep.VolatileQuotes) != 1 || len(rep.RegularQuotes) != 1 {
				t.Fatalf("unexpected report: %+v", rep)
			}
			if tc.svc.got != "ACME" {
				t.Fatalf("symbol not normalized: %q", tc.svc.got)
			}
		})
	}
}

func TestGetChart(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockAnalysisService
		status int
		ctype  string
	}{
		{name: "svg", svc: &mockAnalysisService{resp: sampleReport(t)}, status: http.StatusOK, ctype: "image/svg+xml"},
		{name: "not found", svc: &mockAnalysisService{err: provider.ErrSymbolNotFound}, status: http.StatusNotFound, ctype: "application/json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc, nil, "")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stock/ACME/chart.svg", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if !strings.HasPrefix(w.Header().Get("Content-Type"), tc.ctype) {
				t.Fatalf("content type %q", w.Header().Get("Content-Type"))
			}
			if tc.status == http.StatusOK && !strings.Contains(w.Body.String(), "Monitoring ACME") {
				t.Fatalf("chart caption missing")
			}
		})
	}
}

func TestGetAnalysis_InlineChart(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantChart bool
	}{
		{name: "report only", query: ""},
		{name: "chart inline", query: "?chart=svg", wantChart: true},
		{name: "unknown chart format ignored", query: "?chart=png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockAnalysisService{resp: sampleReport(t)}
			r := setupRouterWithMock(svc, nil, "")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stock/ACME"+tc.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
			}

			var body dto.AnalysisResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if got := body.ChartSVG != ""; got != tc.wantChart {
				t.Fatalf("chart_svg present=%v, want %v", got, tc.wantChart)
			}
			if tc.wantChart && !strings.Contains(body.ChartSVG, "Monitoring ACME (Jan 02 2024 to Jan 03 2024)") {
				t.Fatalf("chart does not match the report dates: %.200s", body.ChartSVG)
			}
			if _, err := body.ToReport(); err != nil {
				t.Fatalf("report part no longer decodes: %v", err)
			}
		})
	}
}

func TestGetAnalysis_InlineChartRenderFailure(t *testing.T) {
	rep := sampleReport(t)
	rep.MaxHighPrice = math.MaxFloat64
	r := setupRouterWithMock(&mockAnalysisService{resp: rep}, nil, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stock/ACME?chart=svg", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var e dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil || e.Code != "render_error" {
		t.Fatalf("unexpected error body %s (%v)", w.Body.String(), err)
	}
}

func TestGetLastSymbol_SessionFlow(t *testing.T) {
	sessions := storage.NewMemorySessionRepository()
	r := setupRouterWithMock(&mockAnalysisService{resp: sampleReport(t)}, sessions, "")

	// new session, no default
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stock", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("session cookie not set")
	}

	// analysis under the same session records the symbol
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/acme", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("analysis: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stock", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out dto.SessionSymbolResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Symbol != "ACME" || out.Source != dto.SymbolSourceSession {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestGetLastSymbol_TableDriven(t *testing.T) {
	cases := []struct {
		name     string
		sessions storage.SessionRepository
		def      string
		status   int
		want     dto.SessionSymbolResponse
	}{
		{name: "default symbol", sessions: storage.NewMemorySessionRepository(), def: " msft ", status: http.StatusOK,
			want: dto.SessionSymbolResponse{Symbol: "MSFT", Source: dto.SymbolSourceDefault}},
		{name: "no store uses default", sessions: nil, def: "MSFT", status: http.StatusOK,
			want: dto.SessionSymbolResponse{Symbol: "MSFT", Source: dto.SymbolSourceDefault}},
		{name: "store failure", sessions: failingSessions{err: errors.New("db down")}, def: "MSFT", status: http.StatusInternalServerError},
		{name: "nothing", sessions: storage.NewMemorySessionRepository(), status: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(&mockAnalysisService{}, tc.sessions, tc.def)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stock", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status != http.StatusOK {
				return
			}
			var out dto.SessionSymbolResponse
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if out != tc.want {
				t.Fatalf("got %+v want %+v", out, tc.want)
			}
		})
	}
}

func TestGetAnalysis_SessionSaveFailureIsNotFatal(t *testing.T) {
	r := setupRouterWithMock(&mockAnalysisService{resp: sampleReport(t)}, failingSessions{err: errors.New("db down")}, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stock/ACME", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
