package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stockr/internal/analysis"
	"github.com/guttosm/stockr/internal/chart"
	"github.com/guttosm/stockr/internal/domain/models"
	"github.com/guttosm/stockr/internal/logger"
	"github.com/guttosm/stockr/internal/provider"
	"github.com/guttosm/stockr/internal/service"
)

type stubService struct {
	rep *models.AnalysisReport
	err error
}

func (s stubService) Analyze(_ context.Context, symbol string) (*models.AnalysisReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	rep := *s.rep
	rep.Symbol = symbol
	return &rep, nil
}

func sampleReport(t *testing.T) *models.AnalysisReport {
	t.Helper()
	return buildReport(t, []models.RawQuote{
		{Timestamp: 1704153600, Open: 100, High: 101, Low: 100, Close: 100.5, AdjClose: 100.5, Volume: 1000},
		{Timestamp: 1704240000, Open: 101, High: 110, Low: 100, Close: 108, AdjClose: 108, Volume: 2000},
	})
}

func buildReport(t *testing.T, raw []models.RawQuote) *models.AnalysisReport {
	t.Helper()
	rep, err := analysis.Assemble("ACME", raw)
	require.NoError(t, err)
	return rep
}

func withService(t *testing.T, svc service.AnalysisService) {
	t.Helper()
	old := newAnalysisService
	newAnalysisService = func() service.AnalysisService { return svc }
	t.Cleanup(func() { newAnalysisService = old })
}

func TestPrintReport(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	// provider order is kept in the report; the table sorts by date
	printReport(&buf, buildReport(t, []models.RawQuote{
		{Timestamp: 1704240000, Open: 101, High: 110, Low: 100, Close: 108, AdjClose: 108, Volume: 2000},
		{Timestamp: 1704153600, Open: 100, High: 101, Low: 100, Close: 100.5, AdjClose: 100.5, Volume: 1000},
	}))
	out := buf.String()

	assert.Contains(t, out, "ACME 2024-01-03 to 2024-01-02")
	assert.Contains(t, out, "Minimum close: 100.50 on 2024-01-02")
	assert.Contains(t, out, "Maximum close: 108.00 on 2024-01-03")
	assert.Contains(t, out, "Price range:   100.00 to 110.00")
	assert.Contains(t, out, "Volatile days: 1 of 2")

	first := strings.Index(out, "2024-01-02  ")
	second := strings.Index(out, "2024-01-03  ")
	require.True(t, first > 0 && second > 0, out)
	assert.Less(t, first, second)
}

func TestAnalyzeCmd(t *testing.T) {
	color.NoColor = true

	cases := []struct {
		name    string
		args    []string
		svc     service.AnalysisService
		wantErr error
		want    string
	}{
		{name: "success", args: []string{"analyze", "--symbol", " acme "}, svc: stubService{rep: sampleReport(t)}, want: "ACME 2024-01-02 to 2024-01-03"},
		{name: "missing symbol", args: []string{"analyze"}, svc: stubService{}},
		{name: "not found", args: []string{"analyze", "-s", "ZZZZ"}, svc: stubService{err: provider.ErrSymbolNotFound}, wantErr: provider.ErrSymbolNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			withService(t, tc.svc)
			var out, errOut bytes.Buffer
			root := newRootCmd()
			root.SetOut(&out)
			root.SetErr(&errOut)
			root.SetArgs(tc.args)

			err := root.Execute()
			if tc.want == "" {
				require.Error(t, err)
				if tc.wantErr != nil {
					assert.ErrorIs(t, err, tc.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tc.want)
		})
	}
}

func TestRenderCharts(t *testing.T) {
	// chart workers log concurrently
	logger.InitWithWriter(io.Discard)
	dir := t.TempDir()
	rep := sampleReport(t)
	var calls atomic.Int32

	src := func(_ context.Context, symbol string) (*models.AnalysisReport, error) {
		calls.Add(1)
		r := *rep
		r.Symbol = symbol
		return &r, nil
	}

	err := renderCharts(context.Background(), src, []string{"AAA", "BBB", "CCC"}, dir, 2, chart.DefaultSVGOptions())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())

	for _, sym := range []string{"AAA", "BBB", "CCC"} {
		b, err := os.ReadFile(filepath.Join(dir, sym+".svg"))
		require.NoError(t, err)
		assert.Contains(t, string(b), "Monitoring "+sym)
	}
}

func TestRenderCharts_FailureStopsGroup(t *testing.T) {
	logger.InitWithWriter(io.Discard)
	dir := t.TempDir()
	boom := errors.New("boom")
	src := func(_ context.Context, symbol string) (*models.AnalysisReport, error) {
		if symbol == "BAD" {
			return nil, boom
		}
		return sampleReport(t), nil
	}

	err := renderCharts(context.Background(), src, []string{"BAD"}, dir, 0, chart.DefaultSVGOptions())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "BAD")
	_, statErr := os.Stat(filepath.Join(dir, "BAD.svg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestChartCmd_Local(t *testing.T) {
	withService(t, stubService{rep: sampleReport(t)})
	dir := t.TempDir()

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"chart", "--symbol", "acme,msft,ACME", "--out", dir})
	require.NoError(t, root.Execute())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"ACME.svg", "MSFT.svg"}, names)
}

func TestNormalizeSymbols(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT"}, normalizeSymbols([]string{" aapl", "", "MSFT", "aapl "}))
	assert.Empty(t, normalizeSymbols(nil))
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "analyze", "chart", "migrate"} {
		assert.Contains(t, names, want)
	}
}
