package chart

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stockr/internal/domain/models"
)

type drawnCandle struct {
	candle Candle
	style  CandleStyle
}

// recordingBackend captures every call and can fail on demand.
type recordingBackend struct {
	frame    Frame
	candles  []drawnCandle
	legend   []LegendEntry
	finished bool

	failOn string
}

var errBackend = errors.New("backend down")

func (r *recordingBackend) DrawFrame(f Frame) error {
	if r.failOn == "frame" {
		return errBackend
	}
	r.frame = f
	return nil
}

func (r *recordingBackend) DrawCandlestick(c Candle, s CandleStyle) error {
	if r.failOn == "candle" {
		return errBackend
	}
	r.candles = append(r.candles, drawnCandle{candle: c, style: s})
	return nil
}

func (r *recordingBackend) DrawLegend(entries []LegendEntry) error {
	if r.failOn == "legend" {
		return errBackend
	}
	r.legend = entries
	return nil
}

func (r *recordingBackend) Finish() error {
	if r.failOn == "finish" {
		return errBackend
	}
	r.finished = true
	return nil
}

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func q(date time.Time, o, h, l, c float64, volatile bool) models.DailyQuote {
	return models.DailyQuote{Date: date, Open: o, High: h, Low: l, Close: c, AdjClose: c, IsVolatile: volatile}
}

func sampleSeries() (regular, volatile []models.DailyQuote) {
	regular = []models.DailyQuote{
		q(d(2024, 1, 2), 100, 101, 99.5, 100.5, false),
		q(d(2024, 1, 4), 101, 101.5, 100, 100.2, false),
	}
	volatile = []models.DailyQuote{
		q(d(2024, 1, 3), 100.5, 106, 100, 105, true),
		q(d(2024, 1, 5), 105, 106, 98, 99, true),
	}
	return regular, volatile
}

func TestRender_DrawsBothSeries(t *testing.T) {
	regular, volatile := sampleSeries()
	rb := &recordingBackend{}

	err := NewRenderer(rb).Render(regular, volatile, d(2024, 1, 2), d(2024, 1, 5), 98, 106, "ACME")
	require.NoError(t, err)

	assert.Equal(t, "Monitoring ACME (Jan 02 2024 to Jan 05 2024)", rb.frame.Caption)
	assert.Equal(t, d(2024, 1, 1), rb.frame.XMin)
	assert.Equal(t, d(2024, 1, 6), rb.frame.XMax)
	assert.Equal(t, float32(98), rb.frame.YMin)
	assert.Equal(t, float32(106), rb.frame.YMax)
	require.Len(t, rb.frame.XTicks, XTickCount)
	assert.Equal(t, "Jan 01", rb.frame.XTicks[0].Label)
	assert.Equal(t, "Jan 06", rb.frame.XTicks[XTickCount-1].Label)

	require.Len(t, rb.candles, 4)
	for i, c := range rb.candles {
		assert.Equal(t, BullishColor, c.style.Bullish)
		assert.Equal(t, BearishColor, c.style.Bearish)
		assert.Equal(t, CandleWidth, c.style.Width)
		assert.Equal(t, i >= 2, c.style.Filled, "candle %d", i)
	}
	assert.Equal(t, Candle{Date: d(2024, 1, 3), Open: 100.5, High: 106, Low: 100, Close: 105}, rb.candles[2].candle)

	assert.Equal(t, []LegendEntry{
		{Label: RegularLegend, Filled: false},
		{Label: VolatileLegend, Filled: true},
	}, rb.legend)
	assert.True(t, rb.finished)
}

func TestRender_EmptySeriesStillDrawsFrame(t *testing.T) {
	rb := &recordingBackend{}
	err := NewRenderer(rb).Render(nil, nil, d(2024, 1, 2), d(2024, 1, 2), 10, 10, "ACME")
	require.NoError(t, err)
	assert.Empty(t, rb.candles)
	assert.True(t, rb.finished)
	assert.Less(t, rb.frame.YMin, rb.frame.YMax)
}

func TestRender_Errors(t *testing.T) {
	regular, volatile := sampleSeries()
	reversed := []models.DailyQuote{volatile[1], volatile[0]}

	cases := []struct {
		name     string
		regular  []models.DailyQuote
		volatile []models.DailyQuote
		start    time.Time
		end      time.Time
		minLow   float64
		maxHigh  float64
		failOn   string
	}{
		{name: "non chronological volatile", regular: regular, volatile: reversed, start: d(2024, 1, 2), end: d(2024, 1, 5), minLow: 98, maxHigh: 106},
		{name: "end before start", regular: regular, volatile: volatile, start: d(2024, 1, 5), end: d(2024, 1, 2), minLow: 98, maxHigh: 106},
		{name: "inverted bounds", regular: regular, volatile: volatile, start: d(2024, 1, 2), end: d(2024, 1, 5), minLow: 106, maxHigh: 98},
		{name: "infinite bound", regular: regular, volatile: volatile, start: d(2024, 1, 2), end: d(2024, 1, 5), minLow: math.Inf(1), maxHigh: 106},
		{name: "frame failure", regular: regular, volatile: volatile, start: d(2024, 1, 2), end: d(2024, 1, 5), minLow: 98, maxHigh: 106, failOn: "frame"},
		{name: "candle failure", regular: regular, volatile: volatile, start: d(2024, 1, 2), end: d(2024, 1, 5), minLow: 98, maxHigh: 106, failOn: "candle"},
		{name: "legend failure", regular: regular, volatile: volatile, start: d(2024, 1, 2), end: d(2024, 1, 5), minLow: 98, maxHigh: 106, failOn: "legend"},
		{name: "finish failure", regular: regular, volatile: volatile, start: d(2024, 1, 2), end: d(2024, 1, 5), minLow: 98, maxHigh: 106, failOn: "finish"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rb := &recordingBackend{failOn: tc.failOn}
			err := NewRenderer(rb).Render(tc.regular, tc.volatile, tc.start, tc.end, tc.minLow, tc.maxHigh, "ACME")
			assert.ErrorIs(t, err, ErrRender)
			if tc.failOn != "" {
				assert.ErrorIs(t, err, errBackend)
			}
			assert.False(t, rb.finished)
		})
	}
}

func TestRender_NilBackend(t *testing.T) {
	err := NewRenderer(nil).Render(nil, nil, d(2024, 1, 2), d(2024, 1, 2), 1, 2, "ACME")
	assert.ErrorIs(t, err, ErrRender)
}

func TestYRange(t *testing.T) {
	cases := []struct {
		name     string
		lo, hi   float64
		wantLo   float32
		wantHi   float32
		wantFail bool
	}{
		{name: "normal", lo: 99, hi: 110, wantLo: 99, wantHi: 110},
		{name: "degenerate", lo: 100, hi: 100, wantLo: 99, wantHi: 101},
		{name: "degenerate zero", lo: 0, hi: 0, wantLo: -1, wantHi: 1},
		{name: "nan", lo: math.NaN(), hi: 1, wantFail: true},
		{name: "inverted", lo: 2, hi: 1, wantFail: true},
		{name: "max high past float32", lo: 1, hi: math.MaxFloat64, wantFail: true},
		{name: "min low past float32", lo: -math.MaxFloat64, hi: 1, wantFail: true},
		{name: "degenerate pad overflows", lo: math.MaxFloat32, hi: math.MaxFloat32, wantFail: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi, err := YRange(tc.lo, tc.hi)
			if tc.wantFail {
				assert.ErrorIs(t, err, ErrRender)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.wantLo, lo, 1e-4)
			assert.InDelta(t, tc.wantHi, hi, 1e-4)
		})
	}
}

func TestCaption_FollowsCoveredDates(t *testing.T) {
	assert.Equal(t, "Monitoring ACME (Jan 02 2024 to Jul 01 2024)", Caption("ACME", d(2024, 1, 2), d(2024, 7, 1)))
	assert.Equal(t, "Monitoring ACME (Jan 03 2023 to Jan 02 2024)", Caption("ACME", d(2023, 1, 3), d(2024, 1, 2)))
}

func TestXTicks(t *testing.T) {
	ticks := XTicks(d(2024, 1, 1), d(2024, 1, 10), 10)
	require.Len(t, ticks, 10)
	for i, tk := range ticks {
		assert.Equal(t, d(2024, 1, 1+i), tk.Date)
	}
	assert.Equal(t, "Jan 05", ticks[4].Label)
	assert.Nil(t, XTicks(d(2024, 1, 1), d(2024, 1, 2), 0))
}

func TestRenderSVG(t *testing.T) {
	regular, volatile := sampleSeries()
	rep := &models.AnalysisReport{
		Symbol:         "ACME",
		StartDate:      d(2024, 1, 2),
		EndDate:        d(2024, 1, 5),
		MinLowPrice:    98,
		MaxHighPrice:   106,
		RegularQuotes:  regular,
		VolatileQuotes: volatile,
	}

	out, err := RenderSVG(rep, DefaultSVGOptions())
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</svg>"))
	assert.Contains(t, doc, "Monitoring ACME (Jan 02 2024 to Jan 05 2024)")
	assert.Contains(t, doc, RegularLegend)
	assert.Contains(t, doc, VolatileLegend)
	assert.Contains(t, doc, "fill:none;stroke:"+BullishColor.Hex())
	assert.Contains(t, doc, "fill:"+BearishColor.Hex())
	assert.Contains(t, doc, "Jan 01")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVGBackend_WriteFailure(t *testing.T) {
	regular, volatile := sampleSeries()
	err := NewRenderer(NewSVGBackend(failingWriter{}, DefaultSVGOptions())).
		Render(regular, volatile, d(2024, 1, 2), d(2024, 1, 5), 98, 106, "ACME")
	assert.ErrorIs(t, err, ErrRender)
}

func TestSVGBackend_TooSmall(t *testing.T) {
	opts := DefaultSVGOptions()
	opts.Width = 100
	_, err := RenderSVG(&models.AnalysisReport{StartDate: d(2024, 1, 2), EndDate: d(2024, 1, 2), MinLowPrice: 1, MaxHighPrice: 2}, opts)
	assert.ErrorIs(t, err, ErrRender)
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#62d13d", BullishColor.Hex())
	assert.Equal(t, "#d13d3d", BearishColor.Hex())
}
