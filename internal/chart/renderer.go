package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/stockr/internal/domain/models"
)

// ErrRender is returned for invalid chart input or a failing backend.
var ErrRender = errors.New("chart render failed")

// CandleWidth is the body width of every candle, in backend units.
const CandleWidth = 5

const (
	RegularLegend  = "Empty Candlestick: Regular Quotes"
	VolatileLegend = "Filled Candlestick: Volatile Quotes"
)

// Renderer draws the regular/volatile candlestick chart of an analysis.
type Renderer struct {
	backend Backend
}

// NewRenderer returns a Renderer drawing on b.
func NewRenderer(b Backend) *Renderer {
	return &Renderer{backend: b}
}

// Render draws both series between start and end, bounded by minLow/maxHigh.
//
// Regular candles are outlined and volatile candles filled; both share the
// green/red bullish/bearish pair. Backend errors are wrapped in ErrRender and
// returned as-is, never retried.
func (r *Renderer) Render(regular, volatile []models.DailyQuote, start, end time.Time, minLow, maxHigh float64, symbol string) error {
	if r.backend == nil {
		return fmt.Errorf("%w: no backend", ErrRender)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end %s before start %s", ErrRender, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if err := checkChronological("regular", regular); err != nil {
		return err
	}
	if err := checkChronological("volatile", volatile); err != nil {
		return err
	}

	yMin, yMax, err := YRange(minLow, maxHigh)
	if err != nil {
		return err
	}
	xMin, xMax := XRange(start, end)

	frame := Frame{
		Caption: Caption(symbol, start, end),
		XMin:    xMin,
		XMax:    xMax,
		YMin:    yMin,
		YMax:    yMax,
		XTicks:  XTicks(xMin, xMax, XTickCount),
		YTicks:  YTickCount,
	}
	if err := r.backend.DrawFrame(frame); err != nil {
		return fmt.Errorf("%w: frame: %w", ErrRender, err)
	}

	series := []struct {
		quotes []models.DailyQuote
		filled bool
	}{
		{quotes: regular, filled: false},
		{quotes: volatile, filled: true},
	}
	for _, s := range series {
		style := CandleStyle{
			Bullish: BullishColor,
			Bearish: BearishColor,
			Width:   CandleWidth,
			Filled:  s.filled,
		}
		for _, q := range s.quotes {
			if err := r.backend.DrawCandlestick(toCandle(q), style); err != nil {
				return fmt.Errorf("%w: candle %s: %w", ErrRender, q.Date.Format("2006-01-02"), err)
			}
		}
	}

	legend := []LegendEntry{
		{Label: RegularLegend, Filled: false},
		{Label: VolatileLegend, Filled: true},
	}
	if err := r.backend.DrawLegend(legend); err != nil {
		return fmt.Errorf("%w: legend: %w", ErrRender, err)
	}
	if err := r.backend.Finish(); err != nil {
		return fmt.Errorf("%w: finish: %w", ErrRender, err)
	}
	return nil
}

// RenderReport draws a full analysis report.
func (r *Renderer) RenderReport(rep *models.AnalysisReport) error {
	if rep == nil {
		return fmt.Errorf("%w: nil report", ErrRender)
	}
	return r.Render(rep.RegularQuotes, rep.VolatileQuotes, rep.StartDate, rep.EndDate, rep.MinLowPrice, rep.MaxHighPrice, rep.Symbol)
}
