package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/guttosm/stockr/internal/domain/models"
)

const (
	// XTickCount is the number of labels on the date axis.
	XTickCount = 10
	// YTickCount is the number of labels on the price axis.
	YTickCount = 10
	// XLabelLayout is the short month/day format of date labels.
	XLabelLayout = "Jan 02"
	// CaptionDateLayout formats the covered dates in the caption.
	CaptionDateLayout = "Jan 02 2006"
	// DegenerateMargin is the relative padding applied when minLow == maxHigh.
	DegenerateMargin = 0.01
)

// XRange extends [start, end] by one day on each side so boundary candles
// are not clipped.
func XRange(start, end time.Time) (time.Time, time.Time) {
	return start.AddDate(0, 0, -1), end.AddDate(0, 0, 1)
}

// YRange converts the price bounds to the drawing domain.
//
// Equal bounds are widened by DegenerateMargin of the value (1.0 when the
// value is 0) on each side instead of producing a zero-height axis.
func YRange(minLow, maxHigh float64) (float32, float32, error) {
	if math.IsNaN(minLow) || math.IsNaN(maxHigh) || math.IsInf(minLow, 0) || math.IsInf(maxHigh, 0) {
		return 0, 0, fmt.Errorf("%w: non-finite price bounds [%v, %v]", ErrRender, minLow, maxHigh)
	}
	if minLow > maxHigh {
		return 0, 0, fmt.Errorf("%w: min low %v above max high %v", ErrRender, minLow, maxHigh)
	}

	lo, hi := float32(minLow), float32(maxHigh)
	if lo == hi {
		pad := float32(math.Abs(float64(lo)) * DegenerateMargin)
		if pad == 0 {
			pad = 1
		}
		lo, hi = lo-pad, hi+pad
	}
	// Finite float64 bounds past MaxFloat32 overflow in the cast.
	if math.IsInf(float64(lo), 0) || math.IsInf(float64(hi), 0) {
		return 0, 0, fmt.Errorf("%w: price bounds [%v, %v] exceed the drawing domain", ErrRender, minLow, maxHigh)
	}
	return lo, hi, nil
}

// Caption titles a chart with the symbol and the dates it actually covers,
// so it stays correct whatever range the provider was asked for.
func Caption(symbol string, start, end time.Time) string {
	return fmt.Sprintf("Monitoring %s (%s to %s)", symbol, start.Format(CaptionDateLayout), end.Format(CaptionDateLayout))
}

// XTicks spreads n labels evenly over [from, to], both ends included.
// Short ranges may repeat a label since the count is fixed.
func XTicks(from, to time.Time, n int) []Tick {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Tick{{Date: from, Label: from.Format(XLabelLayout)}}
	}
	span := to.Sub(from)
	ticks := make([]Tick, 0, n)
	for i := 0; i < n; i++ {
		at := from.Add(time.Duration(float64(span) * float64(i) / float64(n-1)))
		ticks = append(ticks, Tick{Date: at, Label: at.Format(XLabelLayout)})
	}
	return ticks
}

func checkChronological(name string, quotes []models.DailyQuote) error {
	for i := 1; i < len(quotes); i++ {
		if quotes[i].Date.Before(quotes[i-1].Date) {
			return fmt.Errorf("%w: %s series not chronological at %d (%s before %s)",
				ErrRender, name, i,
				quotes[i].Date.Format("2006-01-02"), quotes[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

func toCandle(q models.DailyQuote) Candle {
	return Candle{
		Date:  q.Date,
		Open:  float32(q.Open),
		High:  float32(q.High),
		Low:   float32(q.Low),
		Close: float32(q.Close),
	}
}
