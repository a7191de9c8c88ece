package analysis

import (
	"fmt"

	"github.com/guttosm/stockr/internal/domain/models"
)

// Assemble runs the full analysis over a provider series.
//
// Behavior:
//   - Fails with ErrEmptySeries before building anything when raw is empty.
//   - StartDate/EndDate come from the first/last element; the input is assumed
//     chronological and is never re-sorted.
//   - Each quote is normalized, classified and appended to RegularQuotes or
//     VolatileQuotes, preserving source order inside each partition.
//   - Extrema are folded in source order.
//
// Any ErrInvalidTimestamp or ErrDegenerateQuote aborts the whole analysis;
// no partial report is returned. The fold's starting values never reach the
// report: a fold that saw nothing or ended non-finite is degenerate.
func Assemble(symbol string, raw []models.RawQuote) (*models.AnalysisReport, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrEmptySeries)
	}

	start, err := DateFromTimestamp(raw[0].Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%s: start date: %w", symbol, err)
	}
	end, err := DateFromTimestamp(raw[len(raw)-1].Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%s: end date: %w", symbol, err)
	}

	regular := make([]models.DailyQuote, 0, len(raw))
	volatile := make([]models.DailyQuote, 0)
	ext := NewExtrema()

	for i, r := range raw {
		q, err := Normalize(r)
		if err != nil {
			return nil, fmt.Errorf("%s: quote %d: %w", symbol, i, err)
		}
		q.IsVolatile, err = IsVolatile(q.High, q.Low)
		if err != nil {
			return nil, fmt.Errorf("%s: quote %d (%s): %w", symbol, i, q.Date.Format("2006-01-02"), err)
		}

		if q.IsVolatile {
			volatile = append(volatile, q)
		} else {
			regular = append(regular, q)
		}
		ext = ext.Update(q)
	}
	if !ext.Seen() || !ext.Finite() {
		return nil, fmt.Errorf("%s: %w: extrema not bound by any quote", symbol, ErrDegenerateQuote)
	}

	return &models.AnalysisReport{
		Symbol:         symbol,
		StartDate:      start,
		EndDate:        end,
		MinClosePrice:  ext.MinClose,
		MaxClosePrice:  ext.MaxClose,
		MinCloseDate:   ext.MinCloseDate,
		MaxCloseDate:   ext.MaxCloseDate,
		MinLowPrice:    ext.MinLow,
		MaxHighPrice:   ext.MaxHigh,
		RegularQuotes:  regular,
		VolatileQuotes: volatile,
	}, nil
}
