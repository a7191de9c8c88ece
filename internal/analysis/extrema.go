package analysis

import (
	"math"
	"time"

	"github.com/guttosm/stockr/internal/domain/models"
)

// Extrema is the running min/max state folded over a quote series.
//
// The zero dates and infinite prices of a fresh tracker are placeholders;
// callers must check Seen before reading any field.
type Extrema struct {
	MinClose     float64
	MaxClose     float64
	MinCloseDate time.Time
	MaxCloseDate time.Time
	MinLow       float64
	MaxHigh      float64

	count int
}

// NewExtrema returns a tracker that has not observed any quote yet.
func NewExtrema() Extrema {
	return Extrema{
		MinClose: math.Inf(1),
		MaxClose: math.Inf(-1),
		MinLow:   math.Inf(1),
		MaxHigh:  math.Inf(-1),
	}
}

// Update folds q into the state and returns the new state.
// Ties never replace, so the earliest date wins.
func (e Extrema) Update(q models.DailyQuote) Extrema {
	if q.Low < e.MinLow {
		e.MinLow = q.Low
	}
	if q.High > e.MaxHigh {
		e.MaxHigh = q.High
	}
	if q.Close < e.MinClose {
		e.MinClose = q.Close
		e.MinCloseDate = q.Date
	}
	if q.Close > e.MaxClose {
		e.MaxClose = q.Close
		e.MaxCloseDate = q.Date
	}
	e.count++
	return e
}

// Seen reports whether at least one quote has been folded in.
func (e Extrema) Seen() bool {
	return e.count > 0
}

// Finite reports whether every price in the state is a real number.
func (e Extrema) Finite() bool {
	return finite(e.MinClose) && finite(e.MaxClose) && finite(e.MinLow) && finite(e.MaxHigh)
}
