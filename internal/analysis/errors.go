package analysis

import "errors"

var (
	// ErrEmptySeries is returned when the provider returned no quotes.
	ErrEmptySeries = errors.New("empty quote series")

	// ErrInvalidTimestamp is returned when a quote timestamp cannot be mapped
	// to a calendar date.
	ErrInvalidTimestamp = errors.New("invalid quote timestamp")

	// ErrDegenerateQuote is returned when a quote has a zero or negative low,
	// which makes the intraday range ratio undefined.
	ErrDegenerateQuote = errors.New("degenerate quote")
)
