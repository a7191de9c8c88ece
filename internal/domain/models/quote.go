package models

import "time"

// RawQuote is a single daily bar as returned by the market-data provider.
//
// Timestamp is a Unix epoch in seconds; it has not yet been mapped to a
// calendar date.
type RawQuote struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	AdjClose  float64
	Volume    uint64
}

// DailyQuote represents one trading day of a symbol after normalization.
//
// Fields:
//   - Date: calendar date at 00:00 UTC (no time component).
//   - Open, High, Low, Close, AdjClose: prices for the day.
//   - Volume: number of shares traded.
//   - IsVolatile: true when the intraday range exceeded the volatility threshold.
//
// DailyQuote is a value type; it is never mutated once appended to a report.
type DailyQuote struct {
	Date       time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	AdjClose   float64
	Volume     uint64
	IsVolatile bool
}

// Bullish reports whether the day closed at or above its open.
func (q DailyQuote) Bullish() bool {
	return q.Close >= q.Open
}
