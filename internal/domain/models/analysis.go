package models

import "time"

// AnalysisReport is the result of analyzing a symbol's daily quote series.
//
// StartDate and EndDate are the dates of the first and last quote in provider
// order. MinLowPrice and MaxHighPrice are only meaningful as chart bounds and
// are not tied to a date.
//
// Invariants (for a report produced by analysis.Assemble):
//   - MinClosePrice <= MaxClosePrice.
//   - Every RegularQuotes element has IsVolatile=false, every VolatileQuotes
//     element has IsVolatile=true.
//   - Both partitions keep the relative order of the source series.
//
// The report is read-only once built.
type AnalysisReport struct {
	Symbol         string
	StartDate      time.Time
	EndDate        time.Time
	MinClosePrice  float64
	MaxClosePrice  float64
	MinCloseDate   time.Time
	MaxCloseDate   time.Time
	MinLowPrice    float64
	MaxHighPrice   float64
	RegularQuotes  []DailyQuote
	VolatileQuotes []DailyQuote
}

// QuoteCount returns the number of quotes across both partitions.
func (r *AnalysisReport) QuoteCount() int {
	return len(r.RegularQuotes) + len(r.VolatileQuotes)
}
