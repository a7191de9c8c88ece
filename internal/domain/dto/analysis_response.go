package dto

// DateLayout is the wire format of every date in the analysis payload.
const DateLayout = "2006-01-02"

// DailyQuoteResponse is the wire representation of a single trading day.
//
// Pointer fields are required on decode; a missing field is a schema error
// rather than a zero value.
type DailyQuoteResponse struct {
	Date       *string  `json:"date" validate:"required,datetime=2006-01-02" example:"2024-01-02"`
	Open       *float64 `json:"open" validate:"required" example:"100.0"`
	High       *float64 `json:"high" validate:"required" example:"102.0"`
	Low        *float64 `json:"low" validate:"required" example:"99.0"`
	Close      *float64 `json:"close" validate:"required" example:"101.0"`
	Volume     *uint64  `json:"volume" validate:"required" example:"1200000"`
	AdjClose   *float64 `json:"adjclose" validate:"required" example:"101.0"`
	IsVolatile *bool    `json:"is_volatile" validate:"required" example:"true"`
}

// AnalysisResponse represents the JSON structure returned by
// GET /api/v1/stock/{symbol}.
//
// Field names are a fixed contract shared with the browser client and the
// chart command.
type AnalysisResponse struct {
	Symbol         string               `json:"symbol,omitempty" example:"AAPL"`
	MinClosePrice  *float64             `json:"min_close_price" validate:"required" example:"101.0"`
	MaxClosePrice  *float64             `json:"max_close_price" validate:"required" example:"108.0"`
	MinCloseDate   *string              `json:"min_close_date" validate:"required,datetime=2006-01-02" example:"2024-01-02"`
	MaxCloseDate   *string              `json:"max_close_date" validate:"required,datetime=2006-01-02" example:"2024-01-03"`
	StartDate      *string              `json:"start_date" validate:"required,datetime=2006-01-02" example:"2024-01-02"`
	EndDate        *string              `json:"end_date" validate:"required,datetime=2006-01-02" example:"2024-01-03"`
	MinLowPrice    *float64             `json:"min_low_price" validate:"required" example:"99.0"`
	MaxHighPrice   *float64             `json:"max_high_price" validate:"required" example:"110.0"`
	RegularQuotes  []DailyQuoteResponse `json:"regular_quotes" validate:"required,dive"`
	VolatileQuotes []DailyQuoteResponse `json:"volatile_quotes" validate:"required,dive"`
	// ChartSVG is only set when the caller asked for the chart inline.
	ChartSVG string `json:"chart_svg,omitempty"`
}
