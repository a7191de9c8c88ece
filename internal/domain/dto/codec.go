package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/guttosm/stockr/internal/domain/models"
)

// ErrSchema is returned when an analysis payload does not match the wire schema.
var ErrSchema = errors.New("analysis payload schema mismatch")

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewAnalysisResponse maps a report to its wire representation.
func NewAnalysisResponse(r *models.AnalysisReport) AnalysisResponse {
	return AnalysisResponse{
		Symbol:         r.Symbol,
		MinClosePrice:  ptr(r.MinClosePrice),
		MaxClosePrice:  ptr(r.MaxClosePrice),
		MinCloseDate:   ptr(r.MinCloseDate.Format(DateLayout)),
		MaxCloseDate:   ptr(r.MaxCloseDate.Format(DateLayout)),
		StartDate:      ptr(r.StartDate.Format(DateLayout)),
		EndDate:        ptr(r.EndDate.Format(DateLayout)),
		MinLowPrice:    ptr(r.MinLowPrice),
		MaxHighPrice:   ptr(r.MaxHighPrice),
		RegularQuotes:  newQuoteResponses(r.RegularQuotes),
		VolatileQuotes: newQuoteResponses(r.VolatileQuotes),
	}
}

// EncodeReport serializes a report to wire JSON.
func EncodeReport(r *models.AnalysisReport) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil report", ErrSchema)
	}
	return NewAnalysisResponse(r).Encode()
}

// Encode serializes the response as is.
func (a AnalysisResponse) Encode() ([]byte, error) {
	return json.Marshal(a)
}

// DecodeReport parses wire JSON back into a report.
//
// Missing required fields, null values and dates not in YYYY-MM-DD form all
// fail with ErrSchema; nothing is defaulted.
func DecodeReport(data []byte) (*models.AnalysisReport, error) {
	var resp AnalysisResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return resp.ToReport()
}

// ToReport validates the payload and converts it to a domain report.
func (a AnalysisResponse) ToReport() (*models.AnalysisReport, error) {
	if err := validate.Struct(a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	dates, err := parseDates(*a.StartDate, *a.EndDate, *a.MinCloseDate, *a.MaxCloseDate)
	if err != nil {
		return nil, err
	}
	regular, err := toQuotes(a.RegularQuotes)
	if err != nil {
		return nil, fmt.Errorf("regular_quotes: %w", err)
	}
	volatile, err := toQuotes(a.VolatileQuotes)
	if err != nil {
		return nil, fmt.Errorf("volatile_quotes: %w", err)
	}

	return &models.AnalysisReport{
		Symbol:         a.Symbol,
		StartDate:      dates[0],
		EndDate:        dates[1],
		MinCloseDate:   dates[2],
		MaxCloseDate:   dates[3],
		MinClosePrice:  *a.MinClosePrice,
		MaxClosePrice:  *a.MaxClosePrice,
		MinLowPrice:    *a.MinLowPrice,
		MaxHighPrice:   *a.MaxHighPrice,
		RegularQuotes:  regular,
		VolatileQuotes: volatile,
	}, nil
}

func newQuoteResponses(quotes []models.DailyQuote) []DailyQuoteResponse {
	out := make([]DailyQuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, DailyQuoteResponse{
			Date:       ptr(q.Date.Format(DateLayout)),
			Open:       ptr(q.Open),
			High:       ptr(q.High),
			Low:        ptr(q.Low),
			Close:      ptr(q.Close),
			Volume:     ptr(q.Volume),
			AdjClose:   ptr(q.AdjClose),
			IsVolatile: ptr(q.IsVolatile),
		})
	}
	return out
}

func toQuotes(in []DailyQuoteResponse) ([]models.DailyQuote, error) {
	out := make([]models.DailyQuote, 0, len(in))
	for i, q := range in {
		d, err := parseDate(*q.Date)
		if err != nil {
			return nil, fmt.Errorf("quote %d: %w", i, err)
		}
		out = append(out, models.DailyQuote{
			Date:       d,
			Open:       *q.Open,
			High:       *q.High,
			Low:        *q.Low,
			Close:      *q.Close,
			AdjClose:   *q.AdjClose,
			Volume:     *q.Volume,
			IsVolatile: *q.IsVolatile,
		})
	}
	return out, nil
}

func parseDates(values ...string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := parseDate(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrSchema, s, err)
	}
	return d, nil
}

func ptr[T any](v T) *T {
	return &v
}
