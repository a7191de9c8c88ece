package analysis

import (
	"fmt"
	"time"

	"github.com/guttosm/stockr/internal/domain/models"
)

// Bounds of the timestamps that map to a date representable as YYYY-MM-DD.
const (
	minTimestamp int64 = -62135596800 // 0001-01-01T00:00:00Z
	maxTimestamp int64 = 253402300799 // 9999-12-31T23:59:59Z
)

// DateFromTimestamp converts a Unix timestamp (seconds) to a calendar date
// at 00:00 UTC. UTC is the only reference timezone.
func DateFromTimestamp(ts int64) (time.Time, error) {
	if ts < minTimestamp || ts > maxTimestamp {
		return time.Time{}, fmt.Errorf("%w: %d out of range", ErrInvalidTimestamp, ts)
	}
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Normalize maps a provider quote to a DailyQuote. IsVolatile is left unset;
// classification happens in Assemble. NaN or infinite prices are rejected
// with ErrDegenerateQuote.
func Normalize(raw models.RawQuote) (models.DailyQuote, error) {
	date, err := DateFromTimestamp(raw.Timestamp)
	if err != nil {
		return models.DailyQuote{}, err
	}
	for _, p := range [...]struct {
		name string
		v    float64
	}{{"open", raw.Open}, {"high", raw.High}, {"low", raw.Low}, {"close", raw.Close}} {
		if !finite(p.v) {
			return models.DailyQuote{}, fmt.Errorf("%w: %s=%v", ErrDegenerateQuote, p.name, p.v)
		}
	}
	return models.DailyQuote{
		Date:     date,
		Open:     raw.Open,
		High:     raw.High,
		Low:      raw.Low,
		Close:    raw.Close,
		AdjClose: raw.AdjClose,
		Volume:   raw.Volume,
	}, nil
}
