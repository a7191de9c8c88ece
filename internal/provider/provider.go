package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/stockr/internal/domain/models"
)

var (
	// ErrProvider is returned when the upstream market-data fetch fails.
	ErrProvider = errors.New("market data provider error")

	// ErrSymbolNotFound is returned when the provider does not know the symbol.
	// It matches ErrProvider as well.
	ErrSymbolNotFound = fmt.Errorf("%w: symbol not found", ErrProvider)
)

// QuoteProvider fetches daily quotes for a symbol over a lookback range.
//
// Quotes are returned in provider order (chronological for Yahoo); callers
// must not rely on any re-sorting.
type QuoteProvider interface {
	FetchDailyQuotes(ctx context.Context, symbol, interval, rng string) ([]models.RawQuote, error)
	Name() string
}
