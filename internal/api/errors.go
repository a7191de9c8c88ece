package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/stockr/internal/analysis"
	"github.com/guttosm/stockr/internal/chart"
	"github.com/guttosm/stockr/internal/domain/dto"
	"github.com/guttosm/stockr/internal/provider"
)

// apiError is one row of the error mapping table.
type apiError struct {
	status  int
	code    string
	message string
}

// errorTable is checked in order; the first match wins. Deadline comes first
// because transport errors wrap it inside ErrProvider, and ErrSymbolNotFound
// precedes its parent ErrProvider.
var errorTable = []struct {
	target error
	apiError
}{
	{context.DeadlineExceeded, apiError{http.StatusGatewayTimeout, "timeout", "upstream request timed out"}},
	{provider.ErrSymbolNotFound, apiError{http.StatusNotFound, "symbol_not_found", "symbol not found"}},
	{provider.ErrProvider, apiError{http.StatusBadGateway, "provider_error", "market data provider failed"}},
	{analysis.ErrEmptySeries, apiError{http.StatusNotFound, "empty_series", "no quotes in the requested range"}},
	{analysis.ErrInvalidTimestamp, apiError{http.StatusUnprocessableEntity, "invalid_timestamp", "provider returned an invalid timestamp"}},
	{analysis.ErrDegenerateQuote, apiError{http.StatusUnprocessableEntity, "degenerate_quote", "provider returned a degenerate quote"}},
	{dto.ErrSchema, apiError{http.StatusBadGateway, "schema_error", "analysis payload schema mismatch"}},
	{chart.ErrRender, apiError{http.StatusInternalServerError, "render_error", "chart rendering failed"}},
}

// statusFor maps a domain error to its HTTP status, code and message.
// Unknown errors are reported as 500 internal_error.
func statusFor(err error) (int, string, string) {
	for _, row := range errorTable {
		if errors.Is(err, row.target) {
			return row.status, row.code, row.message
		}
	}
	return http.StatusInternalServerError, "internal_error", "internal server error"
}
