package dto

// Sources of a SessionSymbolResponse.
const (
	SymbolSourceSession = "session"
	SymbolSourceDefault = "default"
)

// SessionSymbolResponse is returned by GET /api/v1/stock.
//
// Fields:
//   - Symbol: the symbol to preload in the client.
//   - Source: "session" when it was the caller's last query, "default" when
//     the server's DEFAULT_SYMBOL was used.
type SessionSymbolResponse struct {
	Symbol string `json:"symbol" example:"AAPL"`
	Source string `json:"source" example:"session"`
}
