package models

import "time"

// SessionSymbol is the last symbol analyzed by a browser session.
type SessionSymbol struct {
	SessionID string
	Symbol    string
	UpdatedAt time.Time
}
