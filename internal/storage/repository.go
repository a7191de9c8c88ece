package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/guttosm/stockr/internal/domain/models"
)

// SessionRepository stores the last symbol analyzed by each browser session.
//
// It is transport-layer state: analysis never reads from it.
type SessionRepository interface {
	SaveSymbol(ctx context.Context, sessionID, symbol string) error
	LastSymbol(ctx context.Context, sessionID string) (*models.SessionSymbol, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Ping(ctx context.Context) error
}

type postgresSessionRepository struct {
	db *sql.DB
}

// NewPostgresSessionRepository returns a repository backed by the
// session_symbols table (see db/migrations).
func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

// SaveSymbol records (or replaces) the session's last symbol.
func (r *postgresSessionRepository) SaveSymbol(ctx context.Context, sessionID, symbol string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_symbols (session_id, symbol, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET symbol = EXCLUDED.symbol,
					  updated_at = NOW()
	`, sessionID, symbol)
	return err
}

// LastSymbol returns nil, nil when the session has no symbol yet.
func (r *postgresSessionRepository) LastSymbol(ctx context.Context, sessionID string) (*models.SessionSymbol, error) {
	s := models.SessionSymbol{SessionID: sessionID}
	err := r.db.QueryRowContext(ctx,
		`SELECT symbol, updated_at FROM session_symbols WHERE session_id = $1`, sessionID).
		Scan(&s.Symbol, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// PruneBefore deletes sessions not updated since cutoff.
func (r *postgresSessionRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_symbols WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresSessionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
