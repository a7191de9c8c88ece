package storage

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/stockr/internal/domain/models"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionSymbol
	now      func() time.Time
}

// NewMemorySessionRepository returns an in-process SessionRepository.
// Entries live until pruned or until the process exits.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]models.SessionSymbol),
		now:      time.Now,
	}
}

func (r *memorySessionRepository) SaveSymbol(_ context.Context, sessionID, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = models.SessionSymbol{SessionID: sessionID, Symbol: symbol, UpdatedAt: r.now().UTC()}
	return nil
}

func (r *memorySessionRepository) LastSymbol(_ context.Context, sessionID string) (*models.SessionSymbol, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memorySessionRepository) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *memorySessionRepository) Ping(context.Context) error { return nil }
