package app

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/stockr/config"
	"github.com/guttosm/stockr/internal/logger"
	"github.com/guttosm/stockr/internal/storage"
	"github.com/robfig/cron/v3"
)

// NewSessionStore builds the session repository selected by SESSION_STORE.
// The returned close function releases the database handle, if any.
func NewSessionStore(cfg config.Config) (storage.SessionRepository, func(), error) {
	switch cfg.Session.Store {
	case "", config.SessionStoreMemory:
		return storage.NewMemorySessionRepository(), func() {}, nil
	case config.SessionStorePostgres:
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		return storage.NewPostgresSessionRepository(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// SessionPruner periodically deletes sessions idle for longer than ttl.
type SessionPruner struct {
	repo storage.SessionRepository
	ttl  time.Duration
	now  func() time.Time
	cron *cron.Cron
}

// NewSessionPruner schedules pruning on spec, a six-field cron expression
// (seconds first). The job is not running until Start is called.
func NewSessionPruner(repo storage.SessionRepository, ttl time.Duration, spec string) (*SessionPruner, error) {
	p := &SessionPruner{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
		cron: cron.New(cron.WithSeconds()),
	}
	if _, err := p.cron.AddFunc(spec, func() { _, _ = p.PruneOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid SESSION_PRUNE_CRON %q: %w", spec, err)
	}
	return p, nil
}

// PruneOnce removes every session last updated before now-ttl.
func (p *SessionPruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.ttl)
	n, err := p.repo.PruneBefore(ctx, cutoff)
	if err != nil {
		logger.L().Error().Err(err).Msg("session prune failed")
		return 0, err
	}
	if n > 0 {
		logger.L().Info().Int64("removed", n).Time("cutoff", cutoff).Msg("sessions pruned")
	}
	return n, nil
}

// Start runs the schedule in the background.
func (p *SessionPruner) Start() { p.cron.Start() }

// Stop halts the schedule and waits for a running prune to finish.
func (p *SessionPruner) Stop() { <-p.cron.Stop().Done() }
