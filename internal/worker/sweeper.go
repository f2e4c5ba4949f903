package worker

import (
	"context"
	"log/slog"
	"time"
)

// InvitationStore is the slice of the store the sweeper needs.
type InvitationStore interface {
	ExpireInvitations(ctx context.Context, now time.Time) (int, error)
}

// Sweeper periodically marks stale pending invitations as expired.
type Sweeper struct {
	store    InvitationStore
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(store InvitationStore, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("invitation sweeper started", "interval", s.interval)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("invitation sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	expired, err := s.store.ExpireInvitations(sweepCtx, time.Now())
	if err != nil {
		s.logger.Error("invitation sweep failed", "error", err)
		return
	}
	if expired > 0 {
		s.logger.Info("expired stale invitations", "count", expired)
	}
}
