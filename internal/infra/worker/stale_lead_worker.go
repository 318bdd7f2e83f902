package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type AwaitingContactCounter interface {
	CountAwaitingContact(ctx context.Context, cutoff time.Time) (int, error)
}

// StaleLeadWorker acompanha leads que continuam "new" depois do prazo de contato.
type StaleLeadWorker struct {
	repo         AwaitingContactCounter
	staleAfter   time.Duration
	tickInterval time.Duration
	report       func(n int)
	log          *zap.Logger
	now          func() time.Time
}

func NewStaleLeadWorker(repo AwaitingContactCounter, staleAfter time.Duration, report func(int), log *zap.Logger) *StaleLeadWorker {
	if log == nil {
		log = zap.NewNop()
	}
	if report == nil {
		report = func(int) {}
	}
	return &StaleLeadWorker{
		repo:         repo,
		staleAfter:   staleAfter,
		tickInterval: 5 * time.Minute,
		report:       report,
		log:          log,
		now:          time.Now,
	}
}

func (w *StaleLeadWorker) Start(ctx context.Context) {
	w.log.Info("stale lead worker started", zap.Duration("stale_after", w.staleAfter))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("stale lead worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *StaleLeadWorker) sweep(ctx context.Context) {
	cutoff := w.now().UTC().Add(-w.staleAfter)

	count, err := w.repo.CountAwaitingContact(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to count stale leads", zap.Error(err))
		return
	}

	w.report(count)
	if count > 0 {
		w.log.Warn("leads awaiting first contact",
			zap.Int("count", count),
			zap.Time("created_before", cutoff),
		)
	}
}
