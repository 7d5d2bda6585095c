package sched

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/adapter"
	"telegram-midjourney-bot/internal/infra/metrics"
)

// PendingSource is the registry view the sweeper needs beyond the four
// registry port operations.
type PendingSource interface {
	Stale(olderThan time.Time) []model.PendingTask
	Remove(hash string)
}

// SweepWorker periodically abandons pending tasks whose terminal notification
// never arrived, so registry entries and placeholder messages do not strand
// forever.
type SweepWorker struct {
	interval time.Duration
	ttl      time.Duration
	tasks    PendingSource
	msgr     adapter.Messenger
	log      *zerolog.Logger
}

func NewSweepWorker(interval, ttl time.Duration, tasks PendingSource, msgr adapter.Messenger, logger *zerolog.Logger) *SweepWorker {
	sweepLog := logger.With().Str("component", "SweepWorker").Logger()
	return &SweepWorker{
		interval: interval,
		ttl:      ttl,
		tasks:    tasks,
		msgr:     msgr,
		log:      &sweepLog,
	}
}

func (w *SweepWorker) Run(ctx context.Context) error {
	if w.ttl <= 0 {
		w.log.Info().Msg("task TTL not configured; sweeper disabled")
		return nil
	}
	w.log.Info().Dur("interval", w.interval).Dur("ttl", w.ttl).Msg("Starting sweep worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping sweep worker")
			return ctx.Err()
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep removes every task older than the TTL and tells its user.
func (w *SweepWorker) Sweep(ctx context.Context) {
	stale := w.tasks.Stale(time.Now().Add(-w.ttl))
	for _, t := range stale {
		w.tasks.Remove(t.Hash)
		metrics.IncTaskSwept()
		text := fmt.Sprintf("⚠️ Task %s was abandoned: no result arrived in time.", t.Hash)
		if err := w.msgr.EditMessage(ctx, t.ChatID, t.MessageID, text); err != nil {
			w.log.Warn().Err(err).Str("hash", t.Hash).Msg("failed to notify abandonment")
		}
	}
	if len(stale) > 0 {
		w.log.Info().Int("count", len(stale)).Msg("stale pending tasks swept")
	}
}
