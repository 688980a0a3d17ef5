package sched

import (
	"context"
	"time"

	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/metrics"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

// CleanupWorker periodically purges expired verification codes and refreshes
// the connection-pool gauges.
type CleanupWorker struct {
	interval time.Duration
	codes    repository.VerificationCodeRepository
	pool     *pgxpool.Pool
	log      *zerolog.Logger
}

func NewCleanupWorker(interval time.Duration, codes repository.VerificationCodeRepository, pool *pgxpool.Pool, logger *zerolog.Logger) *CleanupWorker {
	compLog := logger.With().Str("component", "CleanupWorker").Logger()
	return &CleanupWorker{
		interval: interval,
		codes:    codes,
		pool:     pool,
		log:      &compLog,
	}
}

func (w *CleanupWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting cleanup worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping cleanup worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.codes.DeleteExpired(ctx, time.Now())
			if err != nil {
				w.log.Error().Err(err).Msg("cleanup worker error")
			}
			if n > 0 {
				w.log.Info().Int("count", n).Msg("expired verification codes purged")
			}

			if w.pool != nil {
				stat := w.pool.Stat()
				metrics.SetDBPoolStats(stat.TotalConns(), stat.IdleConns(), stat.AcquiredConns())
			}
		}
	}
}
