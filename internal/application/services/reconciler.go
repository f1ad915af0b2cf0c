package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/infrastructure/metrics"
)

const (
	sweepBatch = 100
	// rows past this many failed deletes stay in the log for an operator
	maxSweepAttempts = 20
)

// BlobReconciler retries deletes of orphaned blobs on a fixed interval.
type BlobReconciler struct {
	orphanRepository document.OrphanRepository
	storage          ports.ObjectStorage
	mCounter         *prometheus.CounterVec
	logger           *zap.Logger
}

func NewBlobReconciler(
	orphanRepository document.OrphanRepository,
	storage ports.ObjectStorage,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) *BlobReconciler {
	return &BlobReconciler{
		orphanRepository: orphanRepository,
		storage:          storage,
		mCounter:         mCounter,
		logger:           logger,
	}
}

// Sweep makes one pass and returns how many blobs were removed.
func (r *BlobReconciler) Sweep(ctx context.Context) (int, error) {
	pending, err := r.orphanRepository.FetchPendingOrphans(ctx, maxSweepAttempts, sweepBatch)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, o := range pending {
		if err = ctx.Err(); err != nil {
			return removed, err
		}

		if derr := r.storage.Delete(ctx, o.StorageKey); derr != nil {
			r.logger.Warn("orphaned blob still not deleted",
				zap.String("storage_key", o.StorageKey),
				zap.Int("attempts", o.Attempts+1),
				zap.Error(derr),
			)
			if err = r.orphanRepository.MarkOrphanAttempt(ctx, o.ID, derr.Error()); err != nil {
				return removed, err
			}
			continue
		}

		if err = r.orphanRepository.ResolveOrphan(ctx, o.ID); err != nil {
			return removed, err
		}
		removed++
		metrics.Inc(r.mCounter, metrics.OrphansReconciled)
	}

	return removed, nil
}

// Worker sweeps every interval until ctx is done; a non-positive interval disables it.
func (r *BlobReconciler) Worker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		r.logger.Info("orphan reconciler disabled")
		return
	}

	r.logger.Info("starting orphan reconciler", zap.Duration("interval", interval))

	defer func() {
		r.logger.Info("orphan reconciler gracefully stopped")
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := r.Sweep(ctx)
			if err != nil && ctx.Err() == nil {
				r.logger.Error("orphan sweep failed", zap.Error(err))
			}
			if n > 0 {
				r.logger.Info("orphaned blobs removed", zap.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}
