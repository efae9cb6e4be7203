package usecase

import (
	"context"
	"time"

	"placemarks-service/internal/domain/repository"
	"placemarks-service/pkg/logger"
	"placemarks-service/pkg/metrics"
)

// CacheJanitor periodically removes expired entries from the freshness
// cache. Expired entries are already excluded from reads; this reclaims the
// storage.
type CacheJanitor struct {
	cacheRepo repository.PlaceCacheRepository
	interval  time.Duration
	metrics   *metrics.Metrics
	logger    logger.Logger
}

// NewCacheJanitor creates a new cache janitor. Metrics may be nil.
func NewCacheJanitor(cacheRepo repository.PlaceCacheRepository, interval time.Duration, m *metrics.Metrics, log logger.Logger) *CacheJanitor {
	return &CacheJanitor{
		cacheRepo: cacheRepo,
		interval:  interval,
		metrics:   m,
		logger:    log,
	}
}

// StartSweeping runs cleanup sweeps on the configured interval until the
// context is cancelled.
func (j *CacheJanitor) StartSweeping(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info("Cache janitor started", "interval", j.interval)

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("Cache janitor stopped")
			return
		case <-ticker.C:
			if _, err := j.SweepOnce(ctx); err != nil {
				j.logger.Error("Cache cleanup sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce removes all currently expired entries and returns how many
// were deleted.
func (j *CacheJanitor) SweepOnce(ctx context.Context) (int64, error) {
	removed, err := j.cacheRepo.DeleteExpired(ctx)
	if err != nil {
		if j.metrics != nil {
			j.metrics.ErrorsCount.WithLabelValues("cache_cleanup").Inc()
		}
		return 0, err
	}

	if removed > 0 {
		j.logger.Info("Removed expired cache entries", "count", removed)
		if j.metrics != nil {
			j.metrics.CacheEntriesRemoved.Add(float64(removed))
		}
	}

	return removed, nil
}
