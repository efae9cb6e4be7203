package usecase

import (
	"context"
	"sync"
	"time"

	"placemarks-service/internal/domain/entity"
	"placemarks-service/internal/domain/repository"
	"placemarks-service/pkg/logger"
	"placemarks-service/pkg/metrics"
	"placemarks-service/pkg/pacer"
	"placemarks-service/pkg/utils"
)

// Default batch tuning. The photo-structure repair variant runs smaller and
// slower since it targets rows that all require an external call.
const (
	DefaultBatchSize  = 5
	DefaultBatchDelay = 1 * time.Second
	PhotoFixBatchSize = 3
	PhotoFixDelay     = 2 * time.Second
)

// PlaceEnhancer fills in missing place fields from the external places API
// and keeps the freshness cache up to date.
type PlaceEnhancer struct {
	placeRepo   repository.PlaceRepository
	cacheRepo   repository.PlaceCacheRepository
	detailsRepo repository.PlaceDetailsRepository
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewPlaceEnhancer creates a new place enhancer. Metrics may be nil.
func NewPlaceEnhancer(
	placeRepo repository.PlaceRepository,
	cacheRepo repository.PlaceCacheRepository,
	detailsRepo repository.PlaceDetailsRepository,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	log logger.Logger,
) *PlaceEnhancer {
	return &PlaceEnhancer{
		placeRepo:   placeRepo,
		cacheRepo:   cacheRepo,
		detailsRepo: detailsRepo,
		cacheTTL:    cacheTTL,
		metrics:     m,
		logger:      log,
	}
}

// fieldNeeds reports which enrichable fields the place is missing. An hours
// object with no usable content counts as missing.
func fieldNeeds(place *entity.Place) entity.FieldNeeds {
	return entity.FieldNeeds{
		Phone:   place.Phone == nil || *place.Phone == "",
		Website: place.Website == nil || *place.Website == "",
		Rating:  place.GoogleRating == nil,
		Hours:   place.HoursOpen.IsEmpty(),
		Photos:  len(place.PhotoReferences) == 0,
	}
}

// NeedsEnhancement decides whether a place requires an external fetch.
// A missing row or a failed read both count as needing enhancement; skipping
// stale data silently would be worse than refetching it. With
// forcePhotoCheck set, a leading bare-string photo entry (the legacy
// serialization) also triggers enhancement even when every field is present.
func (pe *PlaceEnhancer) NeedsEnhancement(ctx context.Context, googlePlaceID string, forcePhotoCheck bool) bool {
	place, err := pe.placeRepo.GetByPlaceID(ctx, googlePlaceID)
	if err != nil {
		pe.logger.Warn("Place read failed, treating as needing enhancement",
			"placeId", googlePlaceID, "error", err)
		return true
	}
	if place == nil {
		return true
	}

	if fieldNeeds(place).Any() {
		return true
	}

	if forcePhotoCheck && len(place.PhotoReferences) > 0 && place.PhotoReferences[0].IsLegacy() {
		return true
	}

	return false
}

// EnhancePlace runs one per-place enrichment attempt. Failures are carried
// in the result, never returned as errors; a fetch or store failure for one
// place must not disturb the rest of a batch.
func (pe *PlaceEnhancer) EnhancePlace(ctx context.Context, googlePlaceID string, forcePhotoCheck bool) *entity.EnhancementResult {
	start := time.Now()
	result := &entity.EnhancementResult{GooglePlaceID: googlePlaceID}

	if !pe.NeedsEnhancement(ctx, googlePlaceID, forcePhotoCheck) {
		if pe.metrics != nil {
			pe.metrics.PlacesSkipped.Inc()
		}
		return result
	}

	detail, err := pe.detailsRepo.FetchDetails(ctx, googlePlaceID)
	if err != nil {
		pe.logger.Error("Detail fetch failed", "placeId", googlePlaceID, "error", err)
		if pe.metrics != nil {
			pe.metrics.DetailFetches.WithLabelValues("error").Inc()
			pe.metrics.ErrorsCount.WithLabelValues("fetch_details").Inc()
		}
		result.Error = err.Error()
		return result
	}
	if pe.metrics != nil {
		pe.metrics.DetailFetches.WithLabelValues("ok").Inc()
	}

	update, added := buildUpdate(detail)
	if update.IsEmpty() {
		// The record looked incomplete but the API had nothing usable to
		// offer. A clean no-op, not an error.
		pe.logger.Info("No new fields available", "placeId", googlePlaceID)
		return result
	}

	if err := pe.placeRepo.Upsert(ctx, googlePlaceID, update); err != nil {
		pe.logger.Error("Place upsert failed", "placeId", googlePlaceID, "error", err)
		if pe.metrics != nil {
			pe.metrics.ErrorsCount.WithLabelValues("upsert_place").Inc()
		}
		result.Error = err.Error()
		return result
	}

	outcome := pe.writeCache(ctx, detail)
	if outcome.Err != nil {
		pe.logger.Warn("Freshness cache write failed",
			"placeId", googlePlaceID, "error", outcome.Err)
	}

	result.Enhanced = true
	result.FieldsAdded = added

	if pe.metrics != nil {
		pe.metrics.PlacesEnhanced.Inc()
		pe.metrics.EnhancementTime.Observe(time.Since(start).Seconds())
	}

	pe.logger.Info("Place enhanced",
		"placeId", googlePlaceID,
		"fieldsAdded", added)

	return result
}

// buildUpdate assembles the partial write from a fetched detail, keeping
// only fields present and valid. FieldsAdded tracks what made it into the
// payload, which for an already-set local field means an overwrite.
func buildUpdate(detail *entity.PlaceDetail) (*entity.PlaceUpdate, entity.FieldsAdded) {
	update := &entity.PlaceUpdate{
		Name:      detail.Name,
		Address:   detail.FormattedAddress,
		Latitude:  detail.Latitude,
		Longitude: detail.Longitude,
	}
	var added entity.FieldsAdded

	if detail.Phone != "" {
		phone := detail.Phone
		update.Phone = &phone
		added.Phone = true
	}
	if utils.IsLikelyWebsite(detail.Website) {
		website := detail.Website
		update.Website = &website
		added.Website = true
	}
	if detail.Rating != nil {
		rating := *detail.Rating
		update.GoogleRating = &rating
		added.Rating = true
	}
	if !detail.OpeningHours.IsEmpty() {
		update.HoursOpen = detail.OpeningHours
		added.Hours = true
	}
	if len(detail.Photos) > 0 {
		// Full replacement of the stored list, not a merge.
		update.PhotoReferences = detail.Photos
		added.Photos = true
	}

	return update, added
}

// writeCache refreshes the freshness-cache entry for a fetched detail. The
// outcome is informational; callers never fail an enrichment over it.
func (pe *PlaceEnhancer) writeCache(ctx context.Context, detail *entity.PlaceDetail) entity.CacheWriteOutcome {
	entry := entity.NewPlaceCacheEntry(detail, time.Now(), pe.cacheTTL)
	if err := pe.cacheRepo.Upsert(ctx, entry); err != nil {
		if pe.metrics != nil {
			pe.metrics.ErrorsCount.WithLabelValues("cache_write").Inc()
		}
		return entity.CacheWriteOutcome{Err: err}
	}
	return entity.CacheWriteOutcome{Written: true}
}

// EnhancePlaces runs enrichment over the given IDs in consecutive chunks of
// batchSize, fanning out within a chunk and pacing between chunks.
func (pe *PlaceEnhancer) EnhancePlaces(ctx context.Context, googlePlaceIDs []string, batchSize int, pace pacer.Pacer) *entity.BatchSummary {
	return pe.enhanceBatch(ctx, googlePlaceIDs, batchSize, pace, false)
}

// FixPhotoStructures is the forcePhotoCheck batch variant, used to repair
// rows still carrying the legacy bare-string photo serialization.
func (pe *PlaceEnhancer) FixPhotoStructures(ctx context.Context, googlePlaceIDs []string, batchSize int, pace pacer.Pacer) *entity.BatchSummary {
	if batchSize <= 0 {
		batchSize = PhotoFixBatchSize
	}
	return pe.enhanceBatch(ctx, googlePlaceIDs, batchSize, pace, true)
}

func (pe *PlaceEnhancer) enhanceBatch(ctx context.Context, googlePlaceIDs []string, batchSize int, pace pacer.Pacer, forcePhotoCheck bool) *entity.BatchSummary {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if pace == nil {
		pace = pacer.Nop{}
	}

	summary := &entity.BatchSummary{Total: len(googlePlaceIDs)}

	for start := 0; start < len(googlePlaceIDs); start += batchSize {
		if start > 0 {
			if err := pace.Wait(ctx); err != nil {
				pe.logger.Warn("Batch pacing interrupted", "error", err)
			}
		}

		end := start + batchSize
		if end > len(googlePlaceIDs) {
			end = len(googlePlaceIDs)
		}
		chunk := googlePlaceIDs[start:end]

		for _, result := range pe.enhanceChunk(ctx, chunk, forcePhotoCheck) {
			summary.Results = append(summary.Results, *result)
			switch {
			case result.Error != "":
				summary.Errors++
			case result.Enhanced:
				summary.Enhanced++
			default:
				summary.Skipped++
			}
		}

		pe.logger.Info("Batch chunk complete",
			"from", start,
			"to", end,
			"enhanced", summary.Enhanced,
			"skipped", summary.Skipped,
			"errors", summary.Errors)
	}

	return summary
}

// enhanceChunk runs every member of one chunk concurrently and joins on all
// of them. Each member targets a distinct place row, so the only shared
// state is the preallocated result slice, written at distinct indexes.
func (pe *PlaceEnhancer) enhanceChunk(ctx context.Context, chunk []string, forcePhotoCheck bool) []*entity.EnhancementResult {
	results := make([]*entity.EnhancementResult, len(chunk))

	var wg sync.WaitGroup
	for i, id := range chunk {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = pe.EnhancePlace(ctx, id, forcePhotoCheck)
		}(i, id)
	}
	wg.Wait()

	return results
}
