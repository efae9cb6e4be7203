package usecase

import (
	"context"
	"time"

	"placemarks-service/internal/domain/entity"
	"placemarks-service/internal/domain/repository"
	"placemarks-service/pkg/logger"
	"placemarks-service/pkg/pacer"
)

// MigrationSweeper drives enrichment over every place referenced by a
// curated list and audits the outcome.
type MigrationSweeper struct {
	placeRepo repository.PlaceRepository
	enhancer  *PlaceEnhancer
	logger    logger.Logger
}

// NewMigrationSweeper creates a new migration sweeper
func NewMigrationSweeper(placeRepo repository.PlaceRepository, enhancer *PlaceEnhancer, log logger.Logger) *MigrationSweeper {
	return &MigrationSweeper{
		placeRepo: placeRepo,
		enhancer:  enhancer,
		logger:    log,
	}
}

// candidatesFrom filters curated places down to those missing at least one
// enrichable field, carrying the per-field needs map and list name through
// for reporting.
func candidatesFrom(curated []entity.CuratedPlace) []entity.EnhancementCandidate {
	candidates := make([]entity.EnhancementCandidate, 0, len(curated))
	for i := range curated {
		place := &curated[i].Place
		needs := fieldNeeds(place)
		if !needs.Any() {
			continue
		}
		candidates = append(candidates, entity.EnhancementCandidate{
			GooglePlaceID: place.GooglePlaceID,
			Name:          place.Name,
			ListName:      curated[i].ListName,
			Missing:       needs,
		})
	}
	return candidates
}

// FindPlacesNeedingEnhancement returns every curated-list place that still
// misses at least one enrichable field.
func (ms *MigrationSweeper) FindPlacesNeedingEnhancement(ctx context.Context) ([]entity.EnhancementCandidate, error) {
	curated, err := ms.placeRepo.QueryCuratedListPlaces(ctx)
	if err != nil {
		return nil, err
	}
	return candidatesFrom(curated), nil
}

// MigrateCuratedListPlaces computes the worklist and drives batched
// enrichment over it. With DryRun set it only logs the intended work; no
// external calls, no writes.
func (ms *MigrationSweeper) MigrateCuratedListPlaces(ctx context.Context, opts entity.MigrationOptions) (*entity.MigrationReport, error) {
	start := time.Now()

	curated, err := ms.placeRepo.QueryCuratedListPlaces(ctx)
	if err != nil {
		return nil, err
	}
	candidates := candidatesFrom(curated)

	report := &entity.MigrationReport{
		TotalCandidates:    len(curated),
		NeedingEnhancement: len(candidates),
		DryRun:             opts.DryRun,
	}

	ms.logger.Info("Curated list migration starting",
		"totalPlaces", len(curated),
		"needingEnhancement", len(candidates),
		"dryRun", opts.DryRun)

	if opts.DryRun {
		for _, candidate := range candidates {
			ms.logger.Info("Would enhance place",
				"placeId", candidate.GooglePlaceID,
				"name", candidate.Name,
				"list", candidate.ListName,
				"missing", candidate.Missing)
		}
		report.Elapsed = time.Since(start)
		return report, nil
	}

	ids := make([]string, len(candidates))
	byID := make(map[string]*entity.EnhancementCandidate, len(candidates))
	for i := range candidates {
		ids[i] = candidates[i].GooglePlaceID
		byID[candidates[i].GooglePlaceID] = &candidates[i]
	}

	summary := ms.enhancer.EnhancePlaces(ctx, ids, opts.BatchSize, pacer.NewIntervalPacer(opts.DelayBetweenBatches))

	report.Enhanced = summary.Enhanced
	report.Skipped = summary.Skipped
	report.Errors = summary.Errors

	// Match outcomes back to the candidate list for display names.
	report.Places = make([]entity.PlaceOutcome, 0, len(summary.Results))
	for _, result := range summary.Results {
		outcome := entity.PlaceOutcome{
			GooglePlaceID: result.GooglePlaceID,
			Error:         result.Error,
			FieldsAdded:   result.FieldsAdded,
		}
		switch {
		case result.Error != "":
			outcome.Status = entity.OutcomeError
		case result.Enhanced:
			outcome.Status = entity.OutcomeEnhanced
		default:
			outcome.Status = entity.OutcomeSkipped
		}
		if candidate := byID[result.GooglePlaceID]; candidate != nil {
			outcome.Name = candidate.Name
			outcome.ListName = candidate.ListName
		}
		report.Places = append(report.Places, outcome)
	}

	report.Elapsed = time.Since(start)

	ms.logger.Info("Curated list migration finished",
		"enhanced", report.Enhanced,
		"skipped", report.Skipped,
		"errors", report.Errors,
		"elapsed", report.Elapsed)

	return report, nil
}

// ValidateEnhancement audits all curated-list places after a migration:
// how many are fully complete and, per field, how many gaps remain.
// Read-only, no side effects.
func (ms *MigrationSweeper) ValidateEnhancement(ctx context.Context) (*entity.ValidationSummary, error) {
	curated, err := ms.placeRepo.QueryCuratedListPlaces(ctx)
	if err != nil {
		return nil, err
	}

	summary := &entity.ValidationSummary{
		Total: len(curated),
		IncompleteFieldCounts: map[string]int{
			"phone":   0,
			"website": 0,
			"rating":  0,
			"hours":   0,
			"photos":  0,
		},
	}

	for i := range curated {
		needs := fieldNeeds(&curated[i].Place)
		if !needs.Any() {
			summary.Complete++
			continue
		}
		if needs.Phone {
			summary.IncompleteFieldCounts["phone"]++
		}
		if needs.Website {
			summary.IncompleteFieldCounts["website"]++
		}
		if needs.Rating {
			summary.IncompleteFieldCounts["rating"]++
		}
		if needs.Hours {
			summary.IncompleteFieldCounts["hours"]++
		}
		if needs.Photos {
			summary.IncompleteFieldCounts["photos"]++
		}
	}

	return summary, nil
}
