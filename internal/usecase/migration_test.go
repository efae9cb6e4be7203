package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placemarks-service/internal/domain/entity"
)

func newTestSweeper(places *fakePlaceRepo, details *fakeDetailsRepo) *MigrationSweeper {
	enhancer := newTestEnhancer(places, newFakeCacheRepo(), details)
	return NewMigrationSweeper(places, enhancer, testLogger())
}

// curatedMissingPhone builds a curated place that only misses its phone.
func curatedMissingPhone(id uint, googlePlaceID, listName string) entity.CuratedPlace {
	place := completePlace(googlePlaceID)
	place.ID = id
	place.Phone = nil
	return entity.CuratedPlace{Place: *place, ListName: listName}
}

func TestFindPlacesNeedingEnhancement_FiltersComplete(t *testing.T) {
	places := newFakePlaceRepo()
	places.curated = []entity.CuratedPlace{
		{Place: *completePlace("done"), ListName: "Best Coffee"},
		curatedMissingPhone(2, "gap", "Best Coffee"),
	}
	sweeper := newTestSweeper(places, newFakeDetailsRepo())

	candidates, err := sweeper.FindPlacesNeedingEnhancement(context.Background())

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "gap", candidates[0].GooglePlaceID)
	assert.Equal(t, "Best Coffee", candidates[0].ListName)
	assert.Equal(t, entity.FieldNeeds{Phone: true}, candidates[0].Missing)
}

func TestFindPlacesNeedingEnhancement_QueryError(t *testing.T) {
	places := newFakePlaceRepo()
	places.queryErr = errors.New("relation lists does not exist")
	sweeper := newTestSweeper(places, newFakeDetailsRepo())

	_, err := sweeper.FindPlacesNeedingEnhancement(context.Background())
	assert.Error(t, err)
}

func TestMigrate_DryRunTouchesNothing(t *testing.T) {
	places := newFakePlaceRepo()
	places.curated = []entity.CuratedPlace{
		curatedMissingPhone(1, "a", "Hidden Gems"),
		curatedMissingPhone(2, "b", "Hidden Gems"),
		{Place: *completePlace("done"), ListName: "Hidden Gems"},
	}
	details := newFakeDetailsRepo()
	sweeper := newTestSweeper(places, details)

	report, err := sweeper.MigrateCuratedListPlaces(context.Background(), entity.MigrationOptions{DryRun: true})

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 3, report.TotalCandidates)
	assert.Equal(t, 2, report.NeedingEnhancement)
	assert.Equal(t, 0, report.Enhanced)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Errors)
	assert.Equal(t, 0, details.callCount(), "dry run must make no external calls")
	assert.Empty(t, places.upserts, "dry run must write nothing")
}

func TestMigrate_LiveRunReconcilesOutcomes(t *testing.T) {
	places := newFakePlaceRepo()
	places.curated = []entity.CuratedPlace{
		curatedMissingPhone(1, "a", "Date Night"),
		curatedMissingPhone(2, "b", "Brunch"),
	}
	// The place repo also needs per-place rows for the completeness check.
	for _, cp := range places.curated {
		place := cp.Place
		places.places[place.GooglePlaceID] = &place
	}

	details := newFakeDetailsRepo()
	details.details["a"] = &entity.PlaceDetail{PlaceID: "a", Phone: "+1 555 0100"}
	details.details["b"] = &entity.PlaceDetail{PlaceID: "b"} // nothing to offer
	sweeper := newTestSweeper(places, details)

	report, err := sweeper.MigrateCuratedListPlaces(context.Background(), entity.MigrationOptions{BatchSize: 5})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Enhanced)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Errors)
	require.Len(t, report.Places, 2)

	byID := map[string]entity.PlaceOutcome{}
	for _, outcome := range report.Places {
		byID[outcome.GooglePlaceID] = outcome
	}
	assert.Equal(t, entity.OutcomeEnhanced, byID["a"].Status)
	assert.Equal(t, "Date Night", byID["a"].ListName, "outcome must be matched back to its candidate")
	assert.Equal(t, "Complete Place", byID["a"].Name)
	assert.Equal(t, entity.OutcomeSkipped, byID["b"].Status)
}

func TestMigrate_SevenCandidatesThreeChunks(t *testing.T) {
	places := newFakePlaceRepo()
	details := newFakeDetailsRepo()
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("p%d", i)
		places.curated = append(places.curated, curatedMissingPhone(uint(i+1), id, "Road Trip"))
		place := places.curated[i].Place
		places.places[id] = &place
		details.details[id] = &entity.PlaceDetail{PlaceID: id, Phone: "+1 555 0100"}
	}
	sweeper := newTestSweeper(places, details)

	start := time.Now()
	report, err := sweeper.MigrateCuratedListPlaces(context.Background(), entity.MigrationOptions{
		BatchSize:           3,
		DelayBetweenBatches: 10 * time.Millisecond,
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 7, report.Enhanced+report.Skipped+report.Errors)
	assert.Equal(t, 7, report.Enhanced)
	// Chunks of (3,3,1) mean two inter-chunk delays.
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
}

func TestMigrate_ErrorsDoNotAbortTheSweep(t *testing.T) {
	places := newFakePlaceRepo()
	places.curated = []entity.CuratedPlace{
		curatedMissingPhone(1, "a", "List"),
		curatedMissingPhone(2, "b", "List"),
	}
	for _, cp := range places.curated {
		place := cp.Place
		places.places[place.GooglePlaceID] = &place
	}
	details := newFakeDetailsRepo()
	details.err = errors.New("OVER_QUERY_LIMIT")
	sweeper := newTestSweeper(places, details)

	report, err := sweeper.MigrateCuratedListPlaces(context.Background(), entity.MigrationOptions{BatchSize: 1})

	require.NoError(t, err, "per-place failures must still produce a report")
	assert.Equal(t, 2, report.Errors)
	assert.Equal(t, 2, details.callCount(), "every place is still attempted")
}

func TestValidateEnhancement(t *testing.T) {
	missingHours := completePlace("h")
	missingHours.ID = 3
	missingHours.HoursOpen = nil
	missingHoursAndPhotos := completePlace("hp")
	missingHoursAndPhotos.ID = 4
	missingHoursAndPhotos.HoursOpen = &entity.OpeningHours{}
	missingHoursAndPhotos.PhotoReferences = nil

	places := newFakePlaceRepo()
	places.curated = []entity.CuratedPlace{
		{Place: *completePlace("done"), ListName: "List"},
		{Place: *missingHours, ListName: "List"},
		{Place: *missingHoursAndPhotos, ListName: "List"},
	}
	sweeper := newTestSweeper(places, newFakeDetailsRepo())

	summary, err := sweeper.ValidateEnhancement(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Complete)
	assert.Equal(t, 2, summary.IncompleteFieldCounts["hours"])
	assert.Equal(t, 1, summary.IncompleteFieldCounts["photos"])
	assert.Equal(t, 0, summary.IncompleteFieldCounts["phone"])
}
