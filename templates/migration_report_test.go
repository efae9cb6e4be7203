package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"placemarks-service/internal/domain/entity"
)

func sampleReport() *entity.MigrationReport {
	return &entity.MigrationReport{
		TotalCandidates:    10,
		NeedingEnhancement: 3,
		Enhanced:           2,
		Skipped:            0,
		Errors:             1,
		Elapsed:            1500 * time.Millisecond,
		Places: []entity.PlaceOutcome{
			{
				GooglePlaceID: "a",
				Name:          "Blue Bottle",
				ListName:      "Best Coffee",
				Status:        entity.OutcomeEnhanced,
				FieldsAdded:   entity.FieldsAdded{Phone: true, Hours: true},
			},
			{
				GooglePlaceID: "b",
				Name:          "Ghost Kitchen",
				Status:        entity.OutcomeError,
				Error:         "places API returned status NOT_FOUND",
			},
			{
				GooglePlaceID: "c",
				Status:        entity.OutcomeEnhanced,
				FieldsAdded:   entity.FieldsAdded{Rating: true},
			},
		},
	}
}

func TestFormatMigrationReport_GroupsAndCounts(t *testing.T) {
	text := FormatMigrationReport(sampleReport())

	assert.Contains(t, text, "Curated-list places:  10")
	assert.Contains(t, text, "Needing enhancement:  3")
	assert.Contains(t, text, "Enhanced (2):")
	assert.Contains(t, text, "Errored (1):")
	assert.NotContains(t, text, "Skipped (")
	assert.Contains(t, text, "Blue Bottle (a) [Best Coffee] (+phone, hours)")
	assert.Contains(t, text, "NOT_FOUND")
	assert.Contains(t, text, "Success rate:         66.7%")
}

func TestFormatMigrationReport_DryRun(t *testing.T) {
	report := &entity.MigrationReport{
		TotalCandidates:    5,
		NeedingEnhancement: 4,
		DryRun:             true,
	}
	text := FormatMigrationReport(report)

	assert.Contains(t, text, "DRY RUN")
	assert.Contains(t, text, "re-run without dryRun")
}

func TestFormatMigrationReport_NothingToDo(t *testing.T) {
	report := &entity.MigrationReport{TotalCandidates: 5}
	text := FormatMigrationReport(report)

	assert.True(t, strings.Contains(text, "Nothing to do"))
}
