package templates

import (
	"fmt"
	"strings"
	"time"

	"placemarks-service/internal/domain/entity"
)

// FormatMigrationReport renders a migration report as human-readable text,
// grouped by outcome. Pure formatting, no I/O.
func FormatMigrationReport(report *entity.MigrationReport) string {
	var b strings.Builder

	b.WriteString("=== Curated List Migration Report ===\n\n")
	if report.DryRun {
		b.WriteString("Mode: DRY RUN (no changes were made)\n\n")
	}

	fmt.Fprintf(&b, "Curated-list places:  %d\n", report.TotalCandidates)
	fmt.Fprintf(&b, "Needing enhancement:  %d\n", report.NeedingEnhancement)
	fmt.Fprintf(&b, "Enhanced:             %d\n", report.Enhanced)
	fmt.Fprintf(&b, "Skipped:              %d\n", report.Skipped)
	fmt.Fprintf(&b, "Errors:               %d\n", report.Errors)
	fmt.Fprintf(&b, "Elapsed:              %s\n", report.Elapsed.Round(time.Millisecond))

	attempted := report.Enhanced + report.Skipped + report.Errors
	if attempted > 0 {
		rate := float64(report.Enhanced+report.Skipped) / float64(attempted) * 100
		fmt.Fprintf(&b, "Success rate:         %.1f%%\n", rate)
	}

	writeGroup(&b, "Enhanced", report.Places, entity.OutcomeEnhanced)
	writeGroup(&b, "Errored", report.Places, entity.OutcomeError)
	writeGroup(&b, "Skipped", report.Places, entity.OutcomeSkipped)

	b.WriteString("\n")
	switch {
	case report.DryRun && report.NeedingEnhancement > 0:
		b.WriteString("Recommendation: re-run without dryRun to apply these enhancements.\n")
	case report.Errors > 0:
		b.WriteString("Recommendation: re-run the migration; errored places will be retried,\n")
		b.WriteString("already-complete places are skipped without an API call.\n")
	case report.NeedingEnhancement == 0:
		b.WriteString("All curated-list places are complete. Nothing to do.\n")
	default:
		b.WriteString("Recommendation: run validate to confirm remaining field gaps.\n")
	}

	return b.String()
}

func writeGroup(b *strings.Builder, title string, places []entity.PlaceOutcome, status string) {
	var group []entity.PlaceOutcome
	for _, p := range places {
		if p.Status == status {
			group = append(group, p)
		}
	}
	if len(group) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s (%d):\n", title, len(group))
	for _, p := range group {
		line := fmt.Sprintf("  - %s", displayName(p))
		if p.ListName != "" {
			line += fmt.Sprintf(" [%s]", p.ListName)
		}
		if p.Status == entity.OutcomeEnhanced {
			if fields := addedFields(p.FieldsAdded); len(fields) > 0 {
				line += fmt.Sprintf(" (+%s)", strings.Join(fields, ", "))
			}
		}
		if p.Error != "" {
			line += fmt.Sprintf(": %s", p.Error)
		}
		b.WriteString(line + "\n")
	}
}

func displayName(p entity.PlaceOutcome) string {
	if p.Name != "" {
		return fmt.Sprintf("%s (%s)", p.Name, p.GooglePlaceID)
	}
	return p.GooglePlaceID
}

func addedFields(added entity.FieldsAdded) []string {
	var fields []string
	if added.Phone {
		fields = append(fields, "phone")
	}
	if added.Website {
		fields = append(fields, "website")
	}
	if added.Rating {
		fields = append(fields, "rating")
	}
	if added.Hours {
		fields = append(fields, "hours")
	}
	if added.Photos {
		fields = append(fields, "photos")
	}
	return fields
}
