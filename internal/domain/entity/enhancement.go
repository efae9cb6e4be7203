package entity

import "time"

// FieldNeeds reports, per enrichable field, whether a place is missing it.
type FieldNeeds struct {
	Phone   bool `json:"phone"`
	Website bool `json:"website"`
	Rating  bool `json:"rating"`
	Hours   bool `json:"hours"`
	Photos  bool `json:"photos"`
}

// Any reports whether at least one field is missing.
func (n FieldNeeds) Any() bool {
	return n.Phone || n.Website || n.Rating || n.Hours || n.Photos
}

// FieldsAdded marks which fields were present in the update payload of one
// enrichment. Note this reflects "written in this update", not strictly
// "previously absent": a field already set locally is overwritten when the
// API returns a fresh value for it.
type FieldsAdded struct {
	Phone   bool `json:"phone"`
	Website bool `json:"website"`
	Rating  bool `json:"rating"`
	Hours   bool `json:"hours"`
	Photos  bool `json:"photos"`
}

// EnhancementResult is the outcome of one per-place enrichment attempt.
// Failures are carried as values in Error, never as faults.
type EnhancementResult struct {
	GooglePlaceID string      `json:"googlePlaceId"`
	Enhanced      bool        `json:"enhanced"`
	Error         string      `json:"error,omitempty"`
	FieldsAdded   FieldsAdded `json:"fieldsAdded"`
}

// CacheWriteOutcome makes the deliberately non-fatal freshness-cache write
// visible in the signature. Callers are free to discard it; a failed cache
// write never changes the enrichment outcome.
type CacheWriteOutcome struct {
	Written bool
	Err     error
}

// BatchSummary aggregates one batched enrichment run.
type BatchSummary struct {
	Total    int                 `json:"total"`
	Enhanced int                 `json:"enhanced"`
	Skipped  int                 `json:"skipped"`
	Errors   int                 `json:"errors"`
	Results  []EnhancementResult `json:"results"`
}

// EnhancementCandidate is one curated-list place that still misses at least
// one enrichable field, with the owning list's name for reporting.
type EnhancementCandidate struct {
	GooglePlaceID string     `json:"googlePlaceId"`
	Name          string     `json:"name"`
	ListName      string     `json:"listName"`
	Missing       FieldNeeds `json:"missing"`
}

// PlaceOutcome is one per-place line in a migration report.
type PlaceOutcome struct {
	GooglePlaceID string      `json:"googlePlaceId"`
	Name          string      `json:"name"`
	ListName      string      `json:"listName,omitempty"`
	Status        string      `json:"status"` // enhanced | skipped | error
	Error         string      `json:"error,omitempty"`
	FieldsAdded   FieldsAdded `json:"fieldsAdded"`
}

// Migration outcome status tags.
const (
	OutcomeEnhanced = "enhanced"
	OutcomeSkipped  = "skipped"
	OutcomeError    = "error"
)

// MigrationOptions tunes one curated-list migration sweep.
type MigrationOptions struct {
	BatchSize           int
	DelayBetweenBatches time.Duration
	DryRun              bool
}

// MigrationReport aggregates one migration sweep.
type MigrationReport struct {
	TotalCandidates    int            `json:"totalCandidates"`
	NeedingEnhancement int            `json:"needingEnhancement"`
	Enhanced           int            `json:"enhanced"`
	Skipped            int            `json:"skipped"`
	Errors             int            `json:"errors"`
	DryRun             bool           `json:"dryRun"`
	Elapsed            time.Duration  `json:"elapsed"`
	Places             []PlaceOutcome `json:"places"`
}

// ValidationSummary is the read-only post-migration audit over all
// curated-list places.
type ValidationSummary struct {
	Total                 int            `json:"total"`
	Complete              int            `json:"complete"`
	IncompleteFieldCounts map[string]int `json:"incompleteFieldCounts"`
}
