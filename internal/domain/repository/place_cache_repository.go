package repository

import (
	"context"

	"placemarks-service/internal/domain/entity"
)

// PlaceCacheRepository defines the freshness-cache operations. Entries past
// their expiry are treated as misses on read; physical removal happens only
// through DeleteExpired.
type PlaceCacheRepository interface {
	// Get returns the unexpired entry for a Google place ID, or (nil, nil)
	// on a miss.
	Get(ctx context.Context, googlePlaceID string) (*entity.PlaceCacheEntry, error)
	// Upsert overwrites the entry for the entry's place ID entirely.
	Upsert(ctx context.Context, entry *entity.PlaceCacheEntry) error
	// DeleteExpired removes all entries whose expiry is in the past and
	// returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
