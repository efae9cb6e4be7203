package repository

import (
	"context"

	"placemarks-service/internal/domain/entity"
)

// PlaceRepository defines the primary-store operations for places.
type PlaceRepository interface {
	// GetByPlaceID returns the place for a Google place ID, or (nil, nil)
	// when no row exists.
	GetByPlaceID(ctx context.Context, googlePlaceID string) (*entity.Place, error)
	// Upsert writes the partial update keyed by Google place ID, creating
	// the row from the update's descriptive fields when it does not exist.
	Upsert(ctx context.Context, googlePlaceID string, update *entity.PlaceUpdate) error
	// QueryCuratedListPlaces returns every place that belongs to at least
	// one curated list, joined to the owning list's name.
	QueryCuratedListPlaces(ctx context.Context) ([]entity.CuratedPlace, error)
}
