package repository

import (
	"context"

	"placemarks-service/internal/domain/entity"
)

// PlaceDetailsRepository fetches detail data for one place from the
// external places API. Failures come back as error values; callers treat
// them as non-fatal, per-place outcomes.
type PlaceDetailsRepository interface {
	FetchDetails(ctx context.Context, googlePlaceID string) (*entity.PlaceDetail, error)
}
