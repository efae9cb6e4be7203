package entity

import "time"

// PlaceCacheEntry is a time-bounded copy of place detail data held in the
// freshness cache, keyed by Google place ID. At most one entry exists per
// place; every successful enrichment or search-result caching event
// overwrites the prior entry entirely.
type PlaceCacheEntry struct {
	ID            string           `bson:"_id,omitempty"`
	GooglePlaceID string           `bson:"googlePlaceId"`
	Name          string           `bson:"name"`
	Address       string           `bson:"address"`
	Latitude      float64          `bson:"latitude"`
	Longitude     float64          `bson:"longitude"`
	Phone         string           `bson:"phone,omitempty"`
	Website       string           `bson:"website,omitempty"`
	Rating        *float64         `bson:"rating,omitempty"`
	PriceLevel    *int             `bson:"priceLevel,omitempty"`
	Types         []string         `bson:"types,omitempty"`
	HoursOpen     *OpeningHours    `bson:"hoursOpen,omitempty"`
	Photos        []PhotoReference `bson:"photos,omitempty"`
	CachedAt      time.Time        `bson:"cachedAt"`
	ExpiresAt     time.Time        `bson:"expiresAt"`
}

// IsExpired reports whether the entry is logically stale at the given time.
func (e *PlaceCacheEntry) IsExpired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// NewPlaceCacheEntry builds a cache entry from a fetched detail with the
// given TTL applied from now.
func NewPlaceCacheEntry(detail *PlaceDetail, now time.Time, ttl time.Duration) *PlaceCacheEntry {
	return &PlaceCacheEntry{
		GooglePlaceID: detail.PlaceID,
		Name:          detail.Name,
		Address:       detail.FormattedAddress,
		Latitude:      detail.Latitude,
		Longitude:     detail.Longitude,
		Phone:         detail.Phone,
		Website:       detail.Website,
		Rating:        detail.Rating,
		PriceLevel:    detail.PriceLevel,
		Types:         detail.Types,
		HoursOpen:     detail.OpeningHours,
		Photos:        detail.Photos,
		CachedAt:      now,
		ExpiresAt:     now.Add(ttl),
	}
}
