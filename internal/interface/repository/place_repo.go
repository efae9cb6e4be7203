package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"placemarks-service/internal/domain/entity"
	"placemarks-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormPlaceRepository implements the PlaceRepository interface
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewGormPlaceRepository creates a new GORM place repository
func NewGormPlaceRepository(db *gorm.DB) repository.PlaceRepository {
	return &GormPlaceRepository{
		db: db,
	}
}

// Places GORM model for database mapping
type Places struct {
	ID              uint     `gorm:"primaryKey"`
	GooglePlaceID   string   `gorm:"column:google_place_id;uniqueIndex"`
	Name            string   `gorm:"column:name"`
	Address         string   `gorm:"column:address"`
	Latitude        float64  `gorm:"column:latitude"`
	Longitude       float64  `gorm:"column:longitude"`
	Phone           *string  `gorm:"column:phone"`
	Website         *string  `gorm:"column:website"`
	GoogleRating    *float64 `gorm:"column:google_rating"`
	HoursOpen       []byte   `gorm:"column:hours_open;type:jsonb"`
	PhotoReferences []byte   `gorm:"column:photo_references;type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (Places) TableName() string {
	return "places"
}

// Lists GORM model for curated list metadata
type Lists struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"column:name"`
	IsCurated bool   `gorm:"column:is_curated"`
}

// TableName overrides the default table name
func (Lists) TableName() string {
	return "lists"
}

// ListPlaces GORM model for list membership
type ListPlaces struct {
	ListID  uint `gorm:"column:list_id"`
	PlaceID uint `gorm:"column:place_id"`
}

// TableName overrides the default table name
func (ListPlaces) TableName() string {
	return "list_places"
}

// GetByPlaceID finds a place by its Google place ID
func (r *GormPlaceRepository) GetByPlaceID(ctx context.Context, googlePlaceID string) (*entity.Place, error) {
	var place Places
	result := r.db.WithContext(ctx).Where("google_place_id = ?", googlePlaceID).First(&place)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toEntity(&place)
}

// Upsert writes the partial update keyed by Google place ID. Missing rows
// are created from the update's descriptive fields.
func (r *GormPlaceRepository) Upsert(ctx context.Context, googlePlaceID string, update *entity.PlaceUpdate) error {
	fields := map[string]interface{}{}

	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.Website != nil {
		fields["website"] = *update.Website
	}
	if update.GoogleRating != nil {
		fields["google_rating"] = *update.GoogleRating
	}
	if update.HoursOpen != nil {
		hours, err := json.Marshal(update.HoursOpen)
		if err != nil {
			return fmt.Errorf("failed to marshal opening hours: %w", err)
		}
		fields["hours_open"] = hours
	}
	if len(update.PhotoReferences) > 0 {
		photos, err := json.Marshal(update.PhotoReferences)
		if err != nil {
			return fmt.Errorf("failed to marshal photo references: %w", err)
		}
		fields["photo_references"] = photos
	}

	if len(fields) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&Places{}).
		Where("google_place_id = ?", googlePlaceID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update place %s: %w", googlePlaceID, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// No existing row: create one from the descriptive fields plus the
	// enrichable fields of this update.
	row := Places{
		GooglePlaceID: googlePlaceID,
		Name:          update.Name,
		Address:       update.Address,
		Latitude:      update.Latitude,
		Longitude:     update.Longitude,
		Phone:         update.Phone,
		Website:       update.Website,
		GoogleRating:  update.GoogleRating,
	}
	if hours, ok := fields["hours_open"].([]byte); ok {
		row.HoursOpen = hours
	}
	if photos, ok := fields["photo_references"].([]byte); ok {
		row.PhotoReferences = photos
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create place %s: %w", googlePlaceID, err)
	}
	return nil
}

// curatedPlaceRow carries the join of places to their owning curated list
type curatedPlaceRow struct {
	ID              uint
	GooglePlaceID   string
	Name            string
	Address         string
	Latitude        float64
	Longitude       float64
	Phone           *string
	Website         *string
	GoogleRating    *float64
	HoursOpen       []byte
	PhotoReferences []byte
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ListName        string
}

// QueryCuratedListPlaces returns every place belonging to at least one
// curated list, joined to the owning list's name. Places in several curated
// lists come back once, with the first matching list.
func (r *GormPlaceRepository) QueryCuratedListPlaces(ctx context.Context) ([]entity.CuratedPlace, error) {
	var rows []curatedPlaceRow
	result := r.db.WithContext(ctx).
		Table("places").
		Select("places.*, lists.name AS list_name").
		Joins("INNER JOIN list_places ON list_places.place_id = places.id").
		Joins("INNER JOIN lists ON lists.id = list_places.list_id").
		Where("lists.is_curated = ?", true).
		Order("places.id, lists.id").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query curated list places: %w", result.Error)
	}

	seen := make(map[uint]bool, len(rows))
	curated := make([]entity.CuratedPlace, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if seen[row.ID] {
			continue
		}
		seen[row.ID] = true

		place, err := toEntity(&Places{
			ID:              row.ID,
			GooglePlaceID:   row.GooglePlaceID,
			Name:            row.Name,
			Address:         row.Address,
			Latitude:        row.Latitude,
			Longitude:       row.Longitude,
			Phone:           row.Phone,
			Website:         row.Website,
			GoogleRating:    row.GoogleRating,
			HoursOpen:       row.HoursOpen,
			PhotoReferences: row.PhotoReferences,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
		if err != nil {
			return nil, err
		}
		curated = append(curated, entity.CuratedPlace{
			Place:    *place,
			ListName: row.ListName,
		})
	}

	return curated, nil
}

// toEntity converts the GORM model to the domain entity, decoding the
// jsonb columns.
func toEntity(place *Places) (*entity.Place, error) {
	converted := &entity.Place{
		ID:            place.ID,
		GooglePlaceID: place.GooglePlaceID,
		Name:          place.Name,
		Address:       place.Address,
		Latitude:      place.Latitude,
		Longitude:     place.Longitude,
		Phone:         place.Phone,
		Website:       place.Website,
		GoogleRating:  place.GoogleRating,
		CreatedAt:     place.CreatedAt,
		UpdatedAt:     place.UpdatedAt,
	}

	if len(place.HoursOpen) > 0 && string(place.HoursOpen) != "null" {
		var hours entity.OpeningHours
		if err := json.Unmarshal(place.HoursOpen, &hours); err != nil {
			return nil, fmt.Errorf("failed to decode hours for place %s: %w", place.GooglePlaceID, err)
		}
		converted.HoursOpen = &hours
	}

	if len(place.PhotoReferences) > 0 && string(place.PhotoReferences) != "null" {
		var photos []entity.PhotoEntry
		if err := json.Unmarshal(place.PhotoReferences, &photos); err != nil {
			return nil, fmt.Errorf("failed to decode photos for place %s: %w", place.GooglePlaceID, err)
		}
		converted.PhotoReferences = photos
	}

	return converted, nil
}
