package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"placemarks-service/internal/domain/entity"
	"placemarks-service/internal/domain/repository"
	"placemarks-service/pkg/logger"
	"placemarks-service/pkg/utils"
)

// detailFields is the fixed field mask requested from the details endpoint.
const detailFields = "place_id,name,formatted_address,geometry,photo,rating,price_level,type,formatted_phone_number,website,opening_hours"

// GooglePlacesRepository fetches place details over the Google Places web API
type GooglePlacesRepository struct {
	logger     logger.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGooglePlacesRepository creates a new places API repository
func NewGooglePlacesRepository(apiKey, baseURL string, log logger.Logger) repository.PlaceDetailsRepository {
	return &GooglePlacesRepository{
		logger:     log,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// detailsResponse is the raw wire shape of a details call
type detailsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Result       detailsResult `json:"result"`
}

type detailsResult struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	FormattedPhoneNumber string               `json:"formatted_phone_number"`
	Website              string               `json:"website"`
	Rating               *float64             `json:"rating"`
	PriceLevel           *int                 `json:"price_level"`
	Types                []string             `json:"types"`
	OpeningHours         *entity.OpeningHours `json:"opening_hours"`
	Photos               []json.RawMessage    `json:"photos"`
}

// FetchDetails fetches the detail payload for one place and parses it into
// the strict PlaceDetail shape. Every failure comes back as an error value.
func (r *GooglePlacesRepository) FetchDetails(ctx context.Context, googlePlaceID string) (*entity.PlaceDetail, error) {
	query := url.Values{}
	query.Set("place_id", googlePlaceID)
	query.Set("fields", detailFields)
	query.Set("key", r.apiKey)

	endpoint := fmt.Sprintf("%s/details/json?%s", r.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch place details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned status %d", resp.StatusCode)
	}

	var response detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if response.Status != "OK" {
		if response.ErrorMessage != "" {
			return nil, fmt.Errorf("places API error: %s (%s)", response.ErrorMessage, response.Status)
		}
		return nil, fmt.Errorf("places API returned status %s", response.Status)
	}

	detail, err := toPlaceDetail(&response.Result)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Fetched place details",
		"placeId", googlePlaceID,
		"name", detail.Name,
		"photoCount", len(detail.Photos))

	return detail, nil
}

// toPlaceDetail validates the raw result and converts it to the domain
// shape. This is the single point where untyped API output becomes typed.
func toPlaceDetail(result *detailsResult) (*entity.PlaceDetail, error) {
	if result.PlaceID == "" {
		return nil, fmt.Errorf("places API result missing place_id")
	}

	hours := result.OpeningHours
	if hours.IsEmpty() {
		hours = nil
	}

	return &entity.PlaceDetail{
		PlaceID:          result.PlaceID,
		Name:             result.Name,
		FormattedAddress: result.FormattedAddress,
		Latitude:         result.Geometry.Location.Lat,
		Longitude:        result.Geometry.Location.Lng,
		Phone:            result.FormattedPhoneNumber,
		Website:          result.Website,
		Rating:           result.Rating,
		PriceLevel:       result.PriceLevel,
		Types:            result.Types,
		OpeningHours:     hours,
		Photos:           utils.NormalizePhotos(result.Photos),
	}, nil
}
