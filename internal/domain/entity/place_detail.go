package entity

// PlaceDetail is the strict, validated form of one places API detail
// response. Raw API payloads are parsed into this at the repository
// boundary; nothing downstream touches untyped JSON.
type PlaceDetail struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Latitude         float64
	Longitude        float64
	Phone            string
	Website          string
	Rating           *float64
	PriceLevel       *int
	Types            []string
	OpeningHours     *OpeningHours
	Photos           []PhotoReference
}
