package entity

import (
	"encoding/json"
	"time"
)

// Place is the canonical representation of a place in the primary store.
// The Google place ID is unique and immutable once the row is created;
// the enrichable fields stay nil until the enhancement pipeline fills them.
type Place struct {
	ID              uint
	GooglePlaceID   string
	Name            string
	Address         string
	Latitude        float64
	Longitude       float64
	Phone           *string
	Website         *string
	GoogleRating    *float64
	HoursOpen       *OpeningHours
	PhotoReferences []PhotoEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PhotoReference is the structured photo shape stored after normalization.
type PhotoReference struct {
	PhotoReference   string   `json:"photo_reference"`
	Height           int      `json:"height"`
	Width            int      `json:"width"`
	HTMLAttributions []string `json:"html_attributions"`
}

// PhotoEntry preserves the raw shape of one stored photo element. Older rows
// were written as a bare string array instead of structured objects; the
// legacy form is kept visible so the completeness policy can detect it.
type PhotoEntry struct {
	Structured *PhotoReference
	LegacyRef  string
}

// IsLegacy reports whether this entry was stored as a bare reference string.
func (e PhotoEntry) IsLegacy() bool {
	return e.Structured == nil && e.LegacyRef != ""
}

func (e *PhotoEntry) UnmarshalJSON(data []byte) error {
	var ref string
	if err := json.Unmarshal(data, &ref); err == nil {
		e.LegacyRef = ref
		e.Structured = nil
		return nil
	}

	var structured PhotoReference
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	e.Structured = &structured
	e.LegacyRef = ""
	return nil
}

func (e PhotoEntry) MarshalJSON() ([]byte, error) {
	if e.Structured != nil {
		return json.Marshal(e.Structured)
	}
	return json.Marshal(e.LegacyRef)
}

// OpeningHours mirrors the places API opening_hours object.
type OpeningHours struct {
	OpenNow     *bool         `json:"open_now,omitempty" bson:"openNow,omitempty"`
	Periods     []HoursPeriod `json:"periods,omitempty" bson:"periods,omitempty"`
	WeekdayText []string      `json:"weekday_text,omitempty" bson:"weekdayText,omitempty"`
}

// IsEmpty reports whether the structure carries no usable schedule data.
// Rows written by an older importer hold `{}` in the hours column, which
// counts as absent for completeness purposes.
func (h *OpeningHours) IsEmpty() bool {
	if h == nil {
		return true
	}
	return h.OpenNow == nil && len(h.Periods) == 0 && len(h.WeekdayText) == 0
}

// HoursPeriod is one open/close span in a weekly schedule.
type HoursPeriod struct {
	Open  *HoursPoint `json:"open,omitempty" bson:"open,omitempty"`
	Close *HoursPoint `json:"close,omitempty" bson:"close,omitempty"`
}

// HoursPoint is a day-of-week plus an HHMM time string, as the API sends it.
type HoursPoint struct {
	Day  int    `json:"day" bson:"day"`
	Time string `json:"time" bson:"time"`
}

// CuratedPlace is a place joined to the curated list that references it.
// When a place belongs to several curated lists only the first list name is
// carried; it is used for reporting, nothing else.
type CuratedPlace struct {
	Place    Place
	ListName string
}

// PlaceUpdate is the partial field set written back by the enrichment
// pipeline. Nil fields are left untouched in the store. The descriptive
// fields are only used when the upsert has to create the row.
type PlaceUpdate struct {
	Name            string
	Address         string
	Latitude        float64
	Longitude       float64
	Phone           *string
	Website         *string
	GoogleRating    *float64
	HoursOpen       *OpeningHours
	PhotoReferences []PhotoReference
}

// IsEmpty reports whether the update would write no enrichable field.
func (u *PlaceUpdate) IsEmpty() bool {
	return u.Phone == nil && u.Website == nil && u.GoogleRating == nil &&
		u.HoursOpen == nil && len(u.PhotoReferences) == 0
}
