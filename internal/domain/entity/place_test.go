package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoEntry_UnmarshalStructured(t *testing.T) {
	var entry PhotoEntry
	err := json.Unmarshal([]byte(`{"photo_reference":"abc","height":100,"width":200,"html_attributions":["x"]}`), &entry)

	require.NoError(t, err)
	assert.False(t, entry.IsLegacy())
	require.NotNil(t, entry.Structured)
	assert.Equal(t, "abc", entry.Structured.PhotoReference)
	assert.Equal(t, 100, entry.Structured.Height)
	assert.Equal(t, 200, entry.Structured.Width)
}

func TestPhotoEntry_UnmarshalLegacyString(t *testing.T) {
	var entry PhotoEntry
	err := json.Unmarshal([]byte(`"bare-reference-token"`), &entry)

	require.NoError(t, err)
	assert.True(t, entry.IsLegacy())
	assert.Equal(t, "bare-reference-token", entry.LegacyRef)
	assert.Nil(t, entry.Structured)
}

func TestPhotoEntry_MixedListDecodes(t *testing.T) {
	// Rows written by the buggy importer mix both shapes.
	var entries []PhotoEntry
	err := json.Unmarshal([]byte(`["legacy", {"photo_reference":"new","height":1,"width":1}]`), &entries)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsLegacy())
	assert.False(t, entries[1].IsLegacy())
}

func TestPhotoEntry_MarshalRoundTrip(t *testing.T) {
	entries := []PhotoEntry{
		{Structured: &PhotoReference{PhotoReference: "new", HTMLAttributions: []string{}}},
		{LegacyRef: "old"},
	}
	raw, err := json.Marshal(entries)
	require.NoError(t, err)

	var decoded []PhotoEntry
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.False(t, decoded[0].IsLegacy())
	assert.True(t, decoded[1].IsLegacy())
}

func TestOpeningHours_IsEmpty(t *testing.T) {
	var nilHours *OpeningHours
	assert.True(t, nilHours.IsEmpty())
	assert.True(t, (&OpeningHours{}).IsEmpty())

	openNow := true
	assert.False(t, (&OpeningHours{OpenNow: &openNow}).IsEmpty())
	assert.False(t, (&OpeningHours{WeekdayText: []string{"Monday: Closed"}}).IsEmpty())
	assert.False(t, (&OpeningHours{Periods: []HoursPeriod{{Open: &HoursPoint{Day: 1, Time: "0900"}}}}).IsEmpty())
}

func TestPlaceUpdate_IsEmpty(t *testing.T) {
	update := &PlaceUpdate{Name: "descriptive fields do not count", Latitude: 1.0}
	assert.True(t, update.IsEmpty())

	phone := "+1 555 0100"
	update.Phone = &phone
	assert.False(t, update.IsEmpty())
}
