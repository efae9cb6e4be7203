package utils

import (
	"encoding/json"

	"placemarks-service/internal/domain/entity"
)

// NormalizePhotos converts raw places API photo payloads into the canonical
// structured shape. It is deliberately permissive: bare reference strings
// (the legacy serialization), objects missing fields, and junk entries all
// map through to best-effort output instead of failing. Empty or absent
// input yields an empty list.
func NormalizePhotos(raw []json.RawMessage) []entity.PhotoReference {
	photos := make([]entity.PhotoReference, 0, len(raw))

	for _, item := range raw {
		var ref string
		if err := json.Unmarshal(item, &ref); err == nil {
			photos = append(photos, entity.PhotoReference{
				PhotoReference:   ref,
				HTMLAttributions: []string{},
			})
			continue
		}

		var fields map[string]interface{}
		if err := json.Unmarshal(item, &fields); err != nil {
			photos = append(photos, entity.PhotoReference{HTMLAttributions: []string{}})
			continue
		}

		photo := entity.PhotoReference{
			HTMLAttributions: []string{},
		}
		if v, ok := fields["photo_reference"].(string); ok {
			photo.PhotoReference = v
		}
		if v, ok := fields["height"].(float64); ok {
			photo.Height = int(v)
		}
		if v, ok := fields["width"].(float64); ok {
			photo.Width = int(v)
		}
		if attrs, ok := fields["html_attributions"].([]interface{}); ok {
			for _, a := range attrs {
				if s, ok := a.(string); ok {
					photo.HTMLAttributions = append(photo.HTMLAttributions, s)
				}
			}
		}
		photos = append(photos, photo)
	}

	return photos
}
