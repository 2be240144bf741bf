package types

import (
	"database/sql/driver"
	"encoding/json"
)

// Video is one lecture recording inside a recorded course.
type Video struct {
	Title        string `json:"title"`
	SectionTitle string `json:"sectionTitle,omitempty"`
	StorageKey   string `json:"storageKey"`
	URL          string `json:"url"`
	// DurationSeconds is reported by the uploader, not probed server-side.
	DurationSeconds int `json:"durationSeconds,omitempty"`
}

// Videos is the ordered lecture list persisted as JSONB.
type Videos []Video

// Value marshals the list into JSON for Postgres.
func (v Videos) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the list.
func (v *Videos) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}

	raw, err := rawJSON("videos", value)
	if err != nil {
		return err
	}

	result := make(Videos, 0)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*v = result
	return nil
}
