package types

import (
	"database/sql/driver"
	"encoding/json"
)

// AnchorLink is one labeled URL inside a notification body.
type AnchorLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// AnchorLinks is an ordered list of labeled links persisted as JSONB.
type AnchorLinks []AnchorLink

// Value marshals the list into JSON for Postgres.
func (a AnchorLinks) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the list.
func (a *AnchorLinks) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	raw, err := rawJSON("anchor links", value)
	if err != nil {
		return err
	}

	result := make(AnchorLinks, 0)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*a = result
	return nil
}
