package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ImageRef points at an uploaded object plus its public URL, persisted as JSONB.
type ImageRef struct {
	StorageKey string `json:"storageKey"`
	URL        string `json:"url"`
}

// Value marshals the ref into JSON for Postgres.
func (i ImageRef) Value() (driver.Value, error) {
	buf, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the ref.
func (i *ImageRef) Scan(value interface{}) error {
	if value == nil {
		*i = ImageRef{}
		return nil
	}

	raw, err := rawJSON("image ref", value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, i)
}

// IsZero reports whether the ref holds no object.
func (i ImageRef) IsZero() bool {
	return i.StorageKey == "" && i.URL == ""
}

func rawJSON(label string, value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: unsupported scan type %T", label, value)
	}
}
