package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Track is a song reference attached to a profile slot or a poke.
// It is persisted as a JSON column.
type Track struct {
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	URI      string `json:"uri,omitempty"`
	CoverArt string `json:"cover_art,omitempty"`
}

// IsZero reports whether the track carries no data at all.
func (t Track) IsZero() bool {
	return t.Name == "" && t.Artist == "" && t.URI == "" && t.CoverArt == ""
}

// Value implements driver.Valuer so Track can be stored as a JSON column.
func (t Track) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner so Track can be read back from a JSON column.
func (t *Track) Scan(value interface{}) error {
	if value == nil {
		*t = Track{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into Track", value)
	}
}
