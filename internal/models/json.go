package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON is a generic JSON column type.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// GetString reads a string field from the JSON payload.
func (j JSON) GetString(key string) (string, bool) {
	if j == nil {
		return "", false
	}
	raw, ok := j[key]
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	return value, ok
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("unsupported JSON column type")
	}
}
