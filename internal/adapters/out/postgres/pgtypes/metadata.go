// Package pgtypes holds column types shared by the postgres repositories.
package pgtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"ordermanager/internal/core/domain/model/kernel"
)

// Metadata stores kernel.Metadata in a jsonb column. A NULL column scans into
// an empty document.
type Metadata kernel.Metadata

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(m))
}

func (m *Metadata) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("pgtypes: cannot scan %T into Metadata", src)
	}

	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("pgtypes: invalid metadata document: %w", err)
	}
	*m = doc
	return nil
}

// GormDataType makes AutoMigrate create a jsonb column.
func (Metadata) GormDataType() string {
	return "jsonb"
}
