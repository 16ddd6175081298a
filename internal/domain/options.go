package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OptionMap holds an item's selected options keyed by option category
// (e.g. "milk", "size"). Stores have persisted it as a JSON text column,
// as a double-encoded JSON string, and as structured data, depending on
// backend vintage; decoding is centralized here and is idempotent so all
// three shapes come out the same.
type OptionMap map[string]string

func (m *OptionMap) UnmarshalJSON(data []byte) error {
	var plain map[string]string
	if err := json.Unmarshal(data, &plain); err == nil {
		*m = plain
		return nil
	}

	// Legacy rows wrapped the encoded object in a JSON string.
	var inner string
	if err := json.Unmarshal(data, &inner); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	return m.decodeText(inner)
}

func (m *OptionMap) decodeText(text string) error {
	if text == "" {
		*m = nil
		return nil
	}
	var plain map[string]string
	if err := json.Unmarshal([]byte(text), &plain); err != nil {
		return fmt.Errorf("decode options text %q: %w", text, err)
	}
	*m = plain
	return nil
}

// Scan implements sql.Scanner so relational stores can select the raw
// options column directly.
func (m *OptionMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return m.UnmarshalJSON(v)
	case string:
		return m.decodeText(v)
	default:
		return fmt.Errorf("decode options: unsupported type %T", src)
	}
}

// Value implements driver.Valuer; options persist as encoded JSON text.
func (m OptionMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
