package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TicketNumbers is a list of assigned ticket numbers stored as a JSON array
// in a TEXT column.
type TicketNumbers []int

// Value serializes the list for storage
func (t TicketNumbers) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal([]int(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the stored JSON array
func (t *TicketNumbers) Scan(src any) error {
	if src == nil {
		*t = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported ticket numbers column type %T", src)
	}
	if len(data) == 0 {
		*t = nil
		return nil
	}
	return json.Unmarshal(data, (*[]int)(t))
}
