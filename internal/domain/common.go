package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coordinates is an ordered point list stored as a JSONB array.
type Coordinates []Coordinate

func (c Coordinates) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]Coordinate(c))
	if err != nil {
		return nil, fmt.Errorf("marshal coordinates: %w", err)
	}
	return string(data), nil
}

func (c *Coordinates) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*c = Coordinates{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported coordinates type %T", src)
	}

	var points []Coordinate
	if err := json.Unmarshal(data, &points); err != nil {
		return fmt.Errorf("unmarshal coordinates: %w", err)
	}
	*c = points
	return nil
}

// Clone returns an independent copy, used for trip snapshots.
func (c Coordinates) Clone() Coordinates {
	if c == nil {
		return Coordinates{}
	}
	out := make(Coordinates, len(c))
	copy(out, c)
	return out
}

// First returns the origin of the sequence.
func (c Coordinates) First() Coordinate {
	return c[0]
}

// Last returns the destination of the sequence.
func (c Coordinates) Last() Coordinate {
	return c[len(c)-1]
}

// Interior returns the points between origin and destination, in order.
func (c Coordinates) Interior() Coordinates {
	if len(c) <= 2 {
		return Coordinates{}
	}
	return c[1 : len(c)-1]
}
