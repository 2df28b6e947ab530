package orm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON maps any serializable Go value to a TEXT column. Like the temporal
// mapping it is a value-type adapter: the column never learns the Go type,
// only its serialized form.
type JSON[T any] struct {
	Data T
}

// NewJSON wraps data for storage.
func NewJSON[T any](data T) JSON[T] {
	return JSON[T]{Data: data}
}

// Value implements driver.Valuer.
func (j JSON[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Data)
	if err != nil {
		return nil, fmt.Errorf("orm: marshal json column: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (j *JSON[T]) Scan(src any) error {
	if src == nil {
		var zero T
		j.Data = zero
		return nil
	}

	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("orm: cannot scan %T into JSON column", src)
	}
	if err := json.Unmarshal(b, &j.Data); err != nil {
		return fmt.Errorf("orm: unmarshal json column: %w", err)
	}
	return nil
}
