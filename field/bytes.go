package field

// Bytes is a blob column.
type Bytes struct {
	Field[[]byte]
}

// NewBytes creates a blob field for a column.
func NewBytes(name string, table ...string) Bytes {
	return Bytes{Field: New[[]byte](name, table...)}
}
