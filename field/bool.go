package field

import "github.com/git-rbanerjee/hibernate-orm/clause"

// Bool is a boolean column.
type Bool struct {
	Field[bool]
}

// NewBool creates a boolean field for a column.
func NewBool(name string, table ...string) Bool {
	return Bool{Field: New[bool](name, table...)}
}

// IsTrue is field = true.
func (b Bool) IsTrue() clause.Expression {
	return clause.Eq{Column: b.column, Value: true}
}

// IsFalse is field = false.
func (b Bool) IsFalse() clause.Expression {
	return clause.Eq{Column: b.column, Value: false}
}
