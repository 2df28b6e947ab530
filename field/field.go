// Package field provides typed column helpers for building query
// conditions without raw strings. Each helper wraps a clause.Column and
// exposes the comparisons that make sense for its Go type.
package field

import (
	"github.com/git-rbanerjee/hibernate-orm/clause"
)

// Field is the generic typed column. Comparisons accept the column's Go
// type, so mismatched literals fail at compile time.
type Field[T any] struct {
	column clause.Column
}

// New creates a typed field for a column, optionally table-qualified.
func New[T any](name string, table ...string) Field[T] {
	col := clause.Column{Name: name}
	if len(table) > 0 {
		col.Table = table[0]
	}
	return Field[T]{column: col}
}

// Column returns the underlying column reference.
func (f Field[T]) Column() clause.Column { return f.column }

// ColumnName implements clause.Columnar.
func (f Field[T]) ColumnName() string { return f.column.ColumnName() }

// Eq is field = value.
func (f Field[T]) Eq(value T) clause.Expression {
	return clause.Eq{Column: f.column, Value: value}
}

// Neq is field <> value.
func (f Field[T]) Neq(value T) clause.Expression {
	return clause.Neq{Column: f.column, Value: value}
}

// In is field IN (values...).
func (f Field[T]) In(values ...T) clause.Expression {
	anyValues := make([]any, len(values))
	for i, v := range values {
		anyValues[i] = v
	}
	return clause.IN{Column: f.column, Values: anyValues}
}

// NotIn is NOT (field IN (values...)).
func (f Field[T]) NotIn(values ...T) clause.Expression {
	return clause.Not{Expr: f.In(values...)}
}

// IsNull is field IS NULL.
func (f Field[T]) IsNull() clause.Expression {
	return clause.IsNull{Column: f.column}
}

// IsNotNull is field IS NOT NULL.
func (f Field[T]) IsNotNull() clause.Expression {
	return clause.IsNotNull{Column: f.column}
}

// Set builds an assignment for UPDATE.
func (f Field[T]) Set(value T) clause.Assignment {
	return clause.Assignment{Column: f.column, Value: value}
}

// Asc orders by the field ascending.
func (f Field[T]) Asc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: f.column}
}

// Desc orders by the field descending.
func (f Field[T]) Desc() clause.OrderByColumn {
	return clause.OrderByColumn{Column: f.column, Desc: true}
}
