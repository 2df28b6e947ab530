package field

import (
	"golang.org/x/exp/constraints"

	"github.com/git-rbanerjee/hibernate-orm/clause"
)

// Number is an ordered numeric column.
type Number[T constraints.Integer | constraints.Float] struct {
	Field[T]
}

// NewNumber creates a numeric field for a column.
func NewNumber[T constraints.Integer | constraints.Float](name string, table ...string) Number[T] {
	return Number[T]{Field: New[T](name, table...)}
}

// Gt is field > value.
func (n Number[T]) Gt(value T) clause.Expression {
	return clause.Gt{Column: n.column, Value: value}
}

// Gte is field >= value.
func (n Number[T]) Gte(value T) clause.Expression {
	return clause.Gte{Column: n.column, Value: value}
}

// Lt is field < value.
func (n Number[T]) Lt(value T) clause.Expression {
	return clause.Lt{Column: n.column, Value: value}
}

// Lte is field <= value.
func (n Number[T]) Lte(value T) clause.Expression {
	return clause.Lte{Column: n.column, Value: value}
}

// Between is field BETWEEN min AND max.
func (n Number[T]) Between(min, max T) clause.Expression {
	return clause.Between{Column: n.column, Min: min, Max: max}
}
