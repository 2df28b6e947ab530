package field

import (
	"time"

	"github.com/git-rbanerjee/hibernate-orm/clause"
	"github.com/git-rbanerjee/hibernate-orm/temporal"
)

// Temporal is a date-time column. It works for any Go type the driver can
// bind as a timestamp value.
type Temporal[T any] struct {
	Field[T]
}

// Time is a plain time.Time column.
type Time = Temporal[time.Time]

// OffsetTime is an offset date-time column. Comparisons match by stored
// instant: two values with different offsets but the same instant bind to
// identical column text.
type OffsetTime = Temporal[temporal.OffsetDateTime]

// NewTime creates a time.Time field for a column.
func NewTime(name string, table ...string) Time {
	return Time{Field: New[time.Time](name, table...)}
}

// NewOffsetTime creates an offset date-time field for a column.
func NewOffsetTime(name string, table ...string) OffsetTime {
	return OffsetTime{Field: New[temporal.OffsetDateTime](name, table...)}
}

// Before is field < value.
func (t Temporal[T]) Before(value T) clause.Expression {
	return clause.Lt{Column: t.column, Value: value}
}

// After is field > value.
func (t Temporal[T]) After(value T) clause.Expression {
	return clause.Gt{Column: t.column, Value: value}
}

// OnOrBefore is field <= value.
func (t Temporal[T]) OnOrBefore(value T) clause.Expression {
	return clause.Lte{Column: t.column, Value: value}
}

// OnOrAfter is field >= value.
func (t Temporal[T]) OnOrAfter(value T) clause.Expression {
	return clause.Gte{Column: t.column, Value: value}
}

// Between is field BETWEEN from AND to.
func (t Temporal[T]) Between(from, to T) clause.Expression {
	return clause.Between{Column: t.column, Min: from, Max: to}
}
