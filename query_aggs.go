package orm

import (
	"context"
	"fmt"
)

// Aggregates. Each runs the builder with a single aggregate projection and
// scans the result into dest, a pointer to a type the driver can produce
// for the column (use sql.Null* when the matching set may be empty).

func (q QueryBuilder[T]) aggregate(ctx context.Context, fn string, column any, dest any) error {
	names, err := ResolveColumnNames(column)
	if err != nil {
		return err
	}
	q.columns = []string{fmt.Sprintf("%s(%s)", fn, names[0])}
	q.orderBys = nil
	sqlStr, args, err := q.ToSQL()
	if err != nil {
		return err
	}
	return q.session.Get(ctx, dest, sqlStr, args...)
}

// Sum computes SUM(column) over matching rows.
func (q QueryBuilder[T]) Sum(ctx context.Context, column any, dest any) error {
	return q.aggregate(ctx, "SUM", column, dest)
}

// Avg computes AVG(column) over matching rows.
func (q QueryBuilder[T]) Avg(ctx context.Context, column any, dest any) error {
	return q.aggregate(ctx, "AVG", column, dest)
}

// Min computes MIN(column) over matching rows. On a zone-less timestamp
// column this is the earliest stored wall clock, which for values written
// through one storage zone is also the earliest instant.
func (q QueryBuilder[T]) Min(ctx context.Context, column any, dest any) error {
	return q.aggregate(ctx, "MIN", column, dest)
}

// Max computes MAX(column) over matching rows.
func (q QueryBuilder[T]) Max(ctx context.Context, column any, dest any) error {
	return q.aggregate(ctx, "MAX", column, dest)
}
