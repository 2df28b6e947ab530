package orm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/git-rbanerjee/hibernate-orm/clause"
)

// ErrNotFound is returned by single-row queries when no row matched.
var ErrNotFound = errors.New("orm: record not found")

// QueryBuilder assembles and runs SELECT statements for one model type.
// Builders are immutable: every method returns a copy, so a partially
// built query can be branched safely.
type QueryBuilder[T any] struct {
	session  *Session
	schema   Schema[T]
	columns  []string
	wheres   []clause.Expression
	orderBys []clause.OrderByColumn
	groupBys []string
	having   []clause.Expression
	joins    []joinClause
	limit    uint64
	offset   uint64
	hasLimit bool
	unscoped bool
}

type joinClause struct {
	kind  string
	table string
	on    clause.Expression
}

// Query starts a builder for T on the given session.
func Query[T any](session *Session) QueryBuilder[T] {
	return QueryBuilder[T]{
		session: session,
		schema:  LoadSchema[T](),
	}
}

// Select restricts the queried columns. Columns may be strings or typed
// fields.
func (q QueryBuilder[T]) Select(columns ...any) QueryBuilder[T] {
	names, err := ResolveColumnNames(columns...)
	if err != nil {
		panic(err)
	}
	q.columns = names
	return q
}

// Where appends conditions, combined with AND.
func (q QueryBuilder[T]) Where(exprs ...clause.Expression) QueryBuilder[T] {
	q.wheres = append(q.wheres[:len(q.wheres):len(q.wheres)], exprs...)
	return q
}

// OrderBy appends ORDER BY terms.
func (q QueryBuilder[T]) OrderBy(orders ...clause.OrderByColumn) QueryBuilder[T] {
	q.orderBys = append(q.orderBys[:len(q.orderBys):len(q.orderBys)], orders...)
	return q
}

// GroupBy appends GROUP BY columns.
func (q QueryBuilder[T]) GroupBy(columns ...any) QueryBuilder[T] {
	names, err := ResolveColumnNames(columns...)
	if err != nil {
		panic(err)
	}
	q.groupBys = append(q.groupBys[:len(q.groupBys):len(q.groupBys)], names...)
	return q
}

// Having appends HAVING conditions, combined with AND.
func (q QueryBuilder[T]) Having(exprs ...clause.Expression) QueryBuilder[T] {
	q.having = append(q.having[:len(q.having):len(q.having)], exprs...)
	return q
}

// Join adds an INNER JOIN.
func (q QueryBuilder[T]) Join(table string, on clause.Expression) QueryBuilder[T] {
	q.joins = append(q.joins[:len(q.joins):len(q.joins)], joinClause{kind: "JOIN", table: table, on: on})
	return q
}

// LeftJoin adds a LEFT JOIN.
func (q QueryBuilder[T]) LeftJoin(table string, on clause.Expression) QueryBuilder[T] {
	q.joins = append(q.joins[:len(q.joins):len(q.joins)], joinClause{kind: "LEFT JOIN", table: table, on: on})
	return q
}

// Limit caps the row count.
func (q QueryBuilder[T]) Limit(n uint64) QueryBuilder[T] {
	q.limit = n
	q.hasLimit = true
	return q
}

// Offset skips the first n rows.
func (q QueryBuilder[T]) Offset(n uint64) QueryBuilder[T] {
	q.offset = n
	return q
}

// Unscoped disables the soft-delete filter, so deleted rows are visible.
func (q QueryBuilder[T]) Unscoped() QueryBuilder[T] {
	q.unscoped = true
	return q
}

func (q QueryBuilder[T]) selectColumns() []string {
	if len(q.columns) > 0 {
		return q.columns
	}
	return q.schema.SelectColumns()
}

func (q QueryBuilder[T]) builder() (sq.SelectBuilder, error) {
	b := sq.Select(q.selectColumns()...).
		From(q.schema.TableName()).
		PlaceholderFormat(q.session.dialect.PlaceholderFormat())

	for _, j := range q.joins {
		onSQL, onArgs, err := j.on.Build()
		if err != nil {
			return b, err
		}
		b = b.JoinClause(fmt.Sprintf("%s %s ON %s", j.kind, j.table, onSQL), onArgs...)
	}

	wheres := q.wheres
	if col := q.schema.SoftDeleteColumn(); col != "" && !q.unscoped {
		wheres = append(wheres[:len(wheres):len(wheres)], clause.IsNull{Column: clause.Column{Name: col}})
	}
	for _, expr := range wheres {
		sqlStr, args, err := expr.Build()
		if err != nil {
			return b, err
		}
		b = b.Where(sq.Expr(sqlStr, args...))
	}

	if len(q.groupBys) > 0 {
		b = b.GroupBy(q.groupBys...)
	}
	for _, h := range q.having {
		sqlStr, args, err := h.Build()
		if err != nil {
			return b, err
		}
		b = b.Having(sq.Expr(sqlStr, args...))
	}
	for _, o := range q.orderBys {
		sqlStr, _, err := o.Build()
		if err != nil {
			return b, err
		}
		b = b.OrderBy(sqlStr)
	}
	if q.hasLimit {
		b = b.Limit(q.limit)
	}
	if q.offset > 0 {
		b = b.Offset(q.offset)
	}
	return b, nil
}

// ToSQL renders the query without running it.
func (q QueryBuilder[T]) ToSQL() (string, []any, error) {
	b, err := q.builder()
	if err != nil {
		return "", nil, err
	}
	return b.ToSql()
}

// Find returns all matching rows.
func (q QueryBuilder[T]) Find(ctx context.Context) ([]T, error) {
	sqlStr, args, err := q.ToSQL()
	if err != nil {
		return nil, err
	}
	var models []T
	if err := q.session.Select(ctx, &models, sqlStr, args...); err != nil {
		return nil, err
	}
	return models, nil
}

// Take returns one matching row with no implied ordering, or ErrNotFound.
func (q QueryBuilder[T]) Take(ctx context.Context) (*T, error) {
	sqlStr, args, err := q.Limit(1).ToSQL()
	if err != nil {
		return nil, err
	}
	var model T
	if err := q.session.Get(ctx, &model, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}

// First returns the matching row with the smallest primary key.
func (q QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	pk := q.schema.PK(nil)
	return q.OrderBy(clause.OrderByColumn{Column: pk.Column}).Take(ctx)
}

// Last returns the matching row with the largest primary key.
func (q QueryBuilder[T]) Last(ctx context.Context) (*T, error) {
	pk := q.schema.PK(nil)
	return q.OrderBy(clause.OrderByColumn{Column: pk.Column, Desc: true}).Take(ctx)
}

// Count returns the number of matching rows.
func (q QueryBuilder[T]) Count(ctx context.Context) (int64, error) {
	q.columns = []string{"COUNT(*)"}
	q.orderBys = nil
	sqlStr, args, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := q.session.Get(ctx, &count, sqlStr, args...); err != nil {
		return 0, err
	}
	return count, nil
}

// Pluck reads a single column from all matching rows into dest, which must
// be a pointer to a slice of the column's Go type.
func (q QueryBuilder[T]) Pluck(ctx context.Context, column any, dest any) error {
	names, err := ResolveColumnNames(column)
	if err != nil {
		return err
	}
	q.columns = names
	sqlStr, args, err := q.ToSQL()
	if err != nil {
		return err
	}
	return q.session.Select(ctx, dest, sqlStr, args...)
}

// Scan runs the query and scans rows into dest, a pointer to a slice of
// any sqlx-scannable struct. It is the escape hatch for joined projections
// that do not map to T.
func (q QueryBuilder[T]) Scan(ctx context.Context, dest any) error {
	sqlStr, args, err := q.ToSQL()
	if err != nil {
		return err
	}
	return q.session.Select(ctx, dest, sqlStr, args...)
}

// Chunk pages through matching rows in batches of size, invoking fn per
// batch ordered by primary key. fn returning an error stops the walk.
func (q QueryBuilder[T]) Chunk(ctx context.Context, size uint64, fn func(models []T) error) error {
	if size == 0 {
		return errors.New("orm: chunk size must be positive")
	}

	pk := q.schema.PK(nil)
	base := q.OrderBy(clause.OrderByColumn{Column: pk.Column}).Limit(size)
	for page := uint64(0); ; page++ {
		models, err := base.Offset(page * size).Find(ctx)
		if err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		if err := fn(models); err != nil {
			return err
		}
		if uint64(len(models)) < size {
			return nil
		}
	}
}

// subquery renders this builder as an expression usable inside IN or
// EXISTS conditions of another query.
func (q QueryBuilder[T]) subquery() clause.Expression {
	// Subqueries always render with ? placeholders; the outer builder
	// rewrites them for the dialect.
	inner := q
	inner.session = &Session{dialect: questionDialect{inner.session.dialect}, obs: inner.session.obs}
	sqlStr, args, err := inner.ToSQL()
	if err != nil {
		return errExpr{err}
	}
	return clause.Expr{SQL: sqlStr, Vars: args}
}

type errExpr struct{ err error }

func (e errExpr) Build() (string, []any, error) { return "", nil, e.err }

// questionDialect forces ? placeholders while delegating everything else.
type questionDialect struct{ Dialect }

func (questionDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Question }

// InSubquery is column IN (SELECT ...).
func InSubquery[T any](column clause.Columnar, sub QueryBuilder[T]) clause.Expression {
	return clause.InExpr{Column: clause.Column{Name: column.ColumnName()}, Expr: sub.subquery()}
}

// NotInSubquery is column NOT IN (SELECT ...).
func NotInSubquery[T any](column clause.Columnar, sub QueryBuilder[T]) clause.Expression {
	return clause.NotInExpr{Column: clause.Column{Name: column.ColumnName()}, Expr: sub.subquery()}
}

// Exists is EXISTS (SELECT ...).
func Exists[T any](sub QueryBuilder[T]) clause.Expression {
	return clause.ExistsExpr{Expr: sub.subquery()}
}

// NotExists is NOT EXISTS (SELECT ...).
func NotExists[T any](sub QueryBuilder[T]) clause.Expression {
	return clause.NotExistsExpr{Expr: sub.subquery()}
}
