package orm

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/git-rbanerjee/hibernate-orm/clause"
)

// Repository provides CRUD for one model type over a session. It is a
// thin stateless wrapper; a repository is safe to share across goroutines
// as long as its session is.
type Repository[T any] struct {
	session *Session
	schema  Schema[T]
}

// NewRepository creates a repository for T. T must have been registered
// with RegisterSchema.
func NewRepository[T any](session *Session) *Repository[T] {
	return &Repository[T]{
		session: session,
		schema:  LoadSchema[T](),
	}
}

// Query starts a select builder scoped to this repository's model.
func (r *Repository[T]) Query() QueryBuilder[T] {
	return Query[T](r.session)
}

// Where is shorthand for Query().Where(exprs...).
func (r *Repository[T]) Where(exprs ...clause.Expression) QueryBuilder[T] {
	return r.Query().Where(exprs...)
}

// FindByPK fetches the row whose primary key equals the key set on m.
func (r *Repository[T]) FindByPK(ctx context.Context, m *T) (*T, error) {
	pk := r.schema.PK(m)
	return r.Query().Where(pk).Take(ctx)
}

// Create inserts m, running its create hooks and backfilling an
// auto-increment key.
func (r *Repository[T]) Create(ctx context.Context, m *T) error {
	if err := triggerBeforeCreate(ctx, m); err != nil {
		return err
	}

	columns, values := r.schema.InsertRow(m)
	sqlStr, args, err := sq.Insert(r.schema.TableName()).
		Columns(columns...).
		Values(values...).
		PlaceholderFormat(r.session.dialect.PlaceholderFormat()).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.session.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if r.schema.AutoIncrement() {
		if id, err := res.LastInsertId(); err == nil {
			r.schema.SetPK(m, id)
		}
	}

	return triggerAfterCreate(ctx, m)
}

// BatchCreate inserts models in a single multi-row statement. Hooks run
// per model; auto-increment keys are not backfilled.
func (r *Repository[T]) BatchCreate(ctx context.Context, models []*T) error {
	if len(models) == 0 {
		return nil
	}

	for _, m := range models {
		if err := triggerBeforeCreate(ctx, m); err != nil {
			return err
		}
	}

	columns, values := r.schema.InsertRow(models[0])
	b := sq.Insert(r.schema.TableName()).
		Columns(columns...).
		Values(values...).
		PlaceholderFormat(r.session.dialect.PlaceholderFormat())
	for _, m := range models[1:] {
		cols, vals := r.schema.InsertRow(m)
		if len(cols) != len(columns) {
			return errors.New("orm: batch rows must write the same columns")
		}
		b = b.Values(vals...)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.session.Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	for _, m := range models {
		if err := triggerAfterCreate(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// UpsertOption tunes Upsert's conflict handling.
type UpsertOption func(*upsertConfig)

type upsertConfig struct {
	conflictCols []string
	updateCols   []string
}

// OnConflict names the conflict target columns. Defaults to the primary
// key column.
func OnConflict(columns ...any) UpsertOption {
	return func(c *upsertConfig) {
		names, err := ResolveColumnNames(columns...)
		if err != nil {
			panic(err)
		}
		c.conflictCols = names
	}
}

// DoUpdate names the columns rewritten on conflict. Defaults to every
// inserted non-key column.
func DoUpdate(columns ...any) UpsertOption {
	return func(c *upsertConfig) {
		names, err := ResolveColumnNames(columns...)
		if err != nil {
			panic(err)
		}
		c.updateCols = names
	}
}

// Upsert inserts m, updating the existing row on key conflict using the
// dialect's native upsert syntax.
func (r *Repository[T]) Upsert(ctx context.Context, m *T, opts ...UpsertOption) error {
	if err := triggerBeforeCreate(ctx, m); err != nil {
		return err
	}

	columns, values := r.schema.InsertRow(m)
	pkCol := r.schema.PK(nil).Column.Name

	cfg := upsertConfig{conflictCols: []string{pkCol}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.updateCols == nil {
		for _, col := range columns {
			if col != pkCol {
				cfg.updateCols = append(cfg.updateCols, col)
			}
		}
	}

	suffix := r.session.dialect.UpsertClause(r.schema.TableName(), cfg.conflictCols, cfg.updateCols)
	b := sq.Insert(r.schema.TableName()).
		Columns(columns...).
		Values(values...).
		PlaceholderFormat(r.session.dialect.PlaceholderFormat())
	if suffix != "" {
		b = b.Suffix(suffix)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.session.Exec(ctx, sqlStr, args...); err != nil {
		return err
	}
	return triggerAfterCreate(ctx, m)
}

// Update writes every updatable column of m back to its row, keyed by
// primary key. Returns the number of rows updated.
func (r *Repository[T]) Update(ctx context.Context, m *T) (int64, error) {
	if err := triggerBeforeUpdate(ctx, m); err != nil {
		return 0, err
	}

	pk := r.schema.PK(m)
	n, err := r.updateWhere(ctx, r.schema.UpdateMap(m), pk)
	if err != nil {
		return 0, err
	}
	return n, triggerAfterUpdate(ctx, m)
}

// UpdateColumns applies the given assignments to all rows matching exprs,
// bypassing update hooks.
func (r *Repository[T]) UpdateColumns(ctx context.Context, assignments []clause.Assignment, exprs ...clause.Expression) (int64, error) {
	values := make(map[string]any, len(assignments))
	for _, a := range assignments {
		values[a.Column.ColumnName()] = a.Value
	}
	return r.updateWhere(ctx, values, clause.And(exprs))
}

func (r *Repository[T]) updateWhere(ctx context.Context, values map[string]any, where clause.Expression) (int64, error) {
	if len(values) == 0 {
		return 0, errors.New("orm: no columns to update")
	}

	whereSQL, whereArgs, err := where.Build()
	if err != nil {
		return 0, err
	}

	sqlStr, args, err := sq.Update(r.schema.TableName()).
		SetMap(values).
		Where(sq.Expr(whereSQL, whereArgs...)).
		PlaceholderFormat(r.session.dialect.PlaceholderFormat()).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.session.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes rows matching exprs. On a soft-delete model the rows are
// marked instead of removed; Unscoped queries still see them.
func (r *Repository[T]) Delete(ctx context.Context, exprs ...clause.Expression) (int64, error) {
	where := clause.And(exprs)

	if col := r.schema.SoftDeleteColumn(); col != "" {
		return r.updateWhere(ctx, map[string]any{col: r.schema.SoftDeleteValue()}, where)
	}

	whereSQL, whereArgs, err := where.Build()
	if err != nil {
		return 0, err
	}
	sqlStr, args, err := sq.Delete(r.schema.TableName()).
		Where(sq.Expr(whereSQL, whereArgs...)).
		PlaceholderFormat(r.session.dialect.PlaceholderFormat()).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.session.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteModel deletes m's row by primary key, running delete hooks and,
// on soft-delete models, stamping the deletion marker on m as well.
func (r *Repository[T]) DeleteModel(ctx context.Context, m *T) (int64, error) {
	if err := triggerBeforeDelete(ctx, m); err != nil {
		return 0, err
	}

	n, err := r.Delete(ctx, r.schema.PK(m))
	if err != nil {
		return 0, err
	}
	if r.schema.SoftDeleteColumn() != "" {
		r.schema.SetDeletedAt(m)
	}
	return n, triggerAfterDelete(ctx, m)
}

// Restore clears the soft-delete marker on rows matching exprs.
func (r *Repository[T]) Restore(ctx context.Context, exprs ...clause.Expression) (int64, error) {
	col := r.schema.SoftDeleteColumn()
	if col == "" {
		return 0, errors.New("orm: model does not soft-delete")
	}
	return r.updateWhere(ctx, map[string]any{col: nil}, clause.And(exprs))
}

// FirstOrCreate returns the first row matching exprs, inserting m when no
// row matches.
func (r *Repository[T]) FirstOrCreate(ctx context.Context, m *T, exprs ...clause.Expression) (*T, error) {
	found, err := r.Query().Where(exprs...).First(ctx)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err := r.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
