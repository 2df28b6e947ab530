package orm

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// Executor is the subset of database operations shared by a connection
// pool and an open transaction.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// Session owns a database handle, the dialect describing it, and the
// current executor (the pool, or a transaction started from it).
type Session struct {
	db       *sqlx.DB
	executor Executor
	dialect  Dialect
	obs      *ObservabilityConfig
}

// NewSession wraps db in a session for the given dialect. Options attach
// logging, tracing, and metrics; a session without options is silent.
func NewSession(db *sql.DB, dialect Dialect, opts ...SessionOption) *Session {
	xdb := sqlx.NewDb(db, dialect.Name())
	s := &Session{
		db:       xdb,
		executor: xdb,
		dialect:  dialect,
		obs:      defaultObservabilityConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dialect returns the dialect this session was opened with.
func (s *Session) Dialect() Dialect { return s.dialect }

func (s *Session) observe(ctx context.Context, operation, query string, fn func() error) error {
	ctx, span := s.startSpan(ctx, operation)
	defer span.End()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	s.recordMetrics(ctx, operation, elapsed, err)
	s.logQuery(ctx, operation, query, elapsed, err)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *Session) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := s.observe(ctx, "query", query, func() (err error) {
		rows, err = s.executor.QueryContext(ctx, query, args...)
		return err
	})
	return rows, err
}

func (s *Session) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	var row *sql.Row
	_ = s.observe(ctx, "query_row", query, func() error {
		row = s.executor.QueryRowContext(ctx, query, args...)
		// Row errors surface on Scan; the statement itself cannot fail here.
		return nil
	})
	return row
}

func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := s.observe(ctx, "exec", query, func() (err error) {
		res, err = s.executor.ExecContext(ctx, query, args...)
		return err
	})
	return res, err
}

func (s *Session) Select(ctx context.Context, dest any, query string, args ...any) error {
	return s.observe(ctx, "select", query, func() error {
		return s.executor.SelectContext(ctx, dest, query, args...)
	})
}

func (s *Session) Get(ctx context.Context, dest any, query string, args ...any) error {
	return s.observe(ctx, "get", query, func() error {
		return s.executor.GetContext(ctx, dest, query, args...)
	})
}

// Begin starts a transaction and returns a session bound to it. The
// returned session shares the parent's dialect and observability config.
func (s *Session) Begin(ctx context.Context) (*Session, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Session{
		db:       s.db,
		executor: tx,
		dialect:  s.dialect,
		obs:      s.obs,
	}, nil
}

func (s *Session) Commit() error {
	if tx, ok := s.executor.(*sqlx.Tx); ok {
		return tx.Commit()
	}
	return sql.ErrTxDone
}

func (s *Session) Rollback() error {
	if tx, ok := s.executor.(*sqlx.Tx); ok {
		return tx.Rollback()
	}
	return sql.ErrTxDone
}

// Transaction runs fn inside a transaction, committing on nil and rolling
// back on error or panic. Calling it from a session already inside a
// transaction joins the open one instead of nesting.
func (s *Session) Transaction(ctx context.Context, fn func(txSession *Session) error) (err error) {
	if _, ok := s.executor.(*sqlx.Tx); ok {
		return fn(s)
	}

	txSession, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = txSession.Rollback()
			panic(p)
		} else if err != nil {
			_ = txSession.Rollback()
		}
	}()

	err = fn(txSession)
	if err != nil {
		return err
	}

	return txSession.Commit()
}
