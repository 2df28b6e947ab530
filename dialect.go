package orm

// The mapper supports MySQL, PostgreSQL, and SQLite. The differences that
// matter here are placeholder style, upsert syntax, and the declared type
// of the zone-less timestamp column that temporal values are stored in.

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var (
	SQLite     = SQLiteDialect{}
	MySQL      = MySQLDialect{}
	PostgreSQL = PostgreSQLDialect{}
)

// Dialect abstracts database-specific SQL features.
type Dialect interface {
	// Name is the driver name ("mysql", "postgres", "sqlite3"), also
	// used by sqlx to pick bind conventions.
	Name() string

	// PlaceholderFormat selects the squirrel placeholder style.
	PlaceholderFormat() sq.PlaceholderFormat

	// UpsertClause renders the dialect's insert-or-update suffix for the
	// given conflict and update columns.
	UpsertClause(tableName string, conflictCols, updateCols []string) string

	// DateTimeType is the column type for zone-less wall-clock
	// timestamps, the representation temporal.OffsetDateTime maps to.
	DateTimeType() string
}

// buildOnConflictUpsert renders ON CONFLICT ... DO UPDATE SET for the
// dialects that support it. excludedRef names the proposed-row table
// ("EXCLUDED" on PostgreSQL, "excluded" on SQLite). Empty updateCols
// degrade to DO NOTHING.
func buildOnConflictUpsert(conflictCols, updateCols []string, excludedRef string) string {
	if len(conflictCols) == 0 {
		return ""
	}

	target := strings.Join(conflictCols, ", ")
	if len(updateCols) == 0 {
		return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", target)
	}

	updates := make([]string, len(updateCols))
	for i, col := range updateCols {
		updates[i] = fmt.Sprintf("%s=%s.%s", col, excludedRef, col)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", target, strings.Join(updates, ", "))
}

// MySQLDialect targets MySQL 5.7+.
type MySQLDialect struct{}

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Question }

// UpsertClause renders ON DUPLICATE KEY UPDATE. MySQL detects the conflict
// target itself, so conflictCols is ignored; with no update columns there
// is no DO NOTHING equivalent and the suffix is empty.
func (MySQLDialect) UpsertClause(tableName string, conflictCols, updateCols []string) string {
	if len(updateCols) == 0 {
		return ""
	}
	updates := make([]string, len(updateCols))
	for i, col := range updateCols {
		updates[i] = fmt.Sprintf("%s=VALUES(%s)", col, col)
	}
	return "ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
}

// DateTimeType uses microsecond precision, the finest MySQL offers.
// Sub-microsecond fractions are truncated by the server.
func (MySQLDialect) DateTimeType() string { return "DATETIME(6)" }

// PostgreSQLDialect targets PostgreSQL 12+.
type PostgreSQLDialect struct{}

func (PostgreSQLDialect) Name() string { return "postgres" }

func (PostgreSQLDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Dollar }

func (PostgreSQLDialect) UpsertClause(tableName string, conflictCols, updateCols []string) string {
	return buildOnConflictUpsert(conflictCols, updateCols, "EXCLUDED")
}

// DateTimeType deliberately selects TIMESTAMP WITHOUT TIME ZONE: the
// mapping under test stores wall clocks, not instants.
func (PostgreSQLDialect) DateTimeType() string { return "TIMESTAMP(6) WITHOUT TIME ZONE" }

// SQLiteDialect targets SQLite 3.24+ (the first release with UPSERT).
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite3" }

func (SQLiteDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Question }

func (SQLiteDialect) UpsertClause(tableName string, conflictCols, updateCols []string) string {
	// SQLite spells the proposed-row reference in lowercase.
	return buildOnConflictUpsert(conflictCols, updateCols, "excluded")
}

// DateTimeType is DATETIME, which in SQLite is TEXT affinity; values keep
// full nanosecond precision as stored text.
func (SQLiteDialect) DateTimeType() string { return "DATETIME" }
