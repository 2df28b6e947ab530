package field

import (
	"fmt"

	"github.com/git-rbanerjee/hibernate-orm/clause"
)

// JSONDialect renders path operations against a JSON text column. SQLite
// and MySQL share the json_extract form; PostgreSQL uses the #>> operator.
type JSONDialect interface {
	Extract(column clause.Column, path string) string
}

type jsonExtractDialect struct{}

func (jsonExtractDialect) Extract(column clause.Column, path string) string {
	return fmt.Sprintf("json_extract(%s, '$.%s')", column.ColumnName(), path)
}

type jsonPostgresDialect struct{}

func (jsonPostgresDialect) Extract(column clause.Column, path string) string {
	return fmt.Sprintf("(%s #>> '{%s}')", column.ColumnName(), path)
}

var (
	SQLiteJSON   JSONDialect = jsonExtractDialect{}
	MySQLJSON    JSONDialect = jsonExtractDialect{}
	PostgresJSON JSONDialect = jsonPostgresDialect{}
)

// JSONPath queries inside a serialized JSON column.
type JSONPath struct {
	column  clause.Column
	dialect JSONDialect
}

// NewJSONPath creates a path helper for a JSON column.
func NewJSONPath(name string, dialect JSONDialect, table ...string) JSONPath {
	col := clause.Column{Name: name}
	if len(table) > 0 {
		col.Table = table[0]
	}
	return JSONPath{column: col, dialect: dialect}
}

// Eq is extract(column, path) = value.
func (j JSONPath) Eq(path string, value any) clause.Expression {
	return clause.Expr{SQL: j.dialect.Extract(j.column, path) + " = ?", Vars: []any{value}}
}

// IsNull reports a missing or null path.
func (j JSONPath) IsNull(path string) clause.Expression {
	return clause.Expr{SQL: j.dialect.Extract(j.column, path) + " IS NULL"}
}

// Contains is a LIKE match against the extracted path text.
func (j JSONPath) Contains(path, substr string) clause.Expression {
	return clause.Expr{SQL: j.dialect.Extract(j.column, path) + " LIKE ?", Vars: []any{"%" + substr + "%"}}
}
