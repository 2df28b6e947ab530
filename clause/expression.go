// Package clause provides the SQL expression tree shared by the query
// builder and the typed field helpers. Expressions render themselves to a
// SQL fragment with ?-style placeholders; the builder rewrites placeholders
// for the session's dialect.
package clause

import (
	"fmt"
	"strings"
)

// Columnar is anything that can name a column.
type Columnar interface {
	ColumnName() string
}

// Column is a column reference with an optional table qualifier.
type Column struct {
	Table string
	Name  string
}

func (c Column) Column() Column { return c }

// ColumnName returns the column name, table-qualified when a table is set.
func (c Column) ColumnName() string {
	if c.Table != "" {
		return c.Table + "." + c.Name
	}
	return c.Name
}

var _ Columnar = Column{}

// Expression is a renderable SQL condition.
type Expression interface {
	Build() (sql string, args []any, err error)
}

// Eq is column = value. The value may be a driver.Valuer; notably, binding
// an offset date-time compares stored instants because equal instants
// normalize to identical column text.
type Eq struct {
	Column Column
	Value  any
}

func (e Eq) Build() (string, []any, error) {
	return e.Column.ColumnName() + " = ?", []any{e.Value}, nil
}

// Neq is column <> value.
type Neq struct {
	Column Column
	Value  any
}

func (n Neq) Build() (string, []any, error) {
	return n.Column.ColumnName() + " <> ?", []any{n.Value}, nil
}

// Gt is column > value.
type Gt struct {
	Column Column
	Value  any
}

func (g Gt) Build() (string, []any, error) {
	return g.Column.ColumnName() + " > ?", []any{g.Value}, nil
}

// Gte is column >= value.
type Gte struct {
	Column Column
	Value  any
}

func (g Gte) Build() (string, []any, error) {
	return g.Column.ColumnName() + " >= ?", []any{g.Value}, nil
}

// Lt is column < value.
type Lt struct {
	Column Column
	Value  any
}

func (l Lt) Build() (string, []any, error) {
	return l.Column.ColumnName() + " < ?", []any{l.Value}, nil
}

// Lte is column <= value.
type Lte struct {
	Column Column
	Value  any
}

func (l Lte) Build() (string, []any, error) {
	return l.Column.ColumnName() + " <= ?", []any{l.Value}, nil
}

// Like is column LIKE pattern.
type Like struct {
	Column Column
	Value  string
}

func (l Like) Build() (string, []any, error) {
	return l.Column.ColumnName() + " LIKE ?", []any{l.Value}, nil
}

// NotLike is column NOT LIKE pattern.
type NotLike struct {
	Column Column
	Value  string
}

func (n NotLike) Build() (string, []any, error) {
	return n.Column.ColumnName() + " NOT LIKE ?", []any{n.Value}, nil
}

// IsNull is column IS NULL.
type IsNull struct {
	Column Column
}

func (i IsNull) Build() (string, []any, error) {
	return i.Column.ColumnName() + " IS NULL", nil, nil
}

// IsNotNull is column IS NOT NULL.
type IsNotNull struct {
	Column Column
}

func (i IsNotNull) Build() (string, []any, error) {
	return i.Column.ColumnName() + " IS NOT NULL", nil, nil
}

// IN is column IN (values...). An empty list renders to a constant false.
type IN struct {
	Column Column
	Values []any
}

func (i IN) Build() (string, []any, error) {
	switch len(i.Values) {
	case 0:
		return "1 = 0", nil, nil
	case 1:
		return i.Column.ColumnName() + " = ?", []any{i.Values[0]}, nil
	default:
		placeholders := make([]string, len(i.Values))
		for idx := range i.Values {
			placeholders[idx] = "?"
		}
		return fmt.Sprintf("%s IN (%s)", i.Column.ColumnName(), strings.Join(placeholders, ", ")), i.Values, nil
	}
}

// Between is column BETWEEN min AND max.
type Between struct {
	Column Column
	Min    any
	Max    any
}

func (b Between) Build() (string, []any, error) {
	return fmt.Sprintf("%s BETWEEN ? AND ?", b.Column.ColumnName()), []any{b.Min, b.Max}, nil
}

// And joins expressions with AND. Empty renders to a constant true.
type And []Expression

func (a And) Build() (string, []any, error) {
	if len(a) == 0 {
		return "1 = 1", nil, nil
	}

	var sqls []string
	var args []any
	for _, expr := range a {
		sql, exprArgs, err := expr.Build()
		if err != nil {
			return "", nil, err
		}
		sqls = append(sqls, "("+sql+")")
		args = append(args, exprArgs...)
	}
	return strings.Join(sqls, " AND "), args, nil
}

// Or joins expressions with OR. Empty renders to a constant false.
type Or []Expression

func (o Or) Build() (string, []any, error) {
	if len(o) == 0 {
		return "1 = 0", nil, nil
	}

	var sqls []string
	var args []any
	for _, expr := range o {
		sql, exprArgs, err := expr.Build()
		if err != nil {
			return "", nil, err
		}
		sqls = append(sqls, "("+sql+")")
		args = append(args, exprArgs...)
	}
	return strings.Join(sqls, " OR "), args, nil
}

// Not negates an expression.
type Not struct {
	Expr Expression
}

func (n Not) Build() (string, []any, error) {
	sql, args, err := n.Expr.Build()
	if err != nil {
		return "", nil, err
	}
	return "NOT (" + sql + ")", args, nil
}

// Expr is a raw SQL fragment with bind variables, the escape hatch for
// conditions the typed expressions cannot express.
type Expr struct {
	SQL  string
	Vars []any
}

func (e Expr) Build() (string, []any, error) {
	return e.SQL, e.Vars, nil
}

// Assignment is a column assignment for UPDATE.
type Assignment struct {
	Column Column
	Value  any
}

func (a Assignment) Build() (string, []any, error) {
	return a.Column.ColumnName() + " = ?", []any{a.Value}, nil
}

// OrderByColumn is one ORDER BY term.
type OrderByColumn struct {
	Column Column
	Desc   bool
}

func (o OrderByColumn) Build() (string, []any, error) {
	sql := o.Column.ColumnName()
	if o.Desc {
		sql += " DESC"
	}
	return sql, nil, nil
}

// InExpr is column IN (subquery).
type InExpr struct {
	Column Column
	Expr   Expression
}

func (i InExpr) Build() (string, []any, error) {
	sql, args, err := i.Expr.Build()
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s IN (%s)", i.Column.ColumnName(), sql), args, nil
}

// NotInExpr is column NOT IN (subquery).
type NotInExpr struct {
	Column Column
	Expr   Expression
}

func (n NotInExpr) Build() (string, []any, error) {
	sql, args, err := n.Expr.Build()
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s NOT IN (%s)", n.Column.ColumnName(), sql), args, nil
}

// ExistsExpr is EXISTS (subquery).
type ExistsExpr struct {
	Expr Expression
}

func (e ExistsExpr) Build() (string, []any, error) {
	sql, args, err := e.Expr.Build()
	if err != nil {
		return "", nil, err
	}
	return "EXISTS (" + sql + ")", args, nil
}

// NotExistsExpr is NOT EXISTS (subquery).
type NotExistsExpr struct {
	Expr Expression
}

func (n NotExistsExpr) Build() (string, []any, error) {
	sql, args, err := n.Expr.Build()
	if err != nil {
		return "", nil, err
	}
	return "NOT EXISTS (" + sql + ")", args, nil
}
