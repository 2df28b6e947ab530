package orm

import "github.com/git-rbanerjee/hibernate-orm/clause"

// On renders a column-to-column equality for join conditions. Both sides
// are identifiers, so no bind arguments are produced.
func On(left, right clause.Columnar) clause.Expression {
	return clause.Expr{SQL: left.ColumnName() + " = " + right.ColumnName()}
}

// OnAnd combines On conditions for composite joins.
func OnAnd(exprs ...clause.Expression) clause.Expression {
	return clause.And(exprs)
}
