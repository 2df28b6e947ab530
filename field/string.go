package field

import "github.com/git-rbanerjee/hibernate-orm/clause"

// String is a text column.
type String struct {
	Field[string]
}

// NewString creates a string field for a column.
func NewString(name string, table ...string) String {
	return String{Field: New[string](name, table...)}
}

// Like is field LIKE pattern.
func (s String) Like(pattern string) clause.Expression {
	return clause.Like{Column: s.column, Value: pattern}
}

// NotLike is field NOT LIKE pattern.
func (s String) NotLike(pattern string) clause.Expression {
	return clause.NotLike{Column: s.column, Value: pattern}
}

// HasPrefix is field LIKE prefix%.
func (s String) HasPrefix(prefix string) clause.Expression {
	return clause.Like{Column: s.column, Value: prefix + "%"}
}

// HasSuffix is field LIKE %suffix.
func (s String) HasSuffix(suffix string) clause.Expression {
	return clause.Like{Column: s.column, Value: "%" + suffix}
}

// Contains is field LIKE %substr%.
func (s String) Contains(substr string) clause.Expression {
	return clause.Like{Column: s.column, Value: "%" + substr + "%"}
}
