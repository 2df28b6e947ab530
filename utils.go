package orm

import (
	"fmt"

	"github.com/git-rbanerjee/hibernate-orm/clause"
)

// ResolveColumnNames accepts column names as strings, clause.Column values,
// or anything Columnar and returns plain names for SQL generation.
func ResolveColumnNames(columns ...any) ([]string, error) {
	names := make([]string, 0, len(columns))
	for _, col := range columns {
		switch c := col.(type) {
		case string:
			names = append(names, c)
		case clause.Column:
			names = append(names, c.ColumnName())
		case clause.Columnar:
			names = append(names, c.ColumnName())
		default:
			return nil, fmt.Errorf("orm: unsupported column type %T", col)
		}
	}
	return names, nil
}
