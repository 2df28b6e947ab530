// Package orm is a compact, type-safe object-relational mapper built on
// generics. Models are described by hand-written Schema implementations;
// SQL is generated with squirrel and rows are scanned with sqlx. Temporal
// columns holding date-time-with-offset values are mapped through the
// temporal subpackage, which preserves the stored instant across time
// zone and offset conversions.
package orm

import (
	"fmt"
	"reflect"

	"github.com/git-rbanerjee/hibernate-orm/clause"
)

// PK pairs a primary key column with its value for one model instance.
type PK = clause.Eq

// Assignment aliases clause.Assignment for UpdateColumns call sites.
type Assignment = clause.Assignment

// Schema maps a model type to its table and back. Implementations are
// written by hand next to the model (see the package tests for examples).
type Schema[T any] interface {
	TableName() string

	// SelectColumns lists the columns read by default queries, in the
	// order the model's db-tagged fields expect them.
	SelectColumns() []string

	// InsertRow extracts the columns and values written on insert.
	// Auto-increment keys with a zero value are omitted.
	InsertRow(*T) ([]string, []any)

	// UpdateMap extracts the column assignments written on update.
	UpdateMap(*T) map[string]any

	// PK returns the primary key condition for m. A nil m yields the
	// column metadata with no value.
	PK(m *T) PK
	SetPK(m *T, val int64)
	AutoIncrement() bool

	// SoftDeleteColumn names the deletion marker column, or "" when the
	// model is hard-deleted only.
	SoftDeleteColumn() string
	SoftDeleteValue() any
	SetDeletedAt(m *T)
}

var schemas = make(map[reflect.Type]any)

// RegisterSchema makes a model's schema available to Repository and Query.
// Call it from an init function or test setup before first use.
func RegisterSchema[T any](schema Schema[T]) {
	var t T
	schemas[reflect.TypeOf(t)] = schema
}

// LoadSchema returns the registered schema for T, panicking when the model
// was never registered. A missing registration is a programming error, so
// failing loudly at first use beats a deferred nil check.
func LoadSchema[T any]() Schema[T] {
	var t T
	typ := reflect.TypeOf(t)
	if s, ok := schemas[typ]; ok {
		return s.(Schema[T])
	}
	panic(fmt.Sprintf("orm: schema not registered for type %v", typ))
}
