package orm

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/git-rbanerjee/hibernate-orm/clause"
	"github.com/git-rbanerjee/hibernate-orm/field"
	"github.com/git-rbanerjee/hibernate-orm/temporal"
)

// The suite runs against SQLite in memory by default. Point TEST_DRIVER
// and TEST_DSN at MySQL or PostgreSQL to run the same tests there.

func testDialect() Dialect {
	switch os.Getenv("TEST_DRIVER") {
	case "mysql":
		return MySQL
	case "postgres":
		return PostgreSQL
	default:
		return SQLite
	}
}

func testDSN() string {
	if dsn := os.Getenv("TEST_DSN"); dsn != "" {
		return dsn
	}
	return ":memory:"
}

func newTestSession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()

	db, err := sql.Open(testDialect().Name(), testDSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSession(db, testDialect(), opts...)
}

// Event is a timestamped record whose moment column carries an offset
// date-time. It is the model the temporal round-trip tests run on.
type Event struct {
	ID     int64                   `db:"id"`
	Name   string                  `db:"name"`
	Moment temporal.OffsetDateTime `db:"moment"`
}

type eventSchema struct{}

func (eventSchema) TableName() string        { return "events" }
func (eventSchema) SelectColumns() []string  { return []string{"id", "name", "moment"} }
func (eventSchema) AutoIncrement() bool      { return false }
func (eventSchema) SoftDeleteColumn() string { return "" }
func (eventSchema) SoftDeleteValue() any     { return nil }
func (eventSchema) SetDeletedAt(*Event)      {}

func (eventSchema) InsertRow(e *Event) ([]string, []any) {
	return []string{"id", "name", "moment"}, []any{e.ID, e.Name, e.Moment}
}

func (eventSchema) UpdateMap(e *Event) map[string]any {
	return map[string]any{"name": e.Name, "moment": e.Moment}
}

func (eventSchema) PK(e *Event) PK {
	pk := PK{Column: clause.Column{Name: "id"}}
	if e != nil {
		pk.Value = e.ID
	}
	return pk
}

func (eventSchema) SetPK(e *Event, val int64) { e.ID = val }

// Typed fields for Event.
var eventFields = struct {
	ID     field.Number[int64]
	Name   field.String
	Moment field.OffsetTime
}{
	ID:     field.NewNumber[int64]("id"),
	Name:   field.NewString("name"),
	Moment: field.NewOffsetTime("moment"),
}

func createEventsTable(t *testing.T, s *Session) {
	t.Helper()
	ddl := fmt.Sprintf(`CREATE TABLE events (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		moment %s
	)`, s.Dialect().DateTimeType())
	_, err := s.Exec(context.Background(), ddl)
	require.NoError(t, err)
}

// User exercises auto-increment keys, soft delete, and lifecycle hooks.
type User struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Age       int        `db:"age"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`

	beforeCreateCalled bool
}

func (u *User) BeforeCreate(context.Context) error {
	u.beforeCreateCalled = true
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	return nil
}

type userSchema struct{}

func (userSchema) TableName() string        { return "users" }
func (userSchema) SelectColumns() []string  { return []string{"id", "name", "email", "age", "created_at", "deleted_at"} }
func (userSchema) AutoIncrement() bool      { return true }
func (userSchema) SoftDeleteColumn() string { return "deleted_at" }
func (userSchema) SoftDeleteValue() any     { return time.Now() }

func (userSchema) SetDeletedAt(u *User) {
	now := time.Now()
	u.DeletedAt = &now
}

func (userSchema) InsertRow(u *User) ([]string, []any) {
	cols := []string{"name", "email", "age", "created_at"}
	vals := []any{u.Name, u.Email, u.Age, u.CreatedAt}
	if u.ID != 0 {
		cols = append([]string{"id"}, cols...)
		vals = append([]any{u.ID}, vals...)
	}
	return cols, vals
}

func (userSchema) UpdateMap(u *User) map[string]any {
	return map[string]any{"name": u.Name, "email": u.Email, "age": u.Age}
}

func (userSchema) PK(u *User) PK {
	pk := PK{Column: clause.Column{Name: "id"}}
	if u != nil {
		pk.Value = u.ID
	}
	return pk
}

func (userSchema) SetPK(u *User, val int64) { u.ID = val }

var userFields = struct {
	ID    field.Number[int64]
	Name  field.String
	Email field.String
	Age   field.Number[int]
}{
	ID:    field.NewNumber[int64]("id"),
	Name:  field.NewString("name"),
	Email: field.NewString("email"),
	Age:   field.NewNumber[int]("age"),
}

func createUsersTable(t *testing.T, s *Session) {
	t.Helper()
	ddl := fmt.Sprintf(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		age INTEGER NOT NULL DEFAULT 0,
		created_at %[1]s,
		deleted_at %[1]s
	)`, s.Dialect().DateTimeType())
	_, err := s.Exec(context.Background(), ddl)
	require.NoError(t, err)
}

// Post exercises relations and JSON columns.
type Post struct {
	ID     int64                `db:"id"`
	UserID int64                `db:"user_id"`
	Title  string               `db:"title"`
	Tags   JSON[[]string]       `db:"tags"`
	Meta   JSON[map[string]any] `db:"meta"`
}

type postSchema struct{}

func (postSchema) TableName() string        { return "posts" }
func (postSchema) SelectColumns() []string  { return []string{"id", "user_id", "title", "tags", "meta"} }
func (postSchema) AutoIncrement() bool      { return true }
func (postSchema) SoftDeleteColumn() string { return "" }
func (postSchema) SoftDeleteValue() any     { return nil }
func (postSchema) SetDeletedAt(*Post)       {}

func (postSchema) InsertRow(p *Post) ([]string, []any) {
	return []string{"user_id", "title", "tags", "meta"}, []any{p.UserID, p.Title, p.Tags, p.Meta}
}

func (postSchema) UpdateMap(p *Post) map[string]any {
	return map[string]any{"user_id": p.UserID, "title": p.Title, "tags": p.Tags, "meta": p.Meta}
}

func (postSchema) PK(p *Post) PK {
	pk := PK{Column: clause.Column{Name: "id"}}
	if p != nil {
		pk.Value = p.ID
	}
	return pk
}

func (postSchema) SetPK(p *Post, val int64) { p.ID = val }

var postFields = struct {
	ID     field.Number[int64]
	UserID field.Number[int64]
	Title  field.String
}{
	ID:     field.NewNumber[int64]("id"),
	UserID: field.NewNumber[int64]("user_id"),
	Title:  field.NewString("title"),
}

func createPostsTable(t *testing.T, s *Session) {
	t.Helper()
	ddl := `CREATE TABLE posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		tags TEXT,
		meta TEXT
	)`
	_, err := s.Exec(context.Background(), ddl)
	require.NoError(t, err)
}

func init() {
	RegisterSchema[Event](eventSchema{})
	RegisterSchema[User](userSchema{})
	RegisterSchema[Post](postSchema{})
}
