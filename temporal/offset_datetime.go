package temporal

import (
	"database/sql/driver"
	"fmt"
	"sync/atomic"
	"time"
)

// StorageLayout is the wall-clock form written to the database. It carries
// no zone; fractional seconds are included only when present.
const StorageLayout = "2006-01-02 15:04:05.999999999"

// scanLayouts are the zone-less forms accepted when reading back a column.
var scanLayouts = []string{
	StorageLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// storageLoc holds the location timestamps are normalized into, analogous
// to the session time zone of the mapping layer under test. nil means
// time.Local.
var storageLoc atomic.Pointer[time.Location]

// StorageLocation returns the location used to normalize values into and
// out of the database. Defaults to time.Local.
func StorageLocation() *time.Location {
	if loc := storageLoc.Load(); loc != nil {
		return loc
	}
	return time.Local
}

// SetStorageLocation sets the storage location. Passing nil restores the
// time.Local default. Changing the location while values are in flight
// changes how they are interpreted, so callers configure it once at startup
// (or per test case).
func SetStorageLocation(loc *time.Location) {
	storageLoc.Store(loc)
}

// OffsetDateTime is a calendar date and time of day paired with a fixed
// offset from UTC, not a named zone. It implements driver.Valuer and
// sql.Scanner so it can be mapped to a zone-less timestamp column: writing
// stores the wall clock in the storage location, and reading fixes the
// offset to the storage location's offset at the stored instant.
type OffsetDateTime struct {
	t time.Time
}

// Of constructs an OffsetDateTime from its component fields and offset.
func Of(year int, month time.Month, day, hour, min, sec, nanos int, offset ZoneOffset) OffsetDateTime {
	return OffsetDateTime{t: time.Date(year, month, day, hour, min, sec, nanos, offset.Location())}
}

// At captures t's instant with the offset its location has at that instant.
// A named zone collapses to the concrete offset in effect; a fixed-zone
// time is taken as is.
func At(t time.Time) OffsetDateTime {
	off := OffsetAt(t)
	return OffsetDateTime{t: t.In(off.Location())}
}

// Parse reads an ISO-8601 date-time with offset, e.g.
// "1900-01-01T00:19:32+00:19:32".
func Parse(s string) (OffsetDateTime, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999999Z07:00:00",
		"2006-01-02T15:04:05.999999999Z07:00",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return At(t), nil
		}
		lastErr = err
	}
	return OffsetDateTime{}, fmt.Errorf("temporal: cannot parse %q: %w", s, lastErr)
}

// Time returns the underlying time.Time, located in the fixed offset zone.
func (d OffsetDateTime) Time() time.Time { return d.t }

// Instant returns the moment in UTC, discarding the offset.
func (d OffsetDateTime) Instant() time.Time { return d.t.UTC() }

// Format renders the local date-time with the given layout. The layout
// covers the wall-clock part only; use String for the offset-qualified form.
func (d OffsetDateTime) Format(layout string) string { return d.t.Format(layout) }

// Offset returns the fixed offset component.
func (d OffsetDateTime) Offset() ZoneOffset { return OffsetAt(d.t) }

// IsZero reports whether d is the zero value.
func (d OffsetDateTime) IsZero() bool { return d.t.IsZero() }

// Equal reports whether d and other represent the same instant, regardless
// of offset.
func (d OffsetDateTime) Equal(other OffsetDateTime) bool {
	return d.t.Equal(other.t)
}

// Identical reports whether d and other represent the same instant at the
// same offset. Two values for one instant at different offsets are Equal
// but not Identical.
func (d OffsetDateTime) Identical(other OffsetDateTime) bool {
	return d.t.Equal(other.t) && d.Offset() == other.Offset()
}

// WithOffsetSameInstant returns the same instant expressed at the given
// offset.
func (d OffsetDateTime) WithOffsetSameInstant(offset ZoneOffset) OffsetDateTime {
	return OffsetDateTime{t: d.t.In(offset.Location())}
}

// In returns the same instant expressed at loc's offset for that instant.
// The result carries the concrete fixed offset, not the named zone.
func (d OffsetDateTime) In(loc *time.Location) OffsetDateTime {
	return At(d.t.In(loc))
}

// String renders the value in ISO-8601 form with its offset.
func (d OffsetDateTime) String() string {
	return d.t.Format("2006-01-02T15:04:05.999999999") + d.Offset().String()
}

// Value implements driver.Valuer. The instant is converted to the storage
// location and written as zone-less wall-clock text, so equality in SQL is
// equality of instants for any two values written through this type.
func (d OffsetDateTime) Value() (driver.Value, error) {
	if d.t.IsZero() {
		return nil, nil
	}
	return d.t.In(StorageLocation()).Format(StorageLayout), nil
}

// Scan implements sql.Scanner. Zone-less input is interpreted as a wall
// clock in the storage location. Drivers that pre-parse timestamp columns
// hand over a time.Time whose fields are the stored wall clock attached to
// an arbitrary zone; only the fields are taken, mirroring how the column
// itself carries no zone.
func (d *OffsetDateTime) Scan(src any) error {
	loc := StorageLocation()
	switch v := src.(type) {
	case nil:
		*d = OffsetDateTime{}
		return nil
	case time.Time:
		wall := time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), loc)
		*d = At(wall)
		return nil
	case []byte:
		return d.scanString(string(v), loc)
	case string:
		return d.scanString(v, loc)
	default:
		return fmt.Errorf("temporal: cannot scan %T into OffsetDateTime", src)
	}
}

func (d *OffsetDateTime) scanString(s string, loc *time.Location) error {
	var lastErr error
	for _, layout := range scanLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			*d = At(t)
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("temporal: cannot scan %q into OffsetDateTime: %w", s, lastErr)
}
