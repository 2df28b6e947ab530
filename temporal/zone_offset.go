// Package temporal provides date-time-with-offset values that survive a
// round trip through a zone-less database timestamp column.
//
// The database column stores a plain wall-clock timestamp with no zone
// information. Values are normalized into a configurable storage location
// on write and reinterpreted in that location on read, so the offset a
// caller gets back is the storage location's offset at the stored instant
// rather than the offset the value was written with.
package temporal

import (
	"fmt"
	"time"
)

// maxOffsetSeconds bounds offsets to the ISO-8601 range of ±18:00.
const maxOffsetSeconds = 18 * 60 * 60

// ZoneOffset is a fixed offset from UTC with second precision.
// Second precision matters for historical local mean time offsets such as
// Europe/Amsterdam's +00:19:32, which predate offset standardization.
type ZoneOffset struct {
	seconds int
}

// UTC is the zero offset.
var UTC = ZoneOffset{}

// OffsetOfSeconds returns the offset for the given total seconds east of UTC.
func OffsetOfSeconds(seconds int) (ZoneOffset, error) {
	if seconds < -maxOffsetSeconds || seconds > maxOffsetSeconds {
		return ZoneOffset{}, fmt.Errorf("temporal: offset %d out of range ±18:00", seconds)
	}
	return ZoneOffset{seconds: seconds}, nil
}

// ParseOffset parses an ISO-8601 offset: "Z", "±hh", "±hh:mm" or "±hh:mm:ss".
func ParseOffset(s string) (ZoneOffset, error) {
	if s == "Z" || s == "z" {
		return UTC, nil
	}
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return ZoneOffset{}, fmt.Errorf("temporal: invalid offset %q", s)
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}

	// Only digit pairs separated by ':' are valid; Sscanf-style parsing
	// would silently accept embedded signs and spaces.
	var h, m, sec int
	var ok bool
	switch len(s) {
	case 3: // ±hh
		h, ok = twoDigits(s[1:3])
	case 6: // ±hh:mm
		if s[3] != ':' {
			break
		}
		var mok bool
		h, ok = twoDigits(s[1:3])
		m, mok = twoDigits(s[4:6])
		ok = ok && mok
	case 9: // ±hh:mm:ss
		if s[3] != ':' || s[6] != ':' {
			break
		}
		var mok, sok bool
		h, ok = twoDigits(s[1:3])
		m, mok = twoDigits(s[4:6])
		sec, sok = twoDigits(s[7:9])
		ok = ok && mok && sok
	}
	if !ok {
		return ZoneOffset{}, fmt.Errorf("temporal: invalid offset %q", s)
	}
	if h > 18 || m > 59 || sec > 59 {
		return ZoneOffset{}, fmt.Errorf("temporal: offset %q out of range", s)
	}

	return OffsetOfSeconds(sign * (h*3600 + m*60 + sec))
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// MustOffset is like ParseOffset but panics on invalid input.
// Intended for literals in tests and package initialization.
func MustOffset(s string) ZoneOffset {
	o, err := ParseOffset(s)
	if err != nil {
		panic(err)
	}
	return o
}

// OffsetAt returns the offset in effect for t's location at instant t.
func OffsetAt(t time.Time) ZoneOffset {
	_, secs := t.Zone()
	return ZoneOffset{seconds: secs}
}

// TotalSeconds returns the offset in seconds east of UTC.
func (o ZoneOffset) TotalSeconds() int { return o.seconds }

// IsUTC reports whether the offset is zero.
func (o ZoneOffset) IsUTC() bool { return o.seconds == 0 }

// String renders the offset in ISO-8601 form. The zero offset is "Z" and
// the seconds component is included only when nonzero.
func (o ZoneOffset) String() string {
	if o.seconds == 0 {
		return "Z"
	}

	secs := o.seconds
	sign := "+"
	if secs < 0 {
		sign = "-"
		secs = -secs
	}

	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if s == 0 {
		return fmt.Sprintf("%s%02d:%02d", sign, h, m)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
}

// Location returns a fixed time.Location for this offset.
func (o ZoneOffset) Location() *time.Location {
	if o.seconds == 0 {
		return time.UTC
	}
	return time.FixedZone(o.String(), o.seconds)
}
