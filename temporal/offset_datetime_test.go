package temporal

import (
	"database/sql/driver"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStorageLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	prev := StorageLocation()
	SetStorageLocation(loc)
	t.Cleanup(func() { SetStorageLocation(prev) })
	return loc
}

func TestOfAndString(t *testing.T) {
	d := Of(2017, time.November, 6, 19, 19, 1, 0, MustOffset("+10:00"))
	assert.Equal(t, "2017-11-06T19:19:01+10:00", d.String())

	d = Of(1900, time.January, 1, 0, 19, 32, 0, MustOffset("+00:19:32"))
	assert.Equal(t, "1900-01-01T00:19:32+00:19:32", d.String())

	d = Of(2017, time.November, 6, 19, 19, 1, 500, MustOffset("+01:00"))
	assert.Equal(t, "2017-11-06T19:19:01.0000005+01:00", d.String())
}

func TestParse(t *testing.T) {
	for _, s := range []string{
		"2017-11-06T19:19:01+10:00",
		"2017-11-06T19:19:01.0000005+01:00",
		"1900-01-01T00:19:32+00:19:32",
		"1970-01-01T00:00:00Z",
	} {
		d, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, d.String())
	}

	_, err := Parse("not a date")
	assert.Error(t, err)
}

func TestInstantAndFormat(t *testing.T) {
	d := Of(2017, time.November, 6, 19, 19, 1, 0, MustOffset("+10:00"))

	assert.Equal(t, time.Date(2017, time.November, 6, 9, 19, 1, 0, time.UTC), d.Instant())
	assert.Equal(t, "2017-11-06 19:19:01", d.Format(StorageLayout))
}

func TestWithOffsetSameInstant(t *testing.T) {
	d := Of(2017, time.November, 6, 19, 19, 1, 0, MustOffset("+10:00"))
	utc := d.WithOffsetSameInstant(UTC)

	assert.True(t, d.Equal(utc))
	assert.False(t, d.Identical(utc))
	assert.Equal(t, "2017-11-06T09:19:01Z", utc.String())
}

func TestIn(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	d := Of(2017, time.November, 6, 19, 19, 1, 0, MustOffset("+10:00"))
	inParis := d.In(paris)

	// Same instant, Paris standard time.
	assert.True(t, d.Equal(inParis))
	assert.Equal(t, "2017-11-06T10:19:01+01:00", inParis.String())

	// A value falling into Paris mean time picks up the sub-minute offset.
	lmt := Of(1900, time.January, 1, 0, 9, 21, 0, MustOffset("+00:09:21")).In(paris)
	assert.Equal(t, "1900-01-01T00:09:21+00:09:21", lmt.String())
}

func TestValue(t *testing.T) {
	withStorageLocation(t, "Etc/GMT+8")

	d := Of(2017, time.November, 6, 19, 19, 1, 0, MustOffset("+10:00"))
	v, err := d.Value()
	require.NoError(t, err)

	// 19:19:01+10:00 is 09:19:01Z, which is 01:19:01 at UTC-8.
	assert.Equal(t, "2017-11-06 01:19:01", v)
}

func TestValueFractionalSeconds(t *testing.T) {
	withStorageLocation(t, "Europe/Paris")

	d := Of(2017, time.November, 6, 19, 19, 1, 500, MustOffset("+01:00"))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2017-11-06 19:19:01.0000005", v)
}

func TestValueZero(t *testing.T) {
	v, err := OffsetDateTime{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestScanString(t *testing.T) {
	withStorageLocation(t, "Etc/GMT+8")

	var d OffsetDateTime
	require.NoError(t, d.Scan("2017-11-06 01:19:01"))
	assert.Equal(t, "2017-11-06T01:19:01-08:00", d.String())

	require.NoError(t, d.Scan([]byte("2017-11-06 01:19:01.0000005")))
	assert.Equal(t, "2017-11-06T01:19:01.0000005-08:00", d.String())

	require.NoError(t, d.Scan("1970-01-01"))
	assert.Equal(t, "1970-01-01T00:00:00-08:00", d.String())

	assert.Error(t, d.Scan("garbage"))
	assert.Error(t, d.Scan(12345))
}

func TestScanTime(t *testing.T) {
	withStorageLocation(t, "Europe/Amsterdam")

	// Drivers that pre-parse timestamp columns report the stored wall
	// clock in UTC; only the fields may be trusted.
	var d OffsetDateTime
	require.NoError(t, d.Scan(time.Date(1900, time.January, 1, 0, 19, 32, 0, time.UTC)))
	assert.Equal(t, "1900-01-01T00:19:32+00:19:32", d.String())
}

func TestScanNil(t *testing.T) {
	d := Of(2017, time.November, 6, 19, 19, 1, 0, UTC)
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

// Writing and re-reading a value must land on the same instant at the
// storage zone's offset, and equal values at different offsets must render
// to identical column text.
func TestStorageRoundTrip(t *testing.T) {
	loc := withStorageLocation(t, "Europe/Paris")

	original := Of(2017, time.November, 6, 19, 19, 1, 0, MustOffset("+10:00"))

	v, err := original.Value()
	require.NoError(t, err)

	var read OffsetDateTime
	require.NoError(t, read.Scan(v))

	assert.True(t, read.Identical(original.In(loc)))

	converted := original.In(loc)
	utc := converted.WithOffsetSameInstant(UTC)
	for _, same := range []OffsetDateTime{original, converted, utc} {
		sv, err := same.Value()
		require.NoError(t, err)
		assert.Equal(t, v, sv, "instant-equal value %s must store identically", same)
	}
}

func TestOffsetDateTimeImplementsValuer(t *testing.T) {
	var v any = OffsetDateTime{}
	_, ok := v.(driver.Valuer)
	assert.True(t, ok)
}
