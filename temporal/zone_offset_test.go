package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		input   string
		seconds int
		wantErr bool
	}{
		{input: "Z", seconds: 0},
		{input: "z", seconds: 0},
		{input: "+00:00", seconds: 0},
		{input: "+01:00", seconds: 3600},
		{input: "-08:00", seconds: -8 * 3600},
		{input: "+01:30", seconds: 5400},
		{input: "+00:30", seconds: 1800},
		{input: "+10", seconds: 10 * 3600},
		{input: "-02", seconds: -2 * 3600},
		{input: "+00:09:21", seconds: 561},
		{input: "+00:19:32", seconds: 1172},
		{input: "-00:25:21", seconds: -1521},
		{input: "+18:00", seconds: 18 * 3600},
		{input: "-18:00", seconds: -18 * 3600},
		{input: "", wantErr: true},
		{input: "00:00", wantErr: true},
		{input: "+1:00", wantErr: true},
		{input: "+19:00", wantErr: true},
		{input: "+01:60", wantErr: true},
		{input: "+01:00:60", wantErr: true},
		{input: "UTC", wantErr: true},
		// Embedded signs and spaces must error, not reinterpret.
		{input: "+-1:00", wantErr: true},
		{input: "--1:00", wantErr: true},
		{input: "+ 1:00", wantErr: true},
		{input: "+01:-5", wantErr: true},
		{input: "+01:0 ", wantErr: true},
		{input: "+01-00", wantErr: true},
		{input: "+01:00:-1", wantErr: true},
		{input: "+01:0000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			o, err := ParseOffset(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.seconds, o.TotalSeconds())
		})
	}
}

func TestZoneOffsetString(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "Z"},
		{seconds: 3600, want: "+01:00"},
		{seconds: -8 * 3600, want: "-08:00"},
		{seconds: 5400, want: "+01:30"},
		{seconds: 561, want: "+00:09:21"},
		{seconds: 1172, want: "+00:19:32"},
		{seconds: -1521, want: "-00:25:21"},
	}

	for _, tt := range tests {
		o, err := OffsetOfSeconds(tt.seconds)
		require.NoError(t, err)
		assert.Equal(t, tt.want, o.String())
	}
}

// Parsing the rendered form must give back the same offset.
func TestZoneOffsetStringRoundTrip(t *testing.T) {
	for _, secs := range []int{0, 3600, -3600, 5400, 1800, 561, 1172, -1521, 18 * 3600} {
		o, err := OffsetOfSeconds(secs)
		require.NoError(t, err)

		parsed, err := ParseOffset(o.String())
		require.NoError(t, err, "offset %s", o)
		assert.Equal(t, o, parsed)
	}
}

func TestOffsetOfSecondsRange(t *testing.T) {
	_, err := OffsetOfSeconds(18*3600 + 1)
	assert.Error(t, err)

	_, err = OffsetOfSeconds(-18*3600 - 1)
	assert.Error(t, err)
}

func TestZoneOffsetLocation(t *testing.T) {
	o := MustOffset("+00:19:32")
	loc := o.Location()

	ts := time.Date(1900, time.January, 1, 0, 19, 32, 0, loc)
	_, secs := ts.Zone()
	assert.Equal(t, 1172, secs)

	assert.Same(t, time.UTC, UTC.Location())
}

func TestOffsetAt(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// Paris mean time, in force until 1911, is nine minutes and
	// twenty-one seconds ahead of Greenwich.
	lmt := OffsetAt(time.Date(1900, time.January, 1, 0, 0, 0, 0, paris))
	assert.Equal(t, 561, lmt.TotalSeconds())

	// Modern CET.
	cet := OffsetAt(time.Date(2017, time.January, 1, 0, 0, 0, 0, paris))
	assert.Equal(t, 3600, cet.TotalSeconds())
}
