package chatbot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneLabel(t *testing.T) {
	assert.Equal(t, "{time_utc_plus_07_00}", ZoneLabel("utc", 7, 0))
	assert.Equal(t, "{time_gmt_plus_07_00}", ZoneLabel("gmt", 7, 0))
	assert.Equal(t, "{time_gmt_minus_03_30}", ZoneLabel("gmt", -3, 30))
	assert.Equal(t, "{time_utc_plus_00_45}", ZoneLabel("utc", 0, 45))
	assert.Equal(t, "{time_utc_minus_12_00}", ZoneLabel("utc", -12, 0))
	assert.NotEqual(t, ZoneLabel("utc", 7, 0), ZoneLabel("gmt", 7, 0))
}

func TestOffsetsCoverRangeWithUniqueLabels(t *testing.T) {
	offsets := Offsets()
	require.Len(t, offsets, 27*3)

	seen := make(map[string]Offset, len(offsets))
	for _, o := range offsets {
		assert.GreaterOrEqual(t, o.Hour, -12)
		assert.LessOrEqual(t, o.Hour, 14)
		assert.Contains(t, []int{0, 30, 45}, o.Minute)

		for _, prefix := range []string{"utc", "gmt"} {
			label := ZoneLabel(prefix, o.Hour, o.Minute)
			prev, dup := seen[label]
			require.Falsef(t, dup, "label %s produced by %+v and %+v", label, prev, o)
			seen[label] = o
		}
	}
	assert.Len(t, seen, 162)
}

func TestOffsetSeconds(t *testing.T) {
	cases := []struct {
		offset Offset
		want   int
		name   string
	}{
		{Offset{Hour: 7, Minute: 0}, 7 * 3600, "GMT+07:00"},
		{Offset{Hour: 5, Minute: 45}, 5*3600 + 45*60, "GMT+05:45"},
		{Offset{Hour: -3, Minute: 30}, -(3*3600 + 30*60), "GMT-03:30"},
		{Offset{Hour: 0, Minute: 30}, 30 * 60, "GMT+00:30"},
		{Offset{Hour: -12, Minute: 0}, -12 * 3600, "GMT-12:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.offset.Seconds(), tc.name)
		assert.Equal(t, tc.name, tc.offset.Name())
		_, secs := time.Date(2025, 1, 1, 0, 0, 0, 0, tc.offset.Location()).Zone()
		assert.Equal(t, tc.want, secs, tc.name)
	}
}

func TestFormatTime(t *testing.T) {
	instant := time.Date(2025, time.March, 9, 22, 15, 7, 0, time.UTC)
	assert.Equal(t, "2025-03-09 22:15:07", FormatTime(instant, time.UTC))
	assert.Equal(t, "2025-03-09 22:15:07", FormatTime(instant, nil))
	assert.Equal(t, "2025-03-10 05:15:07", FormatTime(instant, Offset{Hour: 7}.Location()))
	assert.Equal(t, "2025-03-09 18:45:07", FormatTime(instant, Offset{Hour: -3, Minute: 30}.Location()))
}
