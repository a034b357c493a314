package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCost(t *testing.T) {
	cases := []struct {
		name     string
		duration int
		rate     float64
		want     float64
	}{
		{"one hour", 60, 30.00, 30.00},
		{"ninety minutes", 90, 30.00, 45.00},
		{"half hour", 30, 25.00, 12.50},
		{"rounding", 45, 33.33, 25.00}, // 0.75 * 33.33 = 24.9975
		{"free court", 120, 0, 0},
		{"zero duration", 0, 30.00, 0},
		{"negative duration stays linear", -60, 30.00, -30.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, BookingCost(tc.duration, tc.rate), 1e-9)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$30.00", FormatPrice(30))
	assert.Equal(t, "$12.50", FormatPrice(12.5))
}

func TestParseTimestamp(t *testing.T) {
	got, ok := ParseTimestamp("2030-06-15 10:00", "")
	require.True(t, ok)
	assert.Equal(t, time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC), got)

	_, ok = ParseTimestamp("not a time", TimeLayout)
	assert.False(t, ok)

	_, ok = ParseTimestamp("", TimeLayout)
	assert.False(t, ok)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2030, 6, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2030-06-15 10:30", FormatTimestamp(ts, ""))
	assert.Equal(t, "2030-06-15", FormatTimestamp(ts, "2006-01-02"))
	// A layout with no reference components falls back to the default
	// textual representation instead of failing.
	assert.Equal(t, ts.String(), FormatTimestamp(ts, "garbage"))
}

func TestIsValidBookingWindow(t *testing.T) {
	now := time.Date(2030, 6, 14, 12, 0, 0, 0, time.UTC)
	tomorrowAt := func(hour, min int) time.Time {
		return time.Date(2030, 6, 15, hour, min, 0, 0, time.UTC)
	}

	t.Run("accepts window inside operating hours", func(t *testing.T) {
		assert.True(t, IsValidBookingWindow(tomorrowAt(10, 0), 60, "06:00", "22:00", now))
	})
	t.Run("rejects start equal to now", func(t *testing.T) {
		assert.False(t, IsValidBookingWindow(now, 60, "06:00", "22:00", now))
	})
	t.Run("rejects start in the past", func(t *testing.T) {
		assert.False(t, IsValidBookingWindow(now.Add(-time.Hour), 60, "06:00", "22:00", now))
	})
	t.Run("rejects start before opening", func(t *testing.T) {
		assert.False(t, IsValidBookingWindow(tomorrowAt(5, 30), 30, "06:00", "22:00", now))
	})
	t.Run("rejects end past closing", func(t *testing.T) {
		assert.False(t, IsValidBookingWindow(tomorrowAt(21, 30), 60, "06:00", "22:00", now))
	})
	t.Run("accepts window ending exactly at closing", func(t *testing.T) {
		assert.True(t, IsValidBookingWindow(tomorrowAt(21, 0), 60, "06:00", "22:00", now))
	})
	t.Run("accepts window starting exactly at opening", func(t *testing.T) {
		assert.True(t, IsValidBookingWindow(tomorrowAt(6, 0), 60, "06:00", "22:00", now))
	})
	t.Run("rejects malformed operating hours", func(t *testing.T) {
		assert.False(t, IsValidBookingWindow(tomorrowAt(10, 0), 60, "6am", "22:00", now))
	})
}
