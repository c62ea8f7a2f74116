package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelative(t *testing.T) {
	now := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now, "0 seconds ago"},
		{"sub-second rounds down", now.Add(-999 * time.Millisecond), "0 seconds ago"},
		{"45 seconds", now.Add(-45 * time.Second), "45 seconds ago"},
		{"59 seconds", now.Add(-59 * time.Second), "59 seconds ago"},
		{"60 seconds is a minute", now.Add(-60 * time.Second), "1 minutes ago"},
		{"119 seconds", now.Add(-119 * time.Second), "1 minutes ago"},
		{"59 minutes", now.Add(-59*time.Minute - 59*time.Second), "59 minutes ago"},
		{"one hour", now.Add(-time.Hour), "1 hours ago"},
		{"5 hours", now.Add(-5 * 3600 * time.Second), "5 hours ago"},
		{"23 hours", now.Add(-23*time.Hour - 59*time.Minute), "23 hours ago"},
		{"24 hours is a date", now.Add(-24 * time.Hour), "Mar 14 at 18:30"},
		{"earlier this year", time.Date(2025, 1, 5, 7, 4, 0, 0, time.UTC), "Jan 05 at 07:04"},
		{"previous year", time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), "Dec 31, 2024 at 23:59"},
		{"long ago", time.Date(2019, 7, 9, 0, 0, 0, 0, time.UTC), "Jul 09, 2019 at 00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Relative(tt.t, now))
		})
	}
}

func TestRelative_FutureTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "-1 seconds ago", Relative(now.Add(500*time.Millisecond), now))
	assert.Equal(t, "-5 seconds ago", Relative(now.Add(5*time.Second), now))
}

func TestRelative_UsesTimestampLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)
	ts := time.Date(2025, 2, 1, 1, 0, 0, 0, loc)

	assert.Equal(t, "Feb 01 at 01:00", Relative(ts, now))
}
