// Package timefmt renders post timestamps as human-readable ages.
package timefmt

import (
	"strconv"
	"time"
)

// Relative describes how long ago t happened, measured from now.
//
//	under a minute  "45 seconds ago"
//	under an hour   "12 minutes ago"
//	under a day     "5 hours ago"
//	same year       "Mar 04 at 09:15"
//	otherwise       "Mar 04, 2023 at 09:15"
//
// Thresholds use whole elapsed seconds rounded down and are exclusive.
// Calendar output is rendered in t's location.
func Relative(t, now time.Time) string {
	secs := elapsedSeconds(t, now)
	if secs < 60 {
		return strconv.FormatInt(secs, 10) + " seconds ago"
	}

	mins := secs / 60
	if mins < 60 {
		return strconv.FormatInt(mins, 10) + " minutes ago"
	}

	hours := mins / 60
	if hours < 24 {
		return strconv.FormatInt(hours, 10) + " hours ago"
	}

	if t.Year() == now.Year() {
		return t.Format("Jan 02 at 15:04")
	}
	return t.Format("Jan 02, 2006 at 15:04")
}

// elapsedSeconds is floor((now - t) / 1s).
func elapsedSeconds(t, now time.Time) int64 {
	d := now.Sub(t)
	secs := int64(d / time.Second)
	if d < 0 && d%time.Second != 0 {
		secs--
	}
	return secs
}
