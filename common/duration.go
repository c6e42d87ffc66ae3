package common

import (
	"time"

	"github.com/dustin/go-humanize/english"
)

// FormatDuration returns d as a human-readable string, like "2 days, 3 hours, and 1 minute".
// Seconds are only shown for durations under an hour.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0 seconds"
	}

	units := []struct {
		size time.Duration
		name string
	}{
		{24 * time.Hour, "day"},
		{time.Hour, "hour"},
		{time.Minute, "minute"},
		{time.Second, "second"},
	}

	showSeconds := d < time.Hour

	s := make([]string, 0, len(units))
	for _, u := range units {
		if u.size == time.Second && !showSeconds {
			break
		}

		n := int(d / u.size)
		d -= time.Duration(n) * u.size
		if n > 0 {
			s = append(s, english.Plural(n, u.name, ""))
		}
	}
	return english.OxfordWordSeries(s, "and")
}
