package leave

import "time"

const secondsPerDay = 24 * 60 * 60

// OverlapDays counts the calendar days shared by [start, end] and [windowStart, windowEnd].
// All bounds are inclusive and only the date part of each instant is used.
func OverlapDays(start, end, windowStart, windowEnd time.Time) int {
	from := maxDate(civil(start), civil(windowStart))
	to := minDate(civil(end), civil(windowEnd))
	if to.Before(from) {
		return 0
	}
	return int((to.Unix()-from.Unix())/secondsPerDay) + 1
}

// civil drops the clock and the location so that day arithmetic ignores DST.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
