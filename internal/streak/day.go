package streak

import (
	"slices"
	"time"

	"github.com/julianstephens/sober/internal/constants"
)

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayKey identifies t's calendar day in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// SameDay reports whether a and b fall on the same calendar day in loc,
// ignoring time of day.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayKey(a, loc) == DayKey(b, loc)
}

// Canonicalize normalizes every entry to the start of its calendar day,
// drops same-day duplicates and sorts the result oldest first. Two histories
// holding the same days always canonicalize to the same slice.
func Canonicalize(history []time.Time, loc *time.Location) []time.Time {
	out := make([]time.Time, 0, len(history))
	seen := make(map[string]struct{}, len(history))
	for _, h := range history {
		k := DayKey(h, loc)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, StartOfDay(h, loc))
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// Latest returns the most recent calendar day in history.
func Latest(history []time.Time, loc *time.Location) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, h := range history {
		d := StartOfDay(h, loc)
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}

// LastConfirmed returns the most recent calendar day in history that is not
// after now's day. Days marked in the future are not confirmations yet.
func LastConfirmed(history []time.Time, now time.Time, loc *time.Location) (time.Time, bool) {
	today := StartOfDay(now, loc)
	var last time.Time
	found := false
	for _, h := range history {
		d := StartOfDay(h, loc)
		if d.After(today) {
			continue
		}
		if !found || d.After(last) {
			last = d
			found = true
		}
	}
	return last, found
}

// Contains reports whether day's calendar day is present in history.
func Contains(history []time.Time, day time.Time, loc *time.Location) bool {
	k := DayKey(day, loc)
	for _, h := range history {
		if DayKey(h, loc) == k {
			return true
		}
	}
	return false
}

// UntilNextDay returns how long until the next local midnight after now.
func UntilNextDay(now time.Time, loc *time.Location) time.Duration {
	next := StartOfDay(now, loc).AddDate(0, 0, 1)
	return next.Sub(now)
}
