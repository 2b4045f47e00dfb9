package aggregate

import (
	"slices"
	"time"

	"wellnest/tracker-api/internal/domain"
)

// FilterToday keeps the entries whose timestamp, converted into now's
// location, falls on the same calendar day as now.
func FilterToday[E domain.Entry](entries []E, now time.Time) []E {
	y, m, d := now.Date()
	loc := now.Location()
	out := make([]E, 0, len(entries))
	for _, e := range entries {
		ts, ok := e.Meta().Time()
		if !ok {
			continue
		}
		ey, em, ed := ts.In(loc).Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}

// LatestByGroup keeps, per group key, the entry with the greatest
// timestamp. A timed entry always beats an untimed one; among equals the
// entry seen later wins.
func LatestByGroup[E domain.Entry, K comparable](entries []E, groupKeyOf func(E) K) map[K]E {
	latest := make(map[K]E)
	for _, e := range entries {
		key := groupKeyOf(e)
		cur, seen := latest[key]
		if !seen || compareTimes(e, cur) >= 0 {
			latest[key] = e
		}
	}
	return latest
}

// SortByTimestampDescending returns a newest-first copy of entries.
// Untimed entries sort after every timed one; equal timestamps keep their
// original relative order.
func SortByTimestampDescending[E domain.Entry](entries []E) []E {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b E) int {
		return compareTimes(b, a)
	})
	return out
}

// Latest returns the newest entry, if any.
func Latest[E domain.Entry](entries []E) (E, bool) {
	var zero E
	if len(entries) == 0 {
		return zero, false
	}
	return SortByTimestampDescending(entries)[0], true
}

// compareTimes orders entries by (has timestamp, timestamp), so an untimed
// entry is older than any timed one, including one stamped at the epoch.
func compareTimes[E domain.Entry](a, b E) int {
	ta, okA := a.Meta().Time()
	tb, okB := b.Meta().Time()
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return 1
	case okB:
		return -1
	}
	return 0
}
