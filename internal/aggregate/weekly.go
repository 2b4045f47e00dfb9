// Package aggregate turns raw per-user log entries into the weekly series,
// today tiles and summary numbers shown on each tracker page.
//
// Every function here is total: a malformed entry (missing timestamp,
// NaN or negative value) only loses its own contribution.
package aggregate

import (
	"math"
	"time"

	"wellnest/tracker-api/internal/domain"
)

// DayLabels are the chart labels for WeeklySeries slots.
var DayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeeklySeries holds one bucket per day of week, Monday=0 … Sunday=6.
// It is a day-of-week profile across all given entries, not one calendar week.
type WeeklySeries [7]float64

// Total returns the sum of all buckets.
func (s WeeklySeries) Total() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Combine decides how entries falling on the same day are merged.
type Combine int

const (
	// Sum adds every entry's value into its day bucket.
	Sum Combine = iota
	// LastWrite overwrites the day bucket with each entry in iteration order.
	LastWrite
)

// DayIndex maps a weekday onto the Monday-first index used by WeeklySeries.
func DayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// BucketByDayOfWeek places each timestamped entry in the bucket of its
// weekday as observed in loc. Entries without a timestamp are skipped.
// With LastWrite the result depends on the order of entries.
func BucketByDayOfWeek[E domain.Entry](entries []E, loc *time.Location, valueOf func(E) float64, combine Combine) WeeklySeries {
	var series WeeklySeries
	if loc == nil {
		loc = time.UTC
	}
	for _, e := range entries {
		ts, ok := e.Meta().Time()
		if !ok {
			continue
		}
		idx := DayIndex(ts.In(loc).Weekday())
		v := sanitize(valueOf(e))
		switch combine {
		case LastWrite:
			series[idx] = v
		default:
			series[idx] += v
		}
	}
	return series
}

// PercentOfGoal maps every bucket to its rounded percentage of goal.
// Unlike GoalProgressPercent the result is not capped at 100, matching the
// per-day goal chart. A non-positive goal yields all zeros.
func PercentOfGoal(series WeeklySeries, goal float64) WeeklySeries {
	var out WeeklySeries
	if goal <= 0 {
		return out
	}
	for i, v := range series {
		out[i] = math.Round(v / goal * 100)
	}
	return out
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
