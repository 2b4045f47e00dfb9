package domain

import (
	"fmt"
	"math"
	"time"
)

const clockLayout = "15:04"

// SleepHoursBetween returns the hours slept between a bedtime and a wake-up
// time given as "HH:MM". A wake time earlier than the bedtime is taken to
// be on the next day. The result is rounded to one decimal.
func SleepHoursBetween(bedtime, wakeTime string) (float64, error) {
	bed, err := time.Parse(clockLayout, bedtime)
	if err != nil {
		return 0, fmt.Errorf("invalid bedtime %q: %w", bedtime, err)
	}
	wake, err := time.Parse(clockLayout, wakeTime)
	if err != nil {
		return 0, fmt.Errorf("invalid wake time %q: %w", wakeTime, err)
	}
	hours := wake.Sub(bed).Hours()
	if hours < 0 {
		hours += 24
	}
	return math.Round(hours*10) / 10, nil
}
