package aggregate

import (
	"math"

	"wellnest/tracker-api/internal/domain"
)

// Total adds valueOf over all entries, timestamped or not.
func Total[E domain.Entry](entries []E, valueOf func(E) float64) float64 {
	var total float64
	for _, e := range entries {
		total += sanitize(valueOf(e))
	}
	return total
}

// Average is Total divided by the entry count; zero for no entries.
func Average[E domain.Entry](entries []E, valueOf func(E) float64) float64 {
	if len(entries) == 0 {
		return 0
	}
	return Total(entries, valueOf) / float64(len(entries))
}

// GoalProgressPercent is round(min(100, actual/target*100)) for a positive
// target and 0 otherwise. It never goes below 0.
func GoalProgressPercent(actual, target float64) int {
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return 0
	}
	pct := math.Min(100, sanitize(actual)/target*100)
	return int(math.Round(pct))
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// WaterGlasses converts a water entry into glasses: four per liter plus one
// per cup, each part rounded on its own.
func WaterGlasses(w domain.WaterLog) float64 {
	return math.Round(sanitize(w.Liters)*4) + math.Round(sanitize(w.Cups))
}

// SleepHours is the logged sleep duration in hours.
func SleepHours(s domain.SleepLog) float64 { return s.DurationHours }

// WorkoutMinutes is the workout duration in minutes.
func WorkoutMinutes(w domain.WorkoutLog) float64 { return float64(w.DurationMinutes) }

// WorkoutCalories is the energy burned by a workout, in kcal.
func WorkoutCalories(w domain.WorkoutLog) float64 { return float64(w.Calories) }

// MealCalories is the energy of a meal, in kcal.
func MealCalories(m domain.MealLog) float64 { return float64(m.Calories) }

// MealProtein is a meal's protein in grams.
func MealProtein(m domain.MealLog) float64 { return float64(m.Protein) }

// MealCarbs is a meal's carbohydrates in grams.
func MealCarbs(m domain.MealLog) float64 { return float64(m.Carbs) }

// MealFats is a meal's fat in grams.
func MealFats(m domain.MealLog) float64 { return float64(m.Fats) }
