// Package bodymetrics derives BMI, BMR, ideal weight and a water goal from
// a user profile. Every function reports ok=false instead of failing when
// an input it needs is missing or not positive.
package bodymetrics

import (
	"fmt"
	"math"
	"strings"

	"wellnest/tracker-api/internal/domain"
)

const (
	CategoryUnderweight  = "Underweight"
	CategoryNormal       = "Normal"
	CategoryOverweight   = "Overweight"
	CategoryObese        = "Obese"
	CategoryNotAvailable = "Not Available"

	// DefaultWaterGoalLabel is shown when no weight is known.
	DefaultWaterGoalLabel = "2-3 L"
)

// GenderPolicy chooses the coefficients used for a gender that is neither
// "male" nor "female".
type GenderPolicy string

const (
	// PolicyFemale applies the female coefficients (the historical default).
	PolicyFemale GenderPolicy = "female"
	// PolicyAverage applies the mean of the male and female results.
	PolicyAverage GenderPolicy = "average"
)

// ParseGenderPolicy accepts "female", "average" or "" (female).
func ParseGenderPolicy(s string) (GenderPolicy, error) {
	switch GenderPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyFemale:
		return PolicyFemale, nil
	case PolicyAverage:
		return PolicyAverage, nil
	}
	return "", fmt.Errorf("unknown gender policy %q", s)
}

type sex int

const (
	sexMale sex = iota
	sexFemale
	sexUnspecified
)

func classify(gender string) sex {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return sexMale
	case "female":
		return sexFemale
	}
	return sexUnspecified
}

// blend evaluates male/female variants of a formula for gender under policy.
func (p GenderPolicy) blend(gender string, male, female float64) float64 {
	switch classify(gender) {
	case sexMale:
		return male
	case sexFemale:
		return female
	}
	if p == PolicyAverage {
		return (male + female) / 2
	}
	return female
}

// BMI is weight / (height in meters)^2, rounded to one decimal.
func BMI(heightCm, weightKg float64) (float64, bool) {
	if !positive(heightCm) || !positive(weightKg) {
		return 0, false
	}
	m := heightCm / 100
	return round1(weightKg / (m * m)), true
}

// BMICategory buckets a BMI; ok=false yields "Not Available".
func BMICategory(bmi float64, ok bool) string {
	if !ok {
		return CategoryNotAvailable
	}
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// BMR uses the revised Harris-Benedict equation, rounded to a whole kcal.
func BMR(weightKg, heightCm float64, age int, gender string, policy GenderPolicy) (int, bool) {
	if !positive(weightKg) || !positive(heightCm) || age <= 0 {
		return 0, false
	}
	a := float64(age)
	male := 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*a
	female := 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*a
	return int(math.Round(policy.blend(gender, male, female))), true
}

// WeightRange is an inclusive range in whole kilograms.
type WeightRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r WeightRange) String() string {
	return fmt.Sprintf("%d-%d kg", r.Min, r.Max)
}

// IdealWeightRangeKg is the Devine-style base weight ±5 kg.
func IdealWeightRangeKg(heightCm float64, gender string, policy GenderPolicy) (WeightRange, bool) {
	if !positive(heightCm) {
		return WeightRange{}, false
	}
	over := 0.91 * (heightCm - 152.4)
	base := policy.blend(gender, 50+over, 45.5+over)
	return WeightRange{
		Min: int(math.Round(base - 5)),
		Max: int(math.Round(base + 5)),
	}, true
}

// DailyWaterGoalLiters is 33 ml per kg of body weight, one decimal.
func DailyWaterGoalLiters(weightKg float64) (float64, bool) {
	if !positive(weightKg) {
		return 0, false
	}
	return round1(weightKg * 0.033), true
}

// Metrics is the derived-metrics block shown next to a profile.
// Pointer fields are nil when the inputs were missing.
type Metrics struct {
	BMI              *float64     `json:"bmi"`
	BMICategory      string       `json:"bmiCategory"`
	BMR              *int         `json:"bmr"`
	IdealWeight      *WeightRange `json:"idealWeight"`
	WaterGoalLiters  *float64     `json:"waterGoalLiters"`
	WaterGoalLabel   string       `json:"waterGoalLabel"`
	ProfileCompleted bool         `json:"profileCompleted"`
}

// Calculator holds the configured gender policy.
type Calculator struct {
	Policy GenderPolicy
}

// ForProfile computes every metric the profile has inputs for.
func (c Calculator) ForProfile(p domain.Profile) Metrics {
	m := Metrics{ProfileCompleted: p.Completed(), BMICategory: CategoryNotAvailable, WaterGoalLabel: DefaultWaterGoalLabel}
	gender := string(p.Gender)

	if p.Height != nil && p.Weight != nil {
		if bmi, ok := BMI(*p.Height, *p.Weight); ok {
			m.BMI = &bmi
			m.BMICategory = BMICategory(bmi, true)
		}
	}
	if p.Height != nil && p.Weight != nil && p.Age != nil {
		if bmr, ok := BMR(*p.Weight, *p.Height, *p.Age, gender, c.Policy); ok {
			m.BMR = &bmr
		}
	}
	if p.Height != nil {
		if r, ok := IdealWeightRangeKg(*p.Height, gender, c.Policy); ok {
			m.IdealWeight = &r
		}
	}
	if p.Weight != nil {
		if liters, ok := DailyWaterGoalLiters(*p.Weight); ok {
			m.WaterGoalLiters = &liters
			m.WaterGoalLabel = fmt.Sprintf("%.1f L", liters)
		}
	}
	return m
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
