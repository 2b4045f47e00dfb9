package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind identifies which tracker a log entry belongs to.
type Kind string

const (
	KindWater   Kind = "water"
	KindSleep   Kind = "sleep"
	KindWorkout Kind = "workout"
	KindMeal    Kind = "meal"
)

// LogMeta holds the fields every log entry shares.
// A nil or zero Timestamp means the entry has no usable time and is left
// out of time-bucketed aggregates.
type LogMeta struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerEmail string             `bson:"ownerEmail" json:"ownerEmail"`
	Timestamp  *time.Time         `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// Time returns the entry timestamp and whether it is usable.
func (m LogMeta) Time() (time.Time, bool) {
	if m.Timestamp == nil || m.Timestamp.IsZero() {
		return time.Time{}, false
	}
	return *m.Timestamp, true
}

// Entry is implemented by every log variant (water, sleep, workout, meal).
type Entry interface {
	Kind() Kind
	Meta() LogMeta
}

// Loggable is an Entry that can be re-stamped with store-assigned metadata.
// Stores use it to hand back the persisted value with its ID set.
type Loggable[E any] interface {
	Entry
	WithMeta(meta LogMeta) E
}

// WaterLog records a drink. Liters and cups are both optional and additive.
type WaterLog struct {
	LogMeta `bson:",inline"`
	Liters  float64 `bson:"liters" json:"liters"`
	Cups    float64 `bson:"cups" json:"cups"`
}

func (w WaterLog) Kind() Kind    { return KindWater }
func (w WaterLog) Meta() LogMeta { return w.LogMeta }
func (w WaterLog) WithMeta(meta LogMeta) WaterLog {
	w.LogMeta = meta
	return w
}

// SleepLog records one sleep session.
type SleepLog struct {
	LogMeta       `bson:",inline"`
	DurationHours float64 `bson:"durationHours" json:"durationHours"`
	Notes         string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (s SleepLog) Kind() Kind    { return KindSleep }
func (s SleepLog) Meta() LogMeta { return s.LogMeta }
func (s SleepLog) WithMeta(meta LogMeta) SleepLog {
	s.LogMeta = meta
	return s
}

// ExerciseType enumerates the workout categories offered by the tracker.
type ExerciseType string

const (
	ExerciseCardio   ExerciseType = "Cardio"
	ExerciseStrength ExerciseType = "Strength"
	ExerciseYoga     ExerciseType = "Yoga"
	ExerciseHIIT     ExerciseType = "HIIT"
	ExerciseCycling  ExerciseType = "Cycling"
	ExerciseRunning  ExerciseType = "Running"
	ExerciseSwimming ExerciseType = "Swimming"
	ExerciseOther    ExerciseType = "Other"
)

// IsValid reports whether t is one of the known exercise types.
func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseCardio, ExerciseStrength, ExerciseYoga, ExerciseHIIT,
		ExerciseCycling, ExerciseRunning, ExerciseSwimming, ExerciseOther:
		return true
	}
	return false
}

// WorkoutLog records one exercise session.
type WorkoutLog struct {
	LogMeta         `bson:",inline"`
	ExerciseType    ExerciseType `bson:"exerciseType" json:"exerciseType"`
	DurationMinutes int          `bson:"durationMinutes" json:"durationMinutes"`
	Calories        int          `bson:"calories" json:"calories"`
}

func (w WorkoutLog) Kind() Kind    { return KindWorkout }
func (w WorkoutLog) Meta() LogMeta { return w.LogMeta }
func (w WorkoutLog) WithMeta(meta LogMeta) WorkoutLog {
	w.LogMeta = meta
	return w
}

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// MealTypes lists meal types in the order the dashboard shows them.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

func (t MealType) IsValid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

type FoodType string

const (
	FoodVeg    FoodType = "Veg"
	FoodNonVeg FoodType = "Non-Veg"
)

func (t FoodType) IsValid() bool {
	return t == FoodVeg || t == FoodNonVeg
}

// MealLog records one meal with its macro breakdown.
type MealLog struct {
	LogMeta  `bson:",inline"`
	MealType MealType `bson:"mealType" json:"mealType"`
	FoodType FoodType `bson:"foodType" json:"foodType"`
	Calories int      `bson:"calories" json:"calories"`
	Protein  int      `bson:"protein" json:"protein"`
	Carbs    int      `bson:"carbs" json:"carbs"`
	Fats     int      `bson:"fats" json:"fats"`
	Notes    string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (m MealLog) Kind() Kind    { return KindMeal }
func (m MealLog) Meta() LogMeta { return m.LogMeta }
func (m MealLog) WithMeta(meta LogMeta) MealLog {
	m.LogMeta = meta
	return m
}
