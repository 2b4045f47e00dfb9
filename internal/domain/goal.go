package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GoalType string

const (
	GoalFitness   GoalType = "fitness"
	GoalNutrition GoalType = "nutrition"
	GoalHydration GoalType = "hydration"
	GoalSleep     GoalType = "sleep"
)

func (t GoalType) IsValid() bool {
	switch t {
	case GoalFitness, GoalNutrition, GoalHydration, GoalSleep:
		return true
	}
	return false
}

// DefaultUnit is the unit a goal of this type is measured in.
func (t GoalType) DefaultUnit() string {
	switch t {
	case GoalFitness:
		return "min"
	case GoalNutrition:
		return "kcal"
	case GoalHydration:
		return "glasses"
	case GoalSleep:
		return "hours"
	}
	return ""
}

// Goal is a user-defined daily target. Actual is recomputed from today's
// aggregates and is not user-editable.
type Goal struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerEmail string             `bson:"ownerEmail" json:"ownerEmail"`
	Type       GoalType           `bson:"type" json:"type"`
	Target     float64            `bson:"target" json:"target"`
	Actual     float64            `bson:"actual" json:"actual"`
	Unit       string             `bson:"unit" json:"unit"`
	Icon       string             `bson:"icon,omitempty" json:"icon,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
