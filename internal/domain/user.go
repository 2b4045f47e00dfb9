package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account holder. The email is the owner key for every log,
// goal and profile lookup.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Email        string             `bson:"email" json:"email"`    // unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // never exposed
	PhoneNumber  string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Active       bool               `bson:"active" json:"active"`
	Profile      Profile            `bson:"profile" json:"profile"`
	AvatarKey    string             `bson:"avatarKey,omitempty" json:"-"` // object key in the avatar bucket
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Gender string

const (
	GenderMale           Gender = "Male"
	GenderFemale         Gender = "Female"
	GenderOther          Gender = "Other"
	GenderPreferNotToSay Gender = "Prefer not to say"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "Sedentary"
	ActivityLight      ActivityLevel = "Lightly Active"
	ActivityModerate   ActivityLevel = "Moderately Active"
	ActivityVeryActive ActivityLevel = "Very Active"
)

// HealthIssues is the fixed vocabulary accepted for recent and past issues.
var HealthIssues = []string{
	"Diabetes", "Hypertension", "Asthma", "Heart Disease", "Thyroid",
	"Arthritis", "Back Pain", "Migraine", "Anxiety", "Depression",
	"Insomnia", "Allergies", "None",
}

// Profile is replaced as a whole on update; there is no partial patch.
type Profile struct {
	Age                *int          `bson:"age,omitempty" json:"age,omitempty"`
	Height             *float64      `bson:"height,omitempty" json:"height,omitempty"` // cm
	Weight             *float64      `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Gender             Gender        `bson:"gender,omitempty" json:"gender,omitempty"`
	RecentHealthIssues []string      `bson:"recentHealthIssues,omitempty" json:"recentHealthIssues,omitempty"`
	PastHealthIssues   []string      `bson:"pastHealthIssues,omitempty" json:"pastHealthIssues,omitempty"`
	Goals              []string      `bson:"goals,omitempty" json:"goals,omitempty"`
	ActivityLevel      ActivityLevel `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
}

// Completed reports whether age, height and weight are all present.
func (p Profile) Completed() bool {
	return p.Age != nil && p.Height != nil && p.Weight != nil
}
