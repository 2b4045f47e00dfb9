package bodymetrics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellnest/tracker-api/internal/bodymetrics"
	"wellnest/tracker-api/internal/domain"
)

func TestBMI(t *testing.T) {
	bmi, ok := bodymetrics.BMI(180, 81)
	require.True(t, ok)
	assert.Equal(t, 25.0, bmi)
	assert.Equal(t, bodymetrics.CategoryOverweight, bodymetrics.BMICategory(bmi, ok))

	bmi, ok = bodymetrics.BMI(170, 65)
	require.True(t, ok)
	assert.Equal(t, 22.5, bmi)

	for _, in := range [][2]float64{{0, 70}, {170, 0}, {-1, 70}, {math.NaN(), 70}, {math.Inf(1), 70}} {
		_, ok := bodymetrics.BMI(in[0], in[1])
		assert.False(t, ok, "BMI(%v, %v)", in[0], in[1])
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{16, bodymetrics.CategoryUnderweight},
		{18.4, bodymetrics.CategoryUnderweight},
		{18.5, bodymetrics.CategoryNormal},
		{24.9, bodymetrics.CategoryNormal},
		{25, bodymetrics.CategoryOverweight},
		{29.9, bodymetrics.CategoryOverweight},
		{30, bodymetrics.CategoryObese},
		{41, bodymetrics.CategoryObese},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bodymetrics.BMICategory(tt.bmi, true), "bmi=%v", tt.bmi)
	}
	assert.Equal(t, bodymetrics.CategoryNotAvailable, bodymetrics.BMICategory(0, false))
}

func TestBMR(t *testing.T) {
	// 88.362 + 13.397*70 + 4.799*175 - 5.677*30 = 1695.667
	bmr, ok := bodymetrics.BMR(70, 175, 30, "male", bodymetrics.PolicyFemale)
	require.True(t, ok)
	assert.Equal(t, 1696, bmr)

	bmr, _ = bodymetrics.BMR(70, 175, 30, "MALE", bodymetrics.PolicyFemale)
	assert.Equal(t, 1696, bmr, "gender match is case-insensitive")

	// 447.593 + 9.247*60 + 3.098*165 - 4.330*25 = 1405.333
	bmr, ok = bodymetrics.BMR(60, 165, 25, "Female", bodymetrics.PolicyFemale)
	require.True(t, ok)
	assert.Equal(t, 1405, bmr)

	_, ok = bodymetrics.BMR(70, 175, 0, "male", bodymetrics.PolicyFemale)
	assert.False(t, ok)
}

func TestBMR_UnspecifiedGenderPolicy(t *testing.T) {
	female, _ := bodymetrics.BMR(70, 175, 30, "Prefer not to say", bodymetrics.PolicyFemale)
	assert.Equal(t, 1507, female)

	avg, _ := bodymetrics.BMR(70, 175, 30, "Prefer not to say", bodymetrics.PolicyAverage)
	assert.Equal(t, 1601, avg)

	// The policy never changes explicit genders.
	male, _ := bodymetrics.BMR(70, 175, 30, "Male", bodymetrics.PolicyAverage)
	assert.Equal(t, 1696, male)
}

func TestIdealWeightRangeKg(t *testing.T) {
	r, ok := bodymetrics.IdealWeightRangeKg(180, "male", bodymetrics.PolicyFemale)
	require.True(t, ok)
	assert.Equal(t, bodymetrics.WeightRange{Min: 70, Max: 80}, r)
	assert.Equal(t, "70-80 kg", r.String())

	r, _ = bodymetrics.IdealWeightRangeKg(165, "female", bodymetrics.PolicyFemale)
	assert.Equal(t, bodymetrics.WeightRange{Min: 52, Max: 62}, r)

	r, _ = bodymetrics.IdealWeightRangeKg(165, "Other", bodymetrics.PolicyAverage)
	assert.Equal(t, bodymetrics.WeightRange{Min: 54, Max: 64}, r)

	_, ok = bodymetrics.IdealWeightRangeKg(0, "male", bodymetrics.PolicyFemale)
	assert.False(t, ok)
}

func TestDailyWaterGoalLiters(t *testing.T) {
	l, ok := bodymetrics.DailyWaterGoalLiters(70)
	require.True(t, ok)
	assert.Equal(t, 2.3, l)

	_, ok = bodymetrics.DailyWaterGoalLiters(0)
	assert.False(t, ok)
}

func TestParseGenderPolicy(t *testing.T) {
	p, err := bodymetrics.ParseGenderPolicy("")
	require.NoError(t, err)
	assert.Equal(t, bodymetrics.PolicyFemale, p)

	p, err = bodymetrics.ParseGenderPolicy(" Average ")
	require.NoError(t, err)
	assert.Equal(t, bodymetrics.PolicyAverage, p)

	_, err = bodymetrics.ParseGenderPolicy("binary")
	assert.Error(t, err)
}

func TestCalculatorForProfile(t *testing.T) {
	age, height, weight := 30, 180.0, 81.0
	calc := bodymetrics.Calculator{Policy: bodymetrics.PolicyFemale}

	m := calc.ForProfile(domain.Profile{Age: &age, Height: &height, Weight: &weight, Gender: domain.GenderMale})
	require.NotNil(t, m.BMI)
	assert.Equal(t, 25.0, *m.BMI)
	assert.Equal(t, bodymetrics.CategoryOverweight, m.BMICategory)
	require.NotNil(t, m.BMR)
	require.NotNil(t, m.IdealWeight)
	require.NotNil(t, m.WaterGoalLiters)
	assert.Equal(t, 2.7, *m.WaterGoalLiters)
	assert.Equal(t, "2.7 L", m.WaterGoalLabel)
	assert.True(t, m.ProfileCompleted)

	empty := calc.ForProfile(domain.Profile{})
	assert.Nil(t, empty.BMI)
	assert.Nil(t, empty.BMR)
	assert.Nil(t, empty.IdealWeight)
	assert.Nil(t, empty.WaterGoalLiters)
	assert.Equal(t, bodymetrics.CategoryNotAvailable, empty.BMICategory)
	assert.Equal(t, bodymetrics.DefaultWaterGoalLabel, empty.WaterGoalLabel)
	assert.False(t, empty.ProfileCompleted)
}
