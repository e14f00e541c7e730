// Package scoring turns one day of tracked metrics into a weighted 0-100 health score.
package scoring

import (
	"math"

	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// Component weights, summing to 100
const (
	SleepWeight      = 25
	ExerciseWeight   = 20
	StepsWeight      = 15
	WaterWeight      = 10
	MedicationWeight = 20
	NutritionWeight  = 10
)

// GoodScoreThreshold is the minimum total score counted towards a streak
const GoodScoreThreshold = 70

var exerciseMultipliers = map[model.ExerciseType]float64{
	model.ExerciseCardio:   1.0,
	model.ExerciseStrength: 1.0,
	model.ExerciseYoga:     0.95,
	model.ExerciseSports:   1.05,
	model.ExerciseNone:     0,
}

var ratingColors = map[model.Rating]string{
	model.RatingExcellent:        "hsl(142, 76%, 36%)",
	model.RatingGood:             "hsl(199, 89%, 48%)",
	model.RatingFair:             "hsl(45, 93%, 47%)",
	model.RatingNeedsImprovement: "hsl(0, 84%, 60%)",
}

const defaultColor = "hsl(215, 20%, 65%)"

// Round rounds half away from zero for the non-negative values scored here
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func scaled(weight int, fraction float64) int {
	return Round(float64(weight) * fraction)
}

// ComputeScore scores one day. It is pure: the same metrics always yield the same breakdown.
func ComputeScore(m model.DailyMetrics) model.ScoreBreakdown {
	breakdown := model.ComponentScores{
		Sleep:      SleepScore(m.SleepHours),
		Exercise:   ExerciseScore(m.Exercise),
		Steps:      StepsScore(m.Steps),
		Water:      WaterScore(m.WaterGlasses),
		Medication: MedicationScore(m.Medications),
		Nutrition:  NutritionScore(m.Meals),
	}

	total := breakdown.Sum()
	rating := RatingFor(total)

	return model.ScoreBreakdown{
		TotalScore: total,
		Breakdown:  breakdown,
		Rating:     rating,
		Color:      ColorFor(rating),
	}
}

// SleepScore scores sleep duration, optimal between 7 and 9 hours
func SleepScore(hours float64) int {
	switch {
	case hours >= 7 && hours <= 9:
		return SleepWeight
	case hours >= 6 && hours < 7:
		return scaled(SleepWeight, 0.8)
	case hours > 9 && hours <= 10:
		return scaled(SleepWeight, 0.85)
	case hours >= 5 && hours < 6:
		return scaled(SleepWeight, 0.6)
	case hours > 10:
		return scaled(SleepWeight, 0.7)
	case hours >= 4 && hours < 5:
		return scaled(SleepWeight, 0.4)
	default:
		return Round(float64(SleepWeight) * (hours / 7) * 0.5)
	}
}

// ExerciseScore scores workout minutes with a per-type multiplier, capped at the weight
func ExerciseScore(e model.Exercise) int {
	if e.Type == model.ExerciseNone || e.Minutes == 0 {
		return 0
	}

	var base int
	switch {
	case e.Minutes >= 30:
		base = ExerciseWeight
	case e.Minutes >= 20:
		base = scaled(ExerciseWeight, 0.8)
	case e.Minutes >= 15:
		base = scaled(ExerciseWeight, 0.6)
	case e.Minutes >= 10:
		base = scaled(ExerciseWeight, 0.4)
	default:
		base = Round(float64(ExerciseWeight) * (float64(e.Minutes) / 30))
	}

	multiplier, ok := exerciseMultipliers[e.Type]
	if !ok {
		multiplier = 1
	}

	return min(ExerciseWeight, Round(float64(base)*multiplier))
}

// StepsScore scores the daily step count against 10,000
func StepsScore(steps int) int {
	switch {
	case steps >= 10000:
		return StepsWeight
	case steps >= 7500:
		return scaled(StepsWeight, 0.85)
	case steps >= 5000:
		return scaled(StepsWeight, 0.7)
	case steps >= 2500:
		return scaled(StepsWeight, 0.5)
	default:
		return Round(float64(StepsWeight) * (float64(steps) / 10000))
	}
}

// WaterScore scores glasses of water against 8
func WaterScore(glasses int) int {
	switch {
	case glasses >= 8:
		return WaterWeight
	case glasses >= 6:
		return scaled(WaterWeight, 0.8)
	case glasses >= 4:
		return scaled(WaterWeight, 0.6)
	default:
		return Round(float64(WaterWeight) * (float64(glasses) / 8))
	}
}

// MedicationScore scores adherence; nothing prescribed earns the full weight
func MedicationScore(meds model.Medications) int {
	if len(meds.Prescribed) == 0 {
		return MedicationWeight
	}
	return Round(float64(MedicationWeight) * adherenceRate(meds))
}

// NutritionScore scores the number of meals logged out of three
func NutritionScore(meals model.Meals) int {
	return Round(float64(NutritionWeight) * (float64(meals.Count()) / 3))
}

// Adherence returns the percentage of prescribed medications taken, 100 when none are prescribed
func Adherence(meds model.Medications) float64 {
	if len(meds.Prescribed) == 0 {
		return 100
	}
	return adherenceRate(meds) * 100
}

// adherenceRate counts distinct taken names that are actually prescribed
func adherenceRate(meds model.Medications) float64 {
	prescribed := make(map[string]struct{}, len(meds.Prescribed))
	for _, name := range meds.Prescribed {
		prescribed[name] = struct{}{}
	}

	taken := make(map[string]struct{}, len(meds.Taken))
	for _, name := range meds.Taken {
		if _, ok := prescribed[name]; ok {
			taken[name] = struct{}{}
		}
	}

	return float64(len(taken)) / float64(len(prescribed))
}

// RatingFor maps a total score to its tier
func RatingFor(total int) model.Rating {
	switch {
	case total >= 85:
		return model.RatingExcellent
	case total >= 70:
		return model.RatingGood
	case total >= 50:
		return model.RatingFair
	default:
		return model.RatingNeedsImprovement
	}
}

// ColorFor returns the display color of a rating
func ColorFor(rating model.Rating) string {
	if color, ok := ratingColors[rating]; ok {
		return color
	}
	return defaultColor
}
