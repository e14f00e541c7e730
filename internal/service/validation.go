package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

const maxSleepHours = 12

var validExerciseTypes = map[model.ExerciseType]bool{
	model.ExerciseCardio:   true,
	model.ExerciseStrength: true,
	model.ExerciseYoga:     true,
	model.ExerciseSports:   true,
	model.ExerciseNone:     true,
}

var validMoods = map[model.Mood]bool{
	model.MoodHappy:    true,
	model.MoodNeutral:  true,
	model.MoodSad:      true,
	model.MoodStressed: true,
	model.MoodAnxious:  true,
}

// ValidateMetrics rejects metrics outside the ranges the score calculator expects.
// An empty exercise type is accepted and treated as none.
func ValidateMetrics(m model.DailyMetrics) error {
	if m.SleepHours < 0 || m.SleepHours > maxSleepHours {
		return validationError("sleep hours must be between 0 and %d", maxSleepHours)
	}
	if m.Exercise.Minutes < 0 {
		return validationError("exercise minutes must not be negative")
	}
	if m.Exercise.Type != "" && !validExerciseTypes[m.Exercise.Type] {
		return validationError("invalid exercise type: %s", m.Exercise.Type)
	}
	if m.Steps < 0 {
		return validationError("steps must not be negative")
	}
	if m.WaterGlasses < 0 {
		return validationError("water glasses must not be negative")
	}
	if m.Mood != nil && !validMoods[*m.Mood] {
		return validationError("invalid mood: %s", *m.Mood)
	}
	return nil
}

// normalizeMetrics defaults the exercise type and keeps only taken names that are prescribed
func normalizeMetrics(m model.DailyMetrics) model.DailyMetrics {
	if m.Exercise.Type == "" {
		m.Exercise.Type = model.ExerciseNone
	}

	prescribed := uniqueTrimmed(m.Medications.Prescribed)
	isPrescribed := make(map[string]bool, len(prescribed))
	for _, name := range prescribed {
		isPrescribed[name] = true
	}

	taken := []string{}
	for _, name := range uniqueTrimmed(m.Medications.Taken) {
		if isPrescribed[name] {
			taken = append(taken, name)
		}
	}

	m.Medications = model.Medications{Taken: taken, Prescribed: prescribed}
	return m
}

func uniqueTrimmed(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := []string{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func validateUserID(userID string) error {
	if userID == "" {
		return validationError("user ID is required")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return validationError("user ID must be a UUID")
	}
	return nil
}

func validateDate(date string) error {
	if _, err := analytics.ParseDate(date); err != nil {
		return validationError("invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}
