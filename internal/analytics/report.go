package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// Achievement labels
const (
	AchievementStreak7        = "7-Day Streak Champion"
	AchievementStreak14       = "14-Day Streak Warrior"
	AchievementExcellence     = "Health Excellence Badge"
	AchievementMedication     = "95%+ Medication Adherence"
	AchievementStepsClub      = "10,000 Steps Club (18+ days)"
	stepsClubDays             = 18
	medicationAchievementRate = 0.95
)

// GenerateReport wraps the period analytics with report-level figures.
// now supplies both the generation timestamp and the "today" key for the current score.
func GenerateReport(entries map[string]model.HealthEntry, startDate, endDate string, now time.Time) model.Report {
	result := ComputeAnalytics(entries, startDate, endDate)

	currentScore := result.AvgScore
	if today, ok := entries[now.Format(model.DateLayout)]; ok {
		currentScore = float64(today.Score.TotalScore)
	}

	return model.Report{
		GeneratedAt:     now,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalDays:       DaysBetween(startDate, endDate) + 1,
		CurrentScore:    currentScore,
		AvgScore:        result.AvgScore,
		Trend:           result.Trend,
		Streak:          result.Streak,
		BestStreak:      longestStreak(sortedEntries(entries)),
		DaysLogged:      len(entriesInRange(entries, startDate, endDate)),
		Components:      componentReports(result.ComponentAnalysis),
		Strengths:       result.Patterns.Strengths,
		Improvements:    result.Patterns.Improvements,
		Recommendations: result.Patterns.Recommendations,
		Achievements:    achievements(result),
		NextMilestone:   nextMilestone(result.Streak),
	}
}

func achievements(result model.AnalyticsResult) []string {
	unlocked := []string{}
	if result.Streak >= 7 {
		unlocked = append(unlocked, AchievementStreak7)
	}
	if result.Streak >= 14 {
		unlocked = append(unlocked, AchievementStreak14)
	}
	if result.AvgScore >= 80 {
		unlocked = append(unlocked, AchievementExcellence)
	}

	medication := result.ComponentAnalysis[model.MetricMedication]
	if medication.TotalDays > 0 &&
		float64(medication.DaysMetTarget) >= float64(medication.TotalDays)*medicationAchievementRate {
		unlocked = append(unlocked, AchievementMedication)
	}
	if result.ComponentAnalysis[model.MetricSteps].DaysMetTarget >= stepsClubDays {
		unlocked = append(unlocked, AchievementStepsClub)
	}
	return unlocked
}

func nextMilestone(streak int) string {
	switch {
	case streak >= 30:
		return "60-Day Streak - You're on fire!"
	case streak < 7:
		return fmt.Sprintf("7-Day Streak - Only %d days to go!", 7-streak)
	case streak < 14:
		return fmt.Sprintf("14-Day Streak - Only %d days to go!", 14-streak)
	default:
		return "30-Day Streak - Keep going!"
	}
}

// rescale maps a metric average onto its component weight
func rescale(average, full float64, weight int) int {
	return scoring.Round(math.Min(average, full) / full * float64(weight))
}

func componentReports(c map[model.Metric]model.ComponentAnalysis) map[model.Metric]model.ComponentReport {
	sleep := c[model.MetricSleep]
	exercise := c[model.MetricExercise]
	steps := c[model.MetricSteps]
	water := c[model.MetricWater]
	medication := c[model.MetricMedication]
	nutrition := c[model.MetricNutrition]

	return map[model.Metric]model.ComponentReport{
		model.MetricSleep: {
			Score:          rescale(sleep.Average, 8, scoring.SleepWeight),
			Average:        fixed(sleep.Average, 1) + " hours/night",
			Target:         "7-9 hrs",
			Best:           fmt.Sprintf("%s hrs (%s)", fixed(sleep.Best.Value, 1), sleep.Best.Date),
			Worst:          fmt.Sprintf("%s hrs (%s)", fixed(sleep.Worst.Value, 1), sleep.Worst.Date),
			Trend:          sleep.Trend,
			Recommendation: sleep.Insight,
		},
		model.MetricExercise: {
			Score:          rescale(exercise.Average, 30, scoring.ExerciseWeight),
			Average:        fixed(exercise.Average, 0) + " min/day",
			Target:         "30+ min",
			Best:           fmt.Sprintf("%s min (%s)", fixed(exercise.Best.Value, 0), exercise.Best.Date),
			Worst:          fmt.Sprintf("%s min (%s)", fixed(exercise.Worst.Value, 0), exercise.Worst.Date),
			Trend:          exercise.Trend,
			Recommendation: exercise.Insight,
		},
		model.MetricSteps: {
			Score:          rescale(steps.Average, 10000, scoring.StepsWeight),
			Average:        thousands(steps.Average) + " steps/day",
			Target:         "10,000",
			Best:           fmt.Sprintf("%s (%s)", thousands(steps.Best.Value), steps.Best.Date),
			Worst:          fmt.Sprintf("%s (%s)", thousands(steps.Worst.Value), steps.Worst.Date),
			Trend:          steps.Trend,
			Recommendation: steps.Insight,
		},
		model.MetricWater: {
			Score:          rescale(water.Average, 8, scoring.WaterWeight),
			Average:        fixed(water.Average, 1) + " glasses/day",
			Target:         "8 glasses",
			Best:           fmt.Sprintf("%s (%s)", fixed(water.Best.Value, 0), water.Best.Date),
			Worst:          fmt.Sprintf("%s (%s)", fixed(water.Worst.Value, 0), water.Worst.Date),
			Trend:          water.Trend,
			Recommendation: water.Insight,
		},
		model.MetricMedication: {
			Score:          rescale(medication.Average, 100, scoring.MedicationWeight),
			Average:        fixed(medication.Average, 0) + "% adherence",
			Target:         "100%",
			Best:           fmt.Sprintf("%s%% (%s)", fixed(medication.Best.Value, 0), medication.Best.Date),
			Worst:          fmt.Sprintf("%s%% (%s)", fixed(medication.Worst.Value, 0), medication.Worst.Date),
			Trend:          medication.Trend,
			Recommendation: medication.Insight,
		},
		model.MetricNutrition: {
			Score:          rescale(nutrition.Average, 100, scoring.NutritionWeight),
			Average:        fixed(nutrition.Average, 0) + "% meals logged",
			Target:         "3 meals",
			Best:           fmt.Sprintf("%s%% (%s)", fixed(nutrition.Best.Value, 0), nutrition.Best.Date),
			Worst:          fmt.Sprintf("%s%% (%s)", fixed(nutrition.Worst.Value, 0), nutrition.Worst.Date),
			Trend:          nutrition.Trend,
			Recommendation: nutrition.Insight,
		},
	}
}
