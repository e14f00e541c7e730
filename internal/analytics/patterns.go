package analytics

import (
	"fmt"
	"time"

	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// minPatternEntries is the number of entries needed before patterns are reported
const minPatternEntries = 3

// patternRule inspects the period and appends its findings
type patternRule func(entries []model.HealthEntry, p *model.Patterns)

// patternRules run in order; the order fixes the order of the emitted strings
var patternRules = []patternRule{
	weekendActivityRule,
	medicationAdherenceRule,
	sleepConsistencyRule,
	weekdayWaterRule,
	highScoreRule,
	exerciseVarietyRule,
}

func emptyPatterns() model.Patterns {
	return model.Patterns{
		Strengths:       []string{},
		Improvements:    []string{},
		Recommendations: []string{},
	}
}

func detectPatterns(entries []model.HealthEntry) model.Patterns {
	patterns := emptyPatterns()
	if len(entries) < minPatternEntries {
		return patterns
	}

	for _, rule := range patternRules {
		rule(entries, &patterns)
	}
	return patterns
}

func isWeekend(date string) bool {
	day, ok := weekday(date)
	return ok && (day == time.Saturday || day == time.Sunday)
}

func averageOf(entries []model.HealthEntry, value func(model.HealthEntry) float64) float64 {
	values := make([]float64, len(entries))
	for i, entry := range entries {
		values[i] = value(entry)
	}
	return mean(values)
}

func exerciseMinutes(e model.HealthEntry) float64 { return float64(e.Metrics.Exercise.Minutes) }
func stepCount(e model.HealthEntry) float64       { return float64(e.Metrics.Steps) }
func waterGlasses(e model.HealthEntry) float64    { return float64(e.Metrics.WaterGlasses) }

func weekendActivityRule(entries []model.HealthEntry, p *model.Patterns) {
	var weekdays, weekends []model.HealthEntry
	for _, entry := range entries {
		if isWeekend(entry.Date) {
			weekends = append(weekends, entry)
		} else {
			weekdays = append(weekdays, entry)
		}
	}
	if len(weekdays) == 0 || len(weekends) == 0 {
		return
	}

	weekdayExercise := averageOf(weekdays, exerciseMinutes)
	weekendExercise := averageOf(weekends, exerciseMinutes)
	if weekendExercise < weekdayExercise*0.6 && weekdayExercise > 0 {
		drop := scoring.Round((1 - weekendExercise/weekdayExercise) * 100)
		p.Improvements = append(p.Improvements, fmt.Sprintf("Weekend activity %d%% lower than weekdays", drop))
		p.Recommendations = append(p.Recommendations, "Set weekend morning workout reminders")
	}

	weekdaySteps := averageOf(weekdays, stepCount)
	weekendSteps := averageOf(weekends, stepCount)
	if weekendSteps < weekdaySteps*0.6 && weekdaySteps > 0 {
		p.Improvements = append(p.Improvements, "Weekend steps significantly lower than weekdays")
		p.Recommendations = append(p.Recommendations, "Plan weekend outdoor activities")
	}
}

func medicationAdherenceRule(entries []model.HealthEntry, p *model.Patterns) {
	adherence := averageOf(entries, func(e model.HealthEntry) float64 {
		return scoring.Adherence(e.Metrics.Medications)
	})

	switch {
	case adherence >= 95:
		p.Strengths = append(p.Strengths,
			fmt.Sprintf("Excellent medication adherence (%d%%)", scoring.Round(adherence)))
	case adherence < 80:
		p.Improvements = append(p.Improvements,
			fmt.Sprintf("Medication adherence at %d%%", scoring.Round(adherence)))
		p.Recommendations = append(p.Recommendations, "Set daily medication reminders")
	}
}

func sleepConsistencyRule(entries []model.HealthEntry, p *model.Patterns) {
	good := 0
	for _, entry := range entries {
		if metTarget(model.MetricSleep, entry.Metrics.SleepHours) {
			good++
		}
	}

	consistency := float64(good) / float64(len(entries)) * 100
	if consistency >= 80 {
		p.Strengths = append(p.Strengths,
			fmt.Sprintf("Consistent sleep pattern (%d%% optimal)", scoring.Round(consistency)))
	}
}

// weekdayWaterRule reports only the first day of the week, Sunday first, averaging under 6 glasses
func weekdayWaterRule(entries []model.HealthEntry, p *model.Patterns) {
	byDay := make(map[time.Weekday][]model.HealthEntry)
	for _, entry := range entries {
		if day, ok := weekday(entry.Date); ok {
			byDay[day] = append(byDay[day], entry)
		}
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		dayEntries := byDay[day]
		if len(dayEntries) == 0 {
			continue
		}

		avg := averageOf(dayEntries, waterGlasses)
		if avg < 6 {
			p.Improvements = append(p.Improvements,
				fmt.Sprintf("%s water intake below target (%s glasses)", day, fixed(avg, 1)))
			p.Recommendations = append(p.Recommendations,
				fmt.Sprintf("Prepare water bottle the night before %s", day))
			return
		}
	}
}

func highScoreRule(entries []model.HealthEntry, p *model.Patterns) {
	if averageScore(entries) >= 80 {
		p.Strengths = append(p.Strengths, "Consistently high health scores")
	}
}

func exerciseVarietyRule(entries []model.HealthEntry, p *model.Patterns) {
	types := make(map[model.ExerciseType]struct{})
	for _, entry := range entries {
		e := entry.Metrics.Exercise
		if e.Minutes > 0 && e.Type != model.ExerciseNone {
			types[e.Type] = struct{}{}
		}
	}

	if len(types) >= 3 {
		p.Strengths = append(p.Strengths, "Diverse exercise routine with multiple activity types")
	}
}
