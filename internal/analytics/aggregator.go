// Package analytics rolls scored daily entries up into period analytics and reports.
package analytics

import (
	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

const notAvailable = "N/A"

// ComputeAnalytics aggregates the entries dated within [startDate, endDate].
//
// The previous period is the window of equal length ending the day before startDate. When it holds
// no entries the current average is used as the baseline, so the trend reads 0.
func ComputeAnalytics(entries map[string]model.HealthEntry, startDate, endDate string) model.AnalyticsResult {
	current := entriesInRange(entries, startDate, endDate)
	if len(current) == 0 {
		return emptyAnalytics()
	}

	avgScore := averageScore(current)

	best := current[0]
	for _, entry := range current[1:] {
		if entry.Score.TotalScore > best.Score.TotalScore {
			best = entry
		}
	}

	periodLength := DaysBetween(startDate, endDate) + 1
	previous := entriesInRange(entries, AddDays(startDate, -periodLength), AddDays(startDate, -1))

	prevAvg := avgScore
	if len(previous) > 0 {
		prevAvg = averageScore(previous)
	}

	dailyData := make([]model.DailyScore, 0, len(current))
	for _, entry := range current {
		dailyData = append(dailyData, model.DailyScore{
			Date:            entry.Date,
			TotalScore:      entry.Score.TotalScore,
			ComponentScores: entry.Score.Breakdown,
		})
	}

	components := make(map[model.Metric]model.ComponentAnalysis, len(model.AllMetrics))
	for _, metric := range model.AllMetrics {
		components[metric] = analyzeComponent(metric, current, previous)
	}

	return model.AnalyticsResult{
		AvgScore: avgScore,
		BestScore: model.BestScore{
			Score: best.Score.TotalScore,
			Date:  ShortDate(best.Date),
		},
		Streak:            trailingStreak(current),
		Trend:             percentChange(avgScore, prevAvg),
		DailyData:         dailyData,
		ComponentAnalysis: components,
		Patterns:          detectPatterns(current),
	}
}

func averageScore(entries []model.HealthEntry) float64 {
	scores := make([]float64, len(entries))
	for i, entry := range entries {
		scores[i] = float64(entry.Score.TotalScore)
	}
	return mean(scores)
}

// trailingStreak counts good days walking backwards from the newest entry
func trailingStreak(sorted []model.HealthEntry) int {
	streak := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Score.TotalScore < scoring.GoodScoreThreshold {
			break
		}
		streak++
	}
	return streak
}

// longestStreak finds the longest run of good days in the sorted entries
func longestStreak(sorted []model.HealthEntry) int {
	best, run := 0, 0
	for _, entry := range sorted {
		if entry.Score.TotalScore >= scoring.GoodScoreThreshold {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}
	return best
}

func emptyAnalytics() model.AnalyticsResult {
	components := make(map[model.Metric]model.ComponentAnalysis, len(model.AllMetrics))
	for _, metric := range model.AllMetrics {
		components[metric] = emptyComponent(metric)
	}

	return model.AnalyticsResult{
		BestScore:         model.BestScore{Score: 0, Date: notAvailable},
		DailyData:         []model.DailyScore{},
		ComponentAnalysis: components,
		Patterns:          emptyPatterns(),
	}
}
