package handler

import (
	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

func metricsFromAPI(m api.DailyMetrics) model.DailyMetrics {
	metrics := model.DailyMetrics{
		SleepHours: m.SleepHours,
		Exercise: model.Exercise{
			Minutes: m.Exercise.Minutes,
			Type:    model.ExerciseType(m.Exercise.Type),
		},
		Steps:        m.Steps,
		WaterGlasses: m.WaterGlasses,
		Meals: model.Meals{
			Breakfast: m.Meals.Breakfast,
			Lunch:     m.Meals.Lunch,
			Dinner:    m.Meals.Dinner,
		},
		Notes: m.Notes,
	}
	if m.Medications != nil {
		metrics.Medications = model.Medications{
			Taken:      m.Medications.Taken,
			Prescribed: m.Medications.Prescribed,
		}
	}
	if m.Mood != nil {
		mood := model.Mood(*m.Mood)
		metrics.Mood = &mood
	}
	return metrics
}

func metricsToAPI(m model.DailyMetrics) api.DailyMetrics {
	metrics := api.DailyMetrics{
		SleepHours: m.SleepHours,
		Exercise: api.Exercise{
			Minutes: m.Exercise.Minutes,
			Type:    api.ExerciseType(m.Exercise.Type),
		},
		Steps:        m.Steps,
		WaterGlasses: m.WaterGlasses,
		Meals: api.Meals{
			Breakfast: m.Meals.Breakfast,
			Lunch:     m.Meals.Lunch,
			Dinner:    m.Meals.Dinner,
		},
		Medications: &api.Medications{
			Taken:      m.Medications.Taken,
			Prescribed: m.Medications.Prescribed,
		},
		Notes: m.Notes,
	}
	if m.Mood != nil {
		mood := api.Mood(*m.Mood)
		metrics.Mood = &mood
	}
	return metrics
}

func scoreToAPI(s model.ScoreBreakdown) api.ScoreBreakdown {
	return api.ScoreBreakdown{
		TotalScore: s.TotalScore,
		Breakdown: api.ComponentScores{
			Sleep:      s.Breakdown.Sleep,
			Exercise:   s.Breakdown.Exercise,
			Steps:      s.Breakdown.Steps,
			Water:      s.Breakdown.Water,
			Medication: s.Breakdown.Medication,
			Nutrition:  s.Breakdown.Nutrition,
		},
		Rating: string(s.Rating),
		Color:  s.Color,
	}
}

func entryToAPI(e model.HealthEntry) api.HealthEntry {
	return api.HealthEntry{
		Date:      stringToDate(e.Date),
		Metrics:   metricsToAPI(e.Metrics),
		Score:     scoreToAPI(e.Score),
		UpdatedAt: timePtr(e.UpdatedAt),
	}
}

func archiveToAPI(a model.ReportArchive) api.ReportArchive {
	return api.ReportArchive{
		Id:             stringToUUID(a.ID),
		UserId:         stringToUUID(a.UserID),
		DateRangeStart: stringToDate(a.DateRangeStart),
		DateRangeEnd:   stringToDate(a.DateRangeEnd),
		FilePath:       a.FilePath,
		GeneratedAt:    a.GeneratedAt,
	}
}

func accessTokenToAPI(t model.AccessToken) api.AccessToken {
	return api.AccessToken{
		Id:               stringToUUID(t.ID),
		Token:            t.Token,
		RecordId:         optionalUUID(t.RecordID),
		ExpiresAt:        t.ExpiresAt,
		AccessCount:      t.AccessCount,
		IsRevoked:        t.IsRevoked,
		RequiresPassword: t.RequiresPassword(),
		CreatedAt:        t.CreatedAt,
	}
}

func analyticsPreset(p api.RangePreset) analytics.Preset {
	return analytics.Preset(p)
}
