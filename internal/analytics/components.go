package analytics

import (
	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// Target describes the daily goal of a metric
type Target struct {
	Min   float64
	Max   float64
	Unit  string
	Label string
}

// Targets holds the daily goal of every metric
var Targets = map[model.Metric]Target{
	model.MetricSleep:      {Min: 7, Max: 9, Unit: "hrs/night", Label: "7-9 hours"},
	model.MetricExercise:   {Min: 30, Max: 300, Unit: "min", Label: "30+ min"},
	model.MetricSteps:      {Min: 10000, Max: 50000, Unit: "steps", Label: "10,000"},
	model.MetricWater:      {Min: 8, Max: 12, Unit: "glasses", Label: "8 glasses"},
	model.MetricMedication: {Min: 100, Max: 100, Unit: "%", Label: "100%"},
	model.MetricNutrition:  {Min: 100, Max: 100, Unit: "%", Label: "3 meals"},
}

const startTrackingInsight = "Start tracking to see insights!"

// MetricValue extracts the raw daily value of a metric from an entry
func MetricValue(entry model.HealthEntry, metric model.Metric) float64 {
	m := entry.Metrics
	switch metric {
	case model.MetricSleep:
		return m.SleepHours
	case model.MetricExercise:
		return float64(m.Exercise.Minutes)
	case model.MetricSteps:
		return float64(m.Steps)
	case model.MetricWater:
		return float64(m.WaterGlasses)
	case model.MetricMedication:
		return scoring.Adherence(m.Medications)
	case model.MetricNutrition:
		return float64(m.Meals.Count()) / 3 * 100
	default:
		return 0
	}
}

// metTarget applies the metric-specific daily goal
func metTarget(metric model.Metric, value float64) bool {
	switch metric {
	case model.MetricSleep:
		return value >= 7 && value <= 9
	case model.MetricMedication, model.MetricNutrition:
		return value >= 100
	default:
		return value >= Targets[metric].Min
	}
}

func metricValues(entries []model.HealthEntry, metric model.Metric) []float64 {
	values := make([]float64, len(entries))
	for i, entry := range entries {
		values[i] = MetricValue(entry, metric)
	}
	return values
}

func analyzeComponent(metric model.Metric, current, previous []model.HealthEntry) model.ComponentAnalysis {
	target := Targets[metric]
	values := metricValues(current, metric)
	average := mean(values)

	best := model.MetricPoint{Value: values[0], Date: current[0].Date}
	worst := best
	daysMet := 0
	for i, v := range values {
		if v > best.Value {
			best = model.MetricPoint{Value: v, Date: current[i].Date}
		}
		if v < worst.Value {
			worst = model.MetricPoint{Value: v, Date: current[i].Date}
		}
		if metTarget(metric, v) {
			daysMet++
		}
	}

	prevAvg := average
	if len(previous) > 0 {
		prevAvg = mean(metricValues(previous, metric))
	}

	insight, alert := generateInsight(metric, average, float64(daysMet)/float64(len(values)))

	best.Date = ShortDate(best.Date)
	worst.Date = ShortDate(worst.Date)

	return model.ComponentAnalysis{
		Metric:        metric,
		Average:       average,
		Target:        target.Label,
		Unit:          target.Unit,
		Best:          best,
		Worst:         worst,
		DaysMetTarget: daysMet,
		TotalDays:     len(values),
		Trend:         percentChange(average, prevAvg),
		Insight:       insight,
		Alert:         alert,
	}
}

func emptyComponent(metric model.Metric) model.ComponentAnalysis {
	target := Targets[metric]
	return model.ComponentAnalysis{
		Metric:  metric,
		Target:  target.Label,
		Unit:    target.Unit,
		Best:    model.MetricPoint{Date: notAvailable},
		Worst:   model.MetricPoint{Date: notAvailable},
		Insight: startTrackingInsight,
	}
}

// generateInsight selects copy from the per-metric decision table.
// targetShare is the fraction of days meeting the target.
func generateInsight(metric model.Metric, average, targetShare float64) (string, *string) {
	percentage := scoring.Round(targetShare * 100)

	switch metric {
	case model.MetricSleep:
		switch {
		case average >= 7 && average <= 9 && percentage >= 80:
			return "Excellent sleep consistency! Keep up the great work.", nil
		case average < 6:
			return "Sleep duration is below the recommended 7-9 hours.",
				alert("Try setting a consistent bedtime to improve sleep quality.")
		case average > 9:
			return "You might be oversleeping. Consider a more consistent schedule.", nil
		}
		return "Your sleep pattern is developing. Aim for 7-9 hours consistently.", nil

	case model.MetricExercise:
		switch {
		case average >= 30 && percentage >= 80:
			return "Outstanding exercise routine! You're meeting daily targets.", nil
		case average < 15:
			return "Exercise levels are low.", alert("Start with 15-minute walks to build a habit.")
		}
		return "Good effort! Try to reach 30 minutes daily for optimal health.", nil

	case model.MetricSteps:
		switch {
		case average >= 10000:
			return "Excellent step count! You're highly active.", nil
		case average < 5000:
			return "Step count is below recommended levels.", alert("Try taking short walks during breaks.")
		}
		return "Good progress! Aim for 10,000 steps daily.", nil

	case model.MetricWater:
		switch {
		case average >= 8:
			return "Great hydration habits!", nil
		case average < 6:
			return "Water intake is below target.", alert("Set hourly reminders to drink water.")
		}
		return "Almost there! Try adding one more glass daily.", nil

	case model.MetricMedication:
		switch {
		case percentage >= 95:
			return "Excellent medication adherence! Keep it up.", nil
		case percentage < 80:
			return "Medication adherence needs improvement.",
				alert("Set daily alarms to remind you to take medications.")
		}
		return "Good medication tracking. Aim for 100% adherence.", nil

	case model.MetricNutrition:
		switch {
		case percentage >= 90:
			return "Consistent meal logging! Great job.", nil
		case percentage < 60:
			return "Meal logging is inconsistent.", alert("Enable meal reminders to improve tracking.")
		}
		return "Good progress on meal tracking. Try to log all 3 meals.", nil
	}

	return "Keep tracking for more insights!", nil
}

func alert(s string) *string {
	return &s
}
