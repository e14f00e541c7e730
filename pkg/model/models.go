package model

import "time"

// DateLayout is the canonical calendar-day key used for every entry
const DateLayout = "2006-01-02"

// ExerciseType represents the kind of activity logged for a day
type ExerciseType string

const (
	ExerciseCardio   ExerciseType = "cardio"
	ExerciseStrength ExerciseType = "strength"
	ExerciseYoga     ExerciseType = "yoga"
	ExerciseSports   ExerciseType = "sports"
	ExerciseNone     ExerciseType = "none"
)

// Mood represents the optional self-reported mood of a day
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodNeutral  Mood = "neutral"
	MoodSad      Mood = "sad"
	MoodStressed Mood = "stressed"
	MoodAnxious  Mood = "anxious"
)

// Exercise holds the day's workout
type Exercise struct {
	Minutes int          `json:"minutes"`
	Type    ExerciseType `json:"type"`
}

// Meals holds which meals were logged
type Meals struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

// Count returns the number of meals logged
func (m Meals) Count() int {
	n := 0
	for _, logged := range []bool{m.Breakfast, m.Lunch, m.Dinner} {
		if logged {
			n++
		}
	}
	return n
}

// Medications holds the medications taken against the prescribed list
type Medications struct {
	Taken      []string `json:"taken"`
	Prescribed []string `json:"prescribed"`
}

// DailyMetrics represents one calendar day of tracked metrics
type DailyMetrics struct {
	SleepHours   float64     `json:"sleep_hours"`
	Exercise     Exercise    `json:"exercise"`
	Steps        int         `json:"steps"`
	WaterGlasses int         `json:"water_glasses"`
	Meals        Meals       `json:"meals"`
	Medications  Medications `json:"medications"`
	Mood         *Mood       `json:"mood,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
}

// Rating is the qualitative tier of a total score
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingFair             Rating = "Fair"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// ComponentScores holds the six weighted sub-scores
type ComponentScores struct {
	Sleep      int `json:"sleep"`
	Exercise   int `json:"exercise"`
	Steps      int `json:"steps"`
	Water      int `json:"water"`
	Medication int `json:"medication"`
	Nutrition  int `json:"nutrition"`
}

// Sum returns the total of all component scores
func (c ComponentScores) Sum() int {
	return c.Sleep + c.Exercise + c.Steps + c.Water + c.Medication + c.Nutrition
}

// ScoreBreakdown is the scored result of one day
type ScoreBreakdown struct {
	TotalScore int             `json:"total_score"`
	Breakdown  ComponentScores `json:"breakdown"`
	Rating     Rating          `json:"rating"`
	Color      string          `json:"color"`
}

// HealthEntry is one day's metrics plus its computed score
type HealthEntry struct {
	Date      string         `json:"date"`
	Metrics   DailyMetrics   `json:"metrics"`
	Score     ScoreBreakdown `json:"score"`
	UpdatedAt time.Time      `json:"updated_at,omitempty"`
}

// Metric names the six tracked components
type Metric string

const (
	MetricSleep      Metric = "sleep"
	MetricExercise   Metric = "exercise"
	MetricSteps      Metric = "steps"
	MetricWater      Metric = "water"
	MetricMedication Metric = "medication"
	MetricNutrition  Metric = "nutrition"
)

// AllMetrics lists the components in display order
var AllMetrics = []Metric{
	MetricSleep,
	MetricExercise,
	MetricSteps,
	MetricWater,
	MetricMedication,
	MetricNutrition,
}

// BestScore is the highest scoring day of a period
type BestScore struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// DailyScore is one point of the charted series
type DailyScore struct {
	Date       string `json:"date"`
	TotalScore int    `json:"total_score"`
	ComponentScores
}

// MetricPoint is a metric value observed on a given day
type MetricPoint struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// ComponentAnalysis summarises one metric over a period
type ComponentAnalysis struct {
	Metric        Metric      `json:"metric"`
	Average       float64     `json:"average"`
	Target        string      `json:"target"`
	Unit          string      `json:"unit"`
	Best          MetricPoint `json:"best"`
	Worst         MetricPoint `json:"worst"`
	DaysMetTarget int         `json:"days_met_target"`
	TotalDays     int         `json:"total_days"`
	Trend         float64     `json:"trend"`
	Insight       string      `json:"insight"`
	Alert         *string     `json:"alert,omitempty"`
}

// Patterns holds heuristic findings over a period
type Patterns struct {
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}

// AnalyticsResult is recomputed for every query and never persisted
type AnalyticsResult struct {
	AvgScore          float64                      `json:"avg_score"`
	BestScore         BestScore                    `json:"best_score"`
	Streak            int                          `json:"streak"`
	Trend             float64                      `json:"trend"`
	DailyData         []DailyScore                 `json:"daily_data"`
	ComponentAnalysis map[Metric]ComponentAnalysis `json:"component_analysis"`
	Patterns          Patterns                     `json:"patterns"`
}

// ComponentReport is the formatted summary of one metric
type ComponentReport struct {
	Score          int     `json:"score"`
	Average        string  `json:"average"`
	Target         string  `json:"target"`
	Best           string  `json:"best"`
	Worst          string  `json:"worst"`
	Trend          float64 `json:"trend"`
	Recommendation string  `json:"recommendation"`
}

// Report is the human-readable wrapper around an AnalyticsResult
type Report struct {
	GeneratedAt     time.Time                  `json:"generated_at"`
	StartDate       string                     `json:"start_date"`
	EndDate         string                     `json:"end_date"`
	TotalDays       int                        `json:"total_days"`
	CurrentScore    float64                    `json:"current_score"`
	AvgScore        float64                    `json:"avg_score"`
	Trend           float64                    `json:"trend"`
	Streak          int                        `json:"streak"`
	BestStreak      int                        `json:"best_streak"`
	DaysLogged      int                        `json:"days_logged"`
	Components      map[Metric]ComponentReport `json:"components"`
	Strengths       []string                   `json:"strengths"`
	Improvements    []string                   `json:"improvements"`
	Recommendations []string                   `json:"recommendations"`
	Achievements    []string                   `json:"achievements"`
	NextMilestone   string                     `json:"next_milestone"`
}

// ReportArchive represents an archived PDF report
type ReportArchive struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	DateRangeStart string    `json:"date_range_start"`
	DateRangeEnd   string    `json:"date_range_end"`
	FilePath       string    `json:"file_path"`
	GeneratedAt    time.Time `json:"generated_at"`
}
