package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// MetricsFlags are the metrics shared by log and score
type MetricsFlags struct {
	Sleep           float64  `help:"Hours slept." default:"0"`
	ExerciseMinutes int      `help:"Minutes of exercise." default:"0"`
	ExerciseType    string   `help:"Exercise type (cardio|strength|yoga|sports|none)." enum:"cardio,strength,yoga,sports,none" default:"none"`
	Steps           int      `help:"Steps walked." default:"0"`
	Water           int      `help:"Glasses of water." default:"0"`
	Breakfast       bool     `help:"Had breakfast."`
	Lunch           bool     `help:"Had lunch."`
	Dinner          bool     `help:"Had dinner."`
	Taken           []string `help:"Comma-separated medications taken." sep:","`
	Mood            string   `help:"Mood (happy|neutral|sad|stressed|anxious)."`
	Notes           string   `help:"Free-text notes."`
}

func (f MetricsFlags) metrics() model.DailyMetrics {
	m := model.DailyMetrics{
		SleepHours:   f.Sleep,
		Exercise:     model.Exercise{Minutes: f.ExerciseMinutes, Type: model.ExerciseType(f.ExerciseType)},
		Steps:        f.Steps,
		WaterGlasses: f.Water,
		Meals:        model.Meals{Breakfast: f.Breakfast, Lunch: f.Lunch, Dinner: f.Dinner},
		Medications:  model.Medications{Taken: f.Taken},
	}
	if f.Mood != "" {
		mood := model.Mood(f.Mood)
		m.Mood = &mood
	}
	if f.Notes != "" {
		notes := f.Notes
		m.Notes = &notes
	}
	return m
}

type LogCmd struct {
	Date string `help:"Day to log (YYYY-MM-DD). Defaults to today."`
	MetricsFlags
}

func (c *LogCmd) Run(app *App) error {
	entry, err := app.Tracker.SaveEntry(context.Background(), localUser, c.Date, c.metrics())
	if err != nil {
		return err
	}
	app.Log.Debug("entry saved", "date", entry.Date, "score", entry.Score.TotalScore)

	fmt.Fprintf(app.Out, "Saved %s\n", entry.Date)
	printScore(app, entry.Score)
	return nil
}

type ScoreCmd struct {
	MetricsFlags
}

func (c *ScoreCmd) Run(app *App) error {
	score, err := app.Tracker.PreviewScore(context.Background(), localUser, c.metrics())
	if err != nil {
		return err
	}
	printScore(app, score)
	return nil
}

func printScore(app *App, score model.ScoreBreakdown) {
	fmt.Fprintf(app.Out, "Score: %d/100 (%s)\n", score.TotalScore, score.Rating)
	b := score.Breakdown
	fmt.Fprintf(app.Out, "  sleep %d/%d  exercise %d/%d  steps %d/%d\n",
		b.Sleep, scoring.SleepWeight, b.Exercise, scoring.ExerciseWeight, b.Steps, scoring.StepsWeight)
	fmt.Fprintf(app.Out, "  water %d/%d  medication %d/%d  nutrition %d/%d\n",
		b.Water, scoring.WaterWeight, b.Medication, scoring.MedicationWeight, b.Nutrition, scoring.NutritionWeight)
}

// RangeFlags select the period of analytics and report
type RangeFlags struct {
	Preset string `help:"Rolling period (last7|last30|last90|all). Defaults to last7."`
	Start  string `help:"First day (YYYY-MM-DD)."`
	End    string `help:"Last day (YYYY-MM-DD)."`
}

func (f RangeFlags) query() service.RangeQuery {
	return service.RangeQuery{Start: f.Start, End: f.End, Preset: analytics.Preset(f.Preset)}
}

type AnalyticsCmd struct {
	RangeFlags
}

func (c *AnalyticsCmd) Run(app *App) error {
	result, period, err := app.Analytics.Analytics(context.Background(), localUser, c.query())
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "%s to %s\n", period.Start, period.End)
	if len(result.DailyData) == 0 {
		fmt.Fprintln(app.Out, "No entries in this period.")
		return nil
	}

	fmt.Fprintf(app.Out, "Average score: %.1f\n", result.AvgScore)
	fmt.Fprintf(app.Out, "Best score:    %d on %s\n", result.BestScore.Score, result.BestScore.Date)
	fmt.Fprintf(app.Out, "Streak:        %d days\n", result.Streak)
	fmt.Fprintf(app.Out, "Trend:         %+.1f%%\n", result.Trend)

	for _, metric := range model.AllMetrics {
		a, ok := result.ComponentAnalysis[metric]
		if !ok {
			continue
		}
		fmt.Fprintf(app.Out, "  %-10s avg %.1f %s (target %s), %d/%d days on target\n",
			metric, a.Average, a.Unit, a.Target, a.DaysMetTarget, a.TotalDays)
		if a.Alert != nil {
			fmt.Fprintf(app.Out, "             ! %s\n", *a.Alert)
		}
	}
	return nil
}

type ReportCmd struct {
	RangeFlags
	Out string `help:"Write the report as a PDF to this file instead of printing it." type:"path"`
}

func (c *ReportCmd) Run(app *App) error {
	ctx := context.Background()

	if c.Out == "" {
		_, body, err := app.Analytics.ExportText(ctx, localUser, c.query())
		if err != nil {
			return err
		}
		fmt.Fprint(app.Out, body)
		return nil
	}

	report, err := app.Analytics.Report(ctx, localUser, c.query())
	if err != nil {
		return err
	}
	data, err := app.PDF.Generate(*report, "")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, data, 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	app.Log.Info("report written", "path", c.Out, "bytes", len(data))
	fmt.Fprintf(app.Out, "Report written to %s\n", c.Out)
	return nil
}

type ChatCmd struct {
	Age     string   `help:"Age group for dosage advice (youth|adult|senior)." enum:"youth,adult,senior" default:"adult"`
	Message []string `arg:"" help:"Describe your symptoms."`
}

func (c *ChatCmd) Run(app *App) error {
	message := strings.TrimSpace(strings.Join(c.Message, " "))
	if message == "" {
		return fmt.Errorf("message is empty")
	}

	reply := app.Matcher.Classify(message, model.AgeGroup(c.Age))
	app.Log.Debug("symptom checker reply", "kind", reply.Kind, "matched", reply.Matched)

	fmt.Fprintln(app.Out, reply.Text)
	return nil
}

type AddMedCmd struct {
	Name string `arg:"" help:"Medication name."`
}

func (c *AddMedCmd) Run(app *App) error {
	names, err := app.Tracker.AddPrescribedMedication(context.Background(), localUser, c.Name)
	if err != nil {
		return err
	}
	printMeds(app, names)
	return nil
}

type RemoveMedCmd struct {
	Name string `arg:"" help:"Medication name."`
}

func (c *RemoveMedCmd) Run(app *App) error {
	names, err := app.Tracker.RemovePrescribedMedication(context.Background(), localUser, c.Name)
	if err != nil {
		return err
	}
	printMeds(app, names)
	return nil
}

type ListMedsCmd struct{}

func (c *ListMedsCmd) Run(app *App) error {
	names, err := app.Tracker.ListPrescribedMedications(context.Background(), localUser)
	if err != nil {
		return err
	}
	printMeds(app, names)
	return nil
}

func printMeds(app *App, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(app.Out, "No prescribed medications.")
		return
	}
	for _, name := range names {
		fmt.Fprintf(app.Out, "- %s\n", name)
	}
}
