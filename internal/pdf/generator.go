package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/vcscsvcscs/healthguide/internal/analytics"
	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

var componentLabels = map[model.Metric]string{
	model.MetricSleep:      "Sleep",
	model.MetricExercise:   "Exercise",
	model.MetricSteps:      "Steps",
	model.MetricWater:      "Hydration",
	model.MetricMedication: "Medication",
	model.MetricNutrition:  "Nutrition",
}

var componentWidths = []float64{32, 18, 30, 30, 30, 30}

// PDFGenerator renders health reports as A4 documents
type PDFGenerator struct {
	logger *zap.Logger
}

// NewPDFGenerator creates a new PDFGenerator
func NewPDFGenerator(logger *zap.Logger) *PDFGenerator {
	return &PDFGenerator{
		logger: logger,
	}
}

// Generate renders the report. ownerName is printed in the header when not empty.
func (g *PDFGenerator) Generate(report model.Report, ownerName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle("Health Report", false)
	pdf.AddPage()

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	g.addTitle(pdf, tr, report, ownerName)
	g.addSummary(pdf, report)
	g.addComponents(pdf, tr, report)
	g.addList(pdf, tr, "Strengths", report.Strengths, false)
	g.addList(pdf, tr, "Areas for Improvement", report.Improvements, false)
	g.addList(pdf, tr, "Recommendations", report.Recommendations, true)
	g.addList(pdf, tr, "Achievements", report.Achievements, false)

	g.addSectionHeader(pdf, "Next Milestone")
	pdf.MultiCell(0, 5, tr(report.NextMilestone), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("PDF report generated",
		zap.String("start_date", report.StartDate),
		zap.String("end_date", report.EndDate),
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, tr func(string) string, report model.Report, ownerName string) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "Comprehensive Health Report", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	if ownerName != "" {
		pdf.CellFormat(0, 8, tr("Name: "+ownerName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Period: %s - %s", analytics.LongDate(report.StartDate), analytics.LongDate(report.EndDate)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func (g *PDFGenerator) addSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
}

func (g *PDFGenerator) addSummary(pdf *gofpdf.Fpdf, report model.Report) {
	g.addSectionHeader(pdf, "Executive Summary")

	rows := [][2]string{
		{"Current Score", fmt.Sprintf("%d/100", scoring.Round(report.CurrentScore))},
		{"Average Score", fmt.Sprintf("%d/100", scoring.Round(report.AvgScore))},
		{"Trend", fmt.Sprintf("%+.1f%%", report.Trend)},
		{"Current Streak", fmt.Sprintf("%d days", report.Streak)},
		{"Best Streak", fmt.Sprintf("%d days", report.BestStreak)},
		{"Days Logged", fmt.Sprintf("%d/%d", report.DaysLogged, report.TotalDays)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *PDFGenerator) addComponents(pdf *gofpdf.Fpdf, tr func(string) string, report model.Report) {
	g.addSectionHeader(pdf, "Components")

	if len(report.Components) == 0 {
		pdf.CellFormat(0, 8, "No entries recorded during this period.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.SetFont("Arial", "B", 9)
	for i, head := range []string{"Component", "Score", "Average", "Target", "Best", "Worst"} {
		pdf.CellFormat(componentWidths[i], 7, head, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)

	for _, metric := range model.AllMetrics {
		c, ok := report.Components[metric]
		if !ok {
			continue
		}
		cells := []string{componentLabels[metric], fmt.Sprintf("%d", c.Score), c.Average, c.Target, c.Best, c.Worst}
		for i, cell := range cells {
			pdf.CellFormat(componentWidths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	for _, metric := range model.AllMetrics {
		c, ok := report.Components[metric]
		if !ok || c.Recommendation == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, componentLabels[metric], "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(c.Recommendation), "", "L", false)
	}
	pdf.Ln(5)
}

func (g *PDFGenerator) addList(pdf *gofpdf.Fpdf, tr func(string) string, title string, items []string, numbered bool) {
	g.addSectionHeader(pdf, title)

	if len(items) == 0 {
		pdf.CellFormat(0, 6, "None for this period.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	for i, item := range items {
		prefix := "-"
		if numbered {
			prefix = fmt.Sprintf("%d.", i+1)
		}
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s %s", prefix, item)), "", "L", false)
	}
	pdf.Ln(4)
}
