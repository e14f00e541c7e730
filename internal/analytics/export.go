package analytics

import (
	"fmt"
	"strings"

	"github.com/vcscsvcscs/healthguide/internal/scoring"
	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// ExportContentType is the media type of the text export
const ExportContentType = "text/plain; charset=utf-8"

// ExportFilename names the downloadable text export
func ExportFilename(report model.Report) string {
	return fmt.Sprintf("health-report-%s.txt", report.GeneratedAt.Format(model.DateLayout))
}

// FormatText renders a report as labeled plain-text sections. It only formats; nothing is recomputed.
func FormatText(report model.Report) string {
	var b strings.Builder

	b.WriteString("COMPREHENSIVE HEALTH REPORT\n")
	fmt.Fprintf(&b, "Generated: %s at %s\n", longDate(report.GeneratedAt), report.GeneratedAt.Format("3:04 PM"))
	fmt.Fprintf(&b, "Period: %s - %s\n", LongDate(report.StartDate), LongDate(report.EndDate))
	fmt.Fprintf(&b, "Total Days: %d\n", report.TotalDays)

	b.WriteString("\nEXECUTIVE SUMMARY\n")
	fmt.Fprintf(&b, "Current Score: %d/100\n", scoring.Round(report.CurrentScore))
	fmt.Fprintf(&b, "Average Score: %d/100\n", scoring.Round(report.AvgScore))
	fmt.Fprintf(&b, "Trend: %s\n", signedPercent(report.Trend))
	fmt.Fprintf(&b, "Current Streak: %d days\n", report.Streak)
	fmt.Fprintf(&b, "Days Logged: %d/%d\n", report.DaysLogged, report.TotalDays)

	b.WriteString("\nSTRENGTHS\n")
	for _, s := range report.Strengths {
		fmt.Fprintf(&b, "• %s\n", s)
	}

	b.WriteString("\nAREAS FOR IMPROVEMENT\n")
	for _, s := range report.Improvements {
		fmt.Fprintf(&b, "• %s\n", s)
	}

	b.WriteString("\nRECOMMENDATIONS\n")
	for i, s := range report.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	return b.String()
}
