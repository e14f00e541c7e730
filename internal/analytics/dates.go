package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/vcscsvcscs/healthguide/pkg/model"
)

// Preset names a rolling date range ending today
type Preset string

const (
	PresetLast7  Preset = "last7"
	PresetLast30 Preset = "last30"
	PresetLast90 Preset = "last90"
	PresetAll    Preset = "all"
)

var presetDays = map[Preset]int{
	PresetLast7:  7,
	PresetLast30: 30,
	PresetLast90: 90,
	PresetAll:    365,
}

// DateRange is an inclusive range of calendar days in YYYY-MM-DD form
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Days returns the inclusive number of days in the range
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// NewDateRange validates explicit range bounds
func NewDateRange(start, end string) (DateRange, error) {
	if _, err := ParseDate(start); err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	if _, err := ParseDate(end); err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if start > end {
		return DateRange{}, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// PresetRange resolves a preset to a range ending on today
func PresetRange(preset Preset, today string) (DateRange, error) {
	days, ok := presetDays[preset]
	if !ok {
		return DateRange{}, fmt.Errorf("unknown date range preset: %s", preset)
	}
	if _, err := ParseDate(today); err != nil {
		return DateRange{}, fmt.Errorf("invalid date %q: %w", today, err)
	}
	return DateRange{Start: AddDays(today, -(days - 1)), End: today}, nil
}

// ParseDate parses a calendar-day key as midnight UTC
func ParseDate(date string) (time.Time, error) {
	return time.Parse(model.DateLayout, date)
}

// AddDays shifts a calendar-day key, returning "" when the key cannot be parsed
func AddDays(date string, days int) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, days).Format(model.DateLayout)
}

// DaysBetween returns the number of whole days from start to end, 0 when either key is invalid
func DaysBetween(start, end string) int {
	s, err := ParseDate(start)
	if err != nil {
		return 0
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}

// ShortDate formats a calendar-day key as "Jan 2"
func ShortDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}

// LongDate formats a calendar-day key as "January 2nd, 2006"
func LongDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return longDate(t)
}

func longDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// weekday returns the day of week of a calendar-day key, independent of the local timezone
func weekday(date string) (time.Weekday, bool) {
	t, err := ParseDate(date)
	if err != nil {
		return time.Sunday, false
	}
	return t.Weekday(), true
}

// entriesInRange returns the entries keyed within [start, end], oldest first.
// Keys are compared as strings, never as instants.
func entriesInRange(entries map[string]model.HealthEntry, start, end string) []model.HealthEntry {
	var result []model.HealthEntry
	for date, entry := range entries {
		if date >= start && date <= end {
			entry.Date = date
			result = append(result, entry)
		}
	}
	sortByDate(result)
	return result
}

func sortedEntries(entries map[string]model.HealthEntry) []model.HealthEntry {
	result := make([]model.HealthEntry, 0, len(entries))
	for date, entry := range entries {
		entry.Date = date
		result = append(result, entry)
	}
	sortByDate(result)
	return result
}

func sortByDate(entries []model.HealthEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}
