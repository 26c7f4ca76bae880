package types

import "time"

// DatePreset is a named, labeled date range computed relative to a reference
// date at request time.
type DatePreset struct {
	Label string `json:"label"`
	DateRange
}

// DatePresets returns the fixed set of dashboard date presets relative to
// the given reference time. Weeks start on Monday.
func DatePresets(now time.Time) map[string]DatePreset {
	today := DateOf(now)

	// Days since Monday; time.Weekday has Sunday = 0.
	weekday := (int(now.Weekday()) + 6) % 7
	weekStart := today.AddDays(-weekday)

	monthStart := NewDate(now.Year(), now.Month(), 1)

	return map[string]DatePreset{
		"today": {
			Label:     "Today",
			DateRange: NewDateRange(today, today),
		},
		"yesterday": {
			Label:     "Yesterday",
			DateRange: NewDateRange(today.AddDays(-1), today.AddDays(-1)),
		},
		"this_week": {
			Label:     "This Week",
			DateRange: NewDateRange(weekStart, today),
		},
		"last_week": {
			Label:     "Last Week",
			DateRange: NewDateRange(weekStart.AddDays(-7), weekStart.AddDays(-1)),
		},
		"this_month": {
			Label:     "This Month",
			DateRange: NewDateRange(monthStart, today),
		},
		"last_7_days": {
			Label:     "Last 7 Days",
			DateRange: NewDateRange(today.AddDays(-7), today),
		},
		"last_30_days": {
			Label:     "Last 30 Days",
			DateRange: NewDateRange(today.AddDays(-30), today),
		},
		"last_90_days": {
			Label:     "Last 90 Days",
			DateRange: NewDateRange(today.AddDays(-90), today),
		},
	}
}
