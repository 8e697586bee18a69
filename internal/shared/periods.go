package shared

import (
	"fmt"
	"time"
)

// ReportGranularity selects the default reporting window.
type ReportGranularity string

const (
	GranularityDaily   ReportGranularity = "daily"
	GranularityWeekly  ReportGranularity = "weekly"
	GranularityMonthly ReportGranularity = "monthly"
)

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// PeriodRange resolves a granularity to an inclusive [from, to] date window
// ending today. Daily covers today only, weekly the trailing 7 days, monthly
// the trailing month.
func PeriodRange(granularity ReportGranularity, now time.Time) (time.Time, time.Time, error) {
	today := StartOfDay(now)
	switch granularity {
	case GranularityDaily:
		return today, today, nil
	case GranularityWeekly:
		return today.AddDate(0, 0, -7), today, nil
	case GranularityMonthly:
		return today.AddDate(0, -1, 0), today, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown granularity %q", ErrValidation, granularity)
	}
}
