package domain

import (
	"strings"
	"time"
)

// PlanDuration is the billing period a package grants.
type PlanDuration string

// Canonical plan duration codes
const (
	DurationVisit       PlanDuration = "VISIT"
	DurationTenDays     PlanDuration = "TEN_DAYS"
	DurationFifteenDays PlanDuration = "FIFTEEN_DAYS"
	DurationOneWeek     PlanDuration = "ONE_WEEK"
	DurationTwoWeeks    PlanDuration = "TWO_WEEKS"
	DurationOneMonth    PlanDuration = "ONE_MONTH"
	DurationThreeMonths PlanDuration = "THREE_MONTHS"
	DurationSixMonths   PlanDuration = "SIX_MONTHS"
	DurationOneYear     PlanDuration = "ONE_YEAR"
)

// durationAliases maps every accepted spelling (canonical codes included)
// to its canonical variant. Lookups are case-insensitive; unknown codes
// fall back to ONE_MONTH rather than failing, so a package with a stale
// or misspelled duration still produces a usable membership.
var durationAliases = map[string]PlanDuration{
	"VISIT":        DurationVisit,
	"DAY_PASS":     DurationVisit,
	"SINGLE_VISIT": DurationVisit,
	"TEN_DAYS":     DurationTenDays,
	"FIFTEEN_DAYS": DurationFifteenDays,
	"BIWEEKLY":     DurationTwoWeeks,
	"ONE_WEEK":     DurationOneWeek,
	"WEEKLY":       DurationOneWeek,
	"TWO_WEEKS":    DurationTwoWeeks,
	"ONE_MONTH":    DurationOneMonth,
	"MONTHLY":      DurationOneMonth,
	"THREE_MONTHS": DurationThreeMonths,
	"QUARTERLY":    DurationThreeMonths,
	"SIX_MONTHS":   DurationSixMonths,
	"SEMIANNUAL":   DurationSixMonths,
	"ONE_YEAR":     DurationOneYear,
	"ANNUAL":       DurationOneYear,
}

// durationLabels are the human-readable names shown on receipts and cards.
var durationLabels = map[PlanDuration]string{
	DurationVisit:       "Day pass",
	DurationTenDays:     "10 days",
	DurationFifteenDays: "15 days",
	DurationOneWeek:     "1 week",
	DurationTwoWeeks:    "2 weeks",
	DurationOneMonth:    "Monthly",
	DurationThreeMonths: "Quarterly",
	DurationSixMonths:   "Semiannual",
	DurationOneYear:     "Annual",
}

// ParsePlanDuration resolves a duration code (any accepted spelling, any
// case) to its canonical variant. Unknown or empty codes resolve to
// ONE_MONTH.
func ParsePlanDuration(code string) PlanDuration {
	if d, ok := durationAliases[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return d
	}
	return DurationOneMonth
}

// Label returns the display name for the duration. Unmapped codes are
// returned as-is.
func (d PlanDuration) Label() string {
	if label, ok := durationLabels[d]; ok {
		return label
	}
	return string(d)
}

// Midnight strips the time-of-day component, keeping the calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ComputeEndDate derives a membership's expiration date from its start
// date and plan duration. Month and year offsets use AddDate, so end-of-
// month overflow rolls forward to the next valid date (Jan 31 + 1 month
// lands in early March). The result is never before start.
func ComputeEndDate(start time.Time, duration PlanDuration) time.Time {
	start = Midnight(start)

	switch ParsePlanDuration(string(duration)) {
	case DurationVisit:
		return start.AddDate(0, 0, 1)
	case DurationTenDays:
		return start.AddDate(0, 0, 10)
	case DurationFifteenDays:
		return start.AddDate(0, 0, 15)
	case DurationOneWeek:
		return start.AddDate(0, 0, 7)
	case DurationTwoWeeks:
		return start.AddDate(0, 0, 14)
	case DurationThreeMonths:
		return start.AddDate(0, 3, 0)
	case DurationSixMonths:
		return start.AddDate(0, 6, 0)
	case DurationOneYear:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
