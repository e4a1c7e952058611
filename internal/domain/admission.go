package domain

import "time"

// AdmissionSignal is the traffic-light classification of whether a member
// may currently be admitted. It is derived from the membership end date
// on every evaluation and never persisted.
type AdmissionSignal string

const (
	SignalClear   AdmissionSignal = "CLEAR"
	SignalWarning AdmissionSignal = "WARNING"
	SignalBlocked AdmissionSignal = "BLOCKED"
)

// Classify maps a membership end date to an admission signal as of the
// given day. More than 3 calendar days remaining is CLEAR, 1 to 3 days
// is WARNING, today or past (or no end date at all) is BLOCKED. The
// boundaries are a business rule: exactly 3 days remaining warns,
// exactly 0 blocks.
func Classify(today time.Time, endDate *time.Time) AdmissionSignal {
	if endDate == nil {
		return SignalBlocked
	}

	days := calendarDays(today, *endDate)
	switch {
	case days > 3:
		return SignalClear
	case days > 0:
		return SignalWarning
	default:
		return SignalBlocked
	}
}

// calendarDays counts the calendar dates between from and to. Both
// endpoints are rebuilt at UTC midnight first: subtracting wall-clock
// times directly would miscount by a day around a DST transition, where
// four calendar days span 95 or 97 hours.
func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// AdmissionCard pairs a membership with its admission signal for the
// check-in screen.
type AdmissionCard struct {
	Membership *Membership     `json:"membership"`
	Signal     AdmissionSignal `json:"signal"`
}

// AdmissionSummary is the derived check-in view for one member.
type AdmissionSummary struct {
	Cards       []AdmissionCard `json:"cards"`
	IsAdmitted  bool            `json:"is_admitted"`
	NextDueDate *time.Time      `json:"next_due_date,omitempty"`
}

// Summarize classifies each membership against today and derives whether
// the member is currently admitted and their next renewal due date.
// Card order follows input order. The member is admitted if at least one
// membership is not blocked; the next due date is the earliest end date
// among non-blocked memberships. Inputs are not mutated, and nothing is
// cached: callers must re-evaluate whenever today changes.
func Summarize(memberships []*Membership, today time.Time) AdmissionSummary {
	summary := AdmissionSummary{Cards: make([]AdmissionCard, 0, len(memberships))}

	for _, m := range memberships {
		card := AdmissionCard{
			Membership: m,
			Signal:     Classify(today, m.EndDatePtr()),
		}
		summary.Cards = append(summary.Cards, card)

		if card.Signal == SignalBlocked {
			continue
		}
		summary.IsAdmitted = true
		if summary.NextDueDate == nil || m.EndDate.Before(*summary.NextDueDate) {
			end := m.EndDate
			summary.NextDueDate = &end
		}
	}

	return summary
}
