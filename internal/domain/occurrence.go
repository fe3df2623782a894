package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// OccurrenceStatus classifies an occurrence for presentation grouping.
type OccurrenceStatus string

const (
	StatusOverdue  OccurrenceStatus = "overdue"
	StatusUpcoming OccurrenceStatus = "upcoming"
	StatusPaid     OccurrenceStatus = "paid"
)

// Occurrence is one monthly instance of a recurring account, derived by the
// expansion engine and never persisted. (AccountID, Period) is its identity.
type Occurrence struct {
	AccountID      string
	SupplierID     string
	Description    string
	Period         Period
	IssueDate      time.Time
	DueDate        time.Time
	Amount         decimal.Decimal
	Status         OccurrenceStatus
	Paid           bool
	InvoiceNumbers []string
	Recipient      string
	PaidDate       time.Time
}

// DateOnly strips the time of day, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(year int, month time.Month, day int) int {
	if max := DaysIn(year, month); day > max {
		return max
	}

	return day
}

// IssueDateFor places the nominal issue day in the given month, substituting
// the month's last day when the nominal day does not exist in it.
func IssueDateFor(year int, month time.Month, issueDay int) time.Time {
	return time.Date(year, month, clampDay(year, month, issueDay), 0, 0, 0, 0, time.UTC)
}

// DueDateFor places the nominal due day relative to the iteration month. An
// invoice issued late in a month is due early in the next one, so when the
// issue day exceeds the due day the due date rolls into the following month
// (incrementing the year over December). Equal days stay in the same month.
// Clamping always uses the target month's length.
func DueDateFor(year int, month time.Month, dueDay, issueDay int) time.Time {
	if issueDay > dueDay {
		target := Period{Year: year, Month: month}.Next()
		year, month = target.Year, target.Month
	}

	return time.Date(year, month, clampDay(year, month, dueDay), 0, 0, 0, 0, time.UTC)
}

type occurrenceKey struct {
	accountID string
	period    Period
}

// ExpandOccurrences derives the currently visible occurrences for all given
// accounts, joined against their payment records. It is pure: asOf is the
// only clock it knows, and identical inputs produce identical output.
//
// Per account the iteration window runs from the creation month through the
// asOf month, capped by the end-date month. An occurrence from a past month
// is shown only once its issue date has passed; the asOf month's occurrence
// is always shown, even before its issue day.
func ExpandOccurrences(accounts []*Account, payments []*PaymentRecord, asOf time.Time) []*Occurrence {
	asOfDate := DateOnly(asOf)
	current := PeriodOf(asOfDate)

	paid := make(map[occurrenceKey]*PaymentRecord, len(payments))
	for _, p := range payments {
		paid[occurrenceKey{accountID: p.AccountID, period: p.PaidMonth}] = p
	}

	seen := make(map[occurrenceKey]struct{})

	var out []*Occurrence
	for _, acc := range accounts {
		start := acc.FirstPeriod()

		end := current
		if last, ok := acc.LastPeriod(); ok && last.Before(end) {
			end = last
		}

		if end.Before(start) {
			continue
		}

		for month := start; !month.After(end); month = month.Next() {
			issueDate := IssueDateFor(month.Year, month.Month, acc.IssueDay)
			dueDate := DueDateFor(month.Year, month.Month, acc.DueDay, acc.IssueDay)

			if issueDate.After(asOfDate) && PeriodOf(issueDate) != current {
				continue
			}

			// The period key follows the issue date, not the iteration
			// month, so clamping near year boundaries cannot produce two
			// occurrences with the same identity.
			period := PeriodOf(issueDate)

			key := occurrenceKey{accountID: acc.ID, period: period}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			occ := &Occurrence{
				AccountID:   acc.ID,
				SupplierID:  acc.SupplierID,
				Description: acc.Description,
				Period:      period,
				IssueDate:   issueDate,
				DueDate:     dueDate,
				Amount:      acc.Amount,
			}

			if record, ok := paid[key]; ok {
				occ.Paid = true
				occ.Status = StatusPaid
				occ.InvoiceNumbers = record.InvoiceNumbers
				occ.Recipient = record.Recipient
				occ.PaidDate = record.PaidDate
			} else if issueDate.Before(asOfDate) {
				occ.Status = StatusOverdue
			} else {
				occ.Status = StatusUpcoming
			}

			out = append(out, occ)
		}
	}

	SortOccurrences(out)

	return out
}

func statusRank(s OccurrenceStatus) int {
	switch s {
	case StatusOverdue:
		return 0
	case StatusUpcoming:
		return 1
	default:
		return 2
	}
}

// SortOccurrences orders a mixed list deterministically: overdue first, then
// upcoming, then paid. Pending groups sort ascending by issue date; the paid
// group sorts descending by period, ties broken by ascending issue date.
func SortOccurrences(occurrences []*Occurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]

		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra < rb
		}

		if a.Status == StatusPaid {
			if c := a.Period.Compare(b.Period); c != 0 {
				return c > 0
			}
		}

		if !a.IssueDate.Equal(b.IssueDate) {
			return a.IssueDate.Before(b.IssueDate)
		}

		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}

		return a.Period.Before(b.Period)
	})
}

// Schedule is the engine output grouped the way the dashboard renders it.
type Schedule struct {
	Overdue  []*Occurrence
	Upcoming []*Occurrence
	Paid     []*Occurrence
}

// GroupOccurrences splits a sorted occurrence list into its status groups.
func GroupOccurrences(occurrences []*Occurrence) Schedule {
	var s Schedule
	for _, occ := range occurrences {
		switch occ.Status {
		case StatusOverdue:
			s.Overdue = append(s.Overdue, occ)
		case StatusUpcoming:
			s.Upcoming = append(s.Upcoming, occ)
		case StatusPaid:
			s.Paid = append(s.Paid, occ)
		}
	}

	return s
}
