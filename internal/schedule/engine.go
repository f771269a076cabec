package schedule

import (
	"errors"
	"time"
)

// MaxRangeDays bounds a single expansion.
const MaxRangeDays = 366

var (
	ErrInvalidRange      = errors.New("end date is before start date")
	ErrRangeTooLarge     = errors.New("date range is too large")
	ErrMissingCustodians = errors.New("family needs two custodians")
)

const (
	weekendHandoffTime     = "12:00"
	weekendHandoffLocation = "other"
	weekdayHandoffTime     = "17:00"
	weekdayHandoffLocation = "daycare"
)

// Custodians maps the logical slots to user IDs.
type Custodians struct {
	Parent1 string
	Parent2 string
}

func (c Custodians) resolve(s Slot) string {
	switch s {
	case SlotParent1:
		return c.Parent1
	case SlotParent2:
		return c.Parent2
	}
	return ""
}

// Request describes one expansion.
type Request struct {
	Pattern    Pattern
	Start      time.Time
	End        time.Time
	Custodians Custodians
	// Existing maps DateKey(day) to the custodian already recorded for that day.
	Existing map[string]string
	// PreviousCustodian is the custodian on the day before Start, if known.
	PreviousCustodian string
	Overwrite         bool
}

// Assignment is one generated custody day.
type Assignment struct {
	Date            time.Time
	CustodianID     string
	HandoffDay      bool
	HandoffTime     string
	HandoffLocation string
	// Replaces is set when the day already had a record that will be overwritten.
	Replaces bool
}

// Plan is the result of an expansion.
type Plan struct {
	Assignments []Assignment
	Skipped     int
	Overwritten int
}

// Months returns the distinct (year, month) pairs touched by the plan, in order.
func (p Plan) Months() []time.Time {
	var out []time.Time
	seen := make(map[time.Time]bool)
	for _, a := range p.Assignments {
		m := time.Date(a.Date.Year(), a.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Expand walks every day in [Start, End] once and emits assignments.
func Expand(req Request) (Plan, error) {
	start, end := Truncate(req.Start), Truncate(req.End)
	if end.Before(start) {
		return Plan{}, ErrInvalidRange
	}
	if DaysBetween(start, end)+1 > MaxRangeDays {
		return Plan{}, ErrRangeTooLarge
	}
	if req.Custodians.Parent1 == "" || req.Custodians.Parent2 == "" {
		return Plan{}, ErrMissingCustodians
	}
	if err := req.Pattern.Validate(); err != nil {
		return Plan{}, err
	}

	var plan Plan
	prev := req.PreviousCustodian

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		existing, hasExisting := req.Existing[DateKey(day)]
		if hasExisting && !req.Overwrite {
			plan.Skipped++
			prev = existing
			continue
		}

		custodian := req.Custodians.resolve(req.Pattern.SlotFor(day))
		if custodian == "" {
			continue
		}

		a := Assignment{Date: day, CustodianID: custodian, Replaces: hasExisting}
		if prev != "" && prev != custodian {
			a.HandoffDay = true
			a.HandoffTime, a.HandoffLocation = handoffDefaults(day)
		}
		if hasExisting {
			plan.Overwritten++
		}
		plan.Assignments = append(plan.Assignments, a)
		prev = custodian
	}

	return plan, nil
}

func handoffDefaults(day time.Time) (string, string) {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return weekendHandoffTime, weekendHandoffLocation
	}
	return weekdayHandoffTime, weekdayHandoffLocation
}
