// Package schedule expands recurring custody patterns into per-day
// assignments. It has no I/O; callers supply existing records and custodians.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of every date this package reads.
const DateLayout = "2006-01-02"

// PatternType names the recurrence a template follows.
type PatternType string

const (
	PatternWeekly           PatternType = "weekly"
	PatternAlternatingWeeks PatternType = "alternating_weeks"
	PatternAlternatingDays  PatternType = "alternating_days"
	PatternCustom           PatternType = "custom"
)

// Slot is the logical parent assigned to a day. The empty slot leaves the day unassigned.
type Slot string

const (
	SlotNone    Slot = ""
	SlotParent1 Slot = "parent1"
	SlotParent2 Slot = "parent2"
)

func (s Slot) valid() bool {
	return s == SlotNone || s == SlotParent1 || s == SlotParent2
}

// other returns the opposite parent. SlotNone maps to itself.
func (s Slot) other() Slot {
	switch s {
	case SlotParent1:
		return SlotParent2
	case SlotParent2:
		return SlotParent1
	}
	return SlotNone
}

var ErrInvalidPattern = errors.New("invalid schedule pattern")

// WeeklyPattern assigns one slot per weekday.
type WeeklyPattern struct {
	Sunday    Slot `json:"sunday,omitempty"`
	Monday    Slot `json:"monday,omitempty"`
	Tuesday   Slot `json:"tuesday,omitempty"`
	Wednesday Slot `json:"wednesday,omitempty"`
	Thursday  Slot `json:"thursday,omitempty"`
	Friday    Slot `json:"friday,omitempty"`
	Saturday  Slot `json:"saturday,omitempty"`
}

func (w WeeklyPattern) slots() [7]Slot {
	return [7]Slot{w.Sunday, w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday}
}

// For returns the slot for a weekday.
func (w WeeklyPattern) For(d time.Weekday) Slot {
	return w.slots()[d]
}

func (w WeeklyPattern) validate(field string) error {
	assigned := false
	for i, s := range w.slots() {
		if !s.valid() {
			return fmt.Errorf("%w: %s.%s has unknown slot %q", ErrInvalidPattern, field, strings.ToLower(time.Weekday(i).String()), s)
		}
		if s != SlotNone {
			assigned = true
		}
	}
	if !assigned {
		return fmt.Errorf("%w: %s assigns no days", ErrInvalidPattern, field)
	}
	return nil
}

// AlternatingWeeksPattern alternates two weekly patterns on Sunday-based weeks.
type AlternatingWeeksPattern struct {
	WeekA         WeeklyPattern `json:"week_a_pattern"`
	WeekB         WeeklyPattern `json:"week_b_pattern"`
	StartingWeek  string        `json:"starting_week"`
	ReferenceDate string        `json:"reference_date"`
}

// AlternatingDaysPattern hands custody over every DaysPerTurn days.
type AlternatingDaysPattern struct {
	StartingParent Slot   `json:"starting_parent"`
	ReferenceDate  string `json:"reference_date"`
	DaysPerTurn    int    `json:"days_per_turn,omitempty"`
}

// CustomPattern repeats Sequence cyclically from ReferenceDate, e.g. a 2-2-3 rotation.
type CustomPattern struct {
	Sequence      []Slot `json:"sequence"`
	ReferenceDate string `json:"reference_date"`
}

// Pattern is a pattern type together with its body. Only the body matching
// Type is read.
type Pattern struct {
	Type             PatternType              `json:"pattern_type"`
	Weekly           *WeeklyPattern           `json:"weekly_pattern,omitempty"`
	AlternatingWeeks *AlternatingWeeksPattern `json:"alternating_weeks_pattern,omitempty"`
	AlternatingDays  *AlternatingDaysPattern  `json:"alternating_days_pattern,omitempty"`
	Custom           *CustomPattern           `json:"custom_pattern,omitempty"`
}

// Validate reports whether the pattern can be expanded.
func (p Pattern) Validate() error {
	switch p.Type {
	case PatternWeekly:
		if p.Weekly == nil {
			return fmt.Errorf("%w: weekly_pattern is required", ErrInvalidPattern)
		}
		return p.Weekly.validate("weekly_pattern")

	case PatternAlternatingWeeks:
		aw := p.AlternatingWeeks
		if aw == nil {
			return fmt.Errorf("%w: alternating_weeks_pattern is required", ErrInvalidPattern)
		}
		if err := aw.WeekA.validate("week_a_pattern"); err != nil {
			return err
		}
		if err := aw.WeekB.validate("week_b_pattern"); err != nil {
			return err
		}
		if aw.StartingWeek != "A" && aw.StartingWeek != "B" {
			return fmt.Errorf("%w: starting_week must be A or B", ErrInvalidPattern)
		}
		_, err := parseRef(aw.ReferenceDate)
		return err

	case PatternAlternatingDays:
		ad := p.AlternatingDays
		if ad == nil {
			return fmt.Errorf("%w: alternating_days_pattern is required", ErrInvalidPattern)
		}
		if ad.StartingParent != SlotParent1 && ad.StartingParent != SlotParent2 {
			return fmt.Errorf("%w: starting_parent must be parent1 or parent2", ErrInvalidPattern)
		}
		if ad.DaysPerTurn < 0 {
			return fmt.Errorf("%w: days_per_turn must be positive", ErrInvalidPattern)
		}
		_, err := parseRef(ad.ReferenceDate)
		return err

	case PatternCustom:
		c := p.Custom
		if c == nil {
			return fmt.Errorf("%w: custom_pattern is required", ErrInvalidPattern)
		}
		if len(c.Sequence) == 0 {
			return fmt.Errorf("%w: custom sequence is empty", ErrInvalidPattern)
		}
		for i, s := range c.Sequence {
			if !s.valid() {
				return fmt.Errorf("%w: sequence[%d] has unknown slot %q", ErrInvalidPattern, i, s)
			}
		}
		_, err := parseRef(c.ReferenceDate)
		return err
	}
	return fmt.Errorf("%w: unknown pattern_type %q", ErrInvalidPattern, p.Type)
}

// SlotFor returns the logical parent for day. The pattern must be valid.
func (p Pattern) SlotFor(day time.Time) Slot {
	day = Truncate(day)

	switch p.Type {
	case PatternWeekly:
		return p.Weekly.For(day.Weekday())

	case PatternAlternatingWeeks:
		aw := p.AlternatingWeeks
		ref, _ := parseRef(aw.ReferenceDate)
		weeks := floorDiv(DaysBetween(weekStart(ref), weekStart(day)), 7)
		isA := aw.StartingWeek == "A"
		if weeks%2 != 0 {
			isA = !isA
		}
		if isA {
			return aw.WeekA.For(day.Weekday())
		}
		return aw.WeekB.For(day.Weekday())

	case PatternAlternatingDays:
		ad := p.AlternatingDays
		ref, _ := parseRef(ad.ReferenceDate)
		per := ad.DaysPerTurn
		if per <= 0 {
			per = 1
		}
		if floorDiv(DaysBetween(ref, day), per)%2 == 0 {
			return ad.StartingParent
		}
		return ad.StartingParent.other()

	case PatternCustom:
		c := p.Custom
		ref, _ := parseRef(c.ReferenceDate)
		n := len(c.Sequence)
		idx := DaysBetween(ref, day) % n
		if idx < 0 {
			idx += n
		}
		return c.Sequence[idx]
	}
	return SlotNone
}

func parseRef(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: reference_date %q is not YYYY-MM-DD", ErrInvalidPattern, s)
	}
	return t, nil
}

// Truncate drops the clock part of t, keeping its calendar date, in UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// DateKey formats t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func weekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
