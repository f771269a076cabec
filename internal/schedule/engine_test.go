package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

var custodians = Custodians{Parent1: "p1", Parent2: "p2"}

// Weekdays with parent1, weekends with parent2.
func weekdaysWeekends() Pattern {
	return Pattern{
		Type: PatternWeekly,
		Weekly: &WeeklyPattern{
			Sunday: SlotParent2, Monday: SlotParent1, Tuesday: SlotParent1, Wednesday: SlotParent1,
			Thursday: SlotParent1, Friday: SlotParent1, Saturday: SlotParent2,
		},
	}
}

func TestPatternValidate(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		wantErr bool
	}{
		{"weekly ok", weekdaysWeekends(), false},
		{"weekly missing body", Pattern{Type: PatternWeekly}, true},
		{"weekly nothing assigned", Pattern{Type: PatternWeekly, Weekly: &WeeklyPattern{}}, true},
		{"weekly bad slot", Pattern{Type: PatternWeekly, Weekly: &WeeklyPattern{Monday: "grandma"}}, true},
		{"unknown type", Pattern{Type: "lunar"}, true},
		{
			"alternating weeks bad starting week",
			Pattern{Type: PatternAlternatingWeeks, AlternatingWeeks: &AlternatingWeeksPattern{
				WeekA: WeeklyPattern{Monday: SlotParent1}, WeekB: WeeklyPattern{Monday: SlotParent2},
				StartingWeek: "C", ReferenceDate: "2024-01-07",
			}},
			true,
		},
		{
			"alternating weeks bad reference date",
			Pattern{Type: PatternAlternatingWeeks, AlternatingWeeks: &AlternatingWeeksPattern{
				WeekA: WeeklyPattern{Monday: SlotParent1}, WeekB: WeeklyPattern{Monday: SlotParent2},
				StartingWeek: "A", ReferenceDate: "07/01/2024",
			}},
			true,
		},
		{
			"alternating days ok",
			Pattern{Type: PatternAlternatingDays, AlternatingDays: &AlternatingDaysPattern{StartingParent: SlotParent1, ReferenceDate: "2024-01-01"}},
			false,
		},
		{
			"alternating days empty starting parent",
			Pattern{Type: PatternAlternatingDays, AlternatingDays: &AlternatingDaysPattern{ReferenceDate: "2024-01-01"}},
			true,
		},
		{
			"custom empty sequence",
			Pattern{Type: PatternCustom, Custom: &CustomPattern{ReferenceDate: "2024-01-01"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pattern.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPattern)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlotForAlternatingWeeks(t *testing.T) {
	p := Pattern{Type: PatternAlternatingWeeks, AlternatingWeeks: &AlternatingWeeksPattern{
		WeekA:         WeeklyPattern{Wednesday: SlotParent1},
		WeekB:         WeeklyPattern{Wednesday: SlotParent2},
		StartingWeek:  "A",
		ReferenceDate: "2024-01-10", // a Wednesday; its week starts Sunday 2024-01-07
	}}

	assert.Equal(t, SlotParent1, p.SlotFor(day("2024-01-10")))
	assert.Equal(t, SlotParent2, p.SlotFor(day("2024-01-17")))
	assert.Equal(t, SlotParent1, p.SlotFor(day("2024-01-24")))
	// weeks before the reference alternate the same way
	assert.Equal(t, SlotParent2, p.SlotFor(day("2024-01-03")))
	assert.Equal(t, SlotParent1, p.SlotFor(day("2023-12-27")))
	// days with no slot in the active week
	assert.Equal(t, SlotNone, p.SlotFor(day("2024-01-11")))

	p.AlternatingWeeks.StartingWeek = "B"
	assert.Equal(t, SlotParent2, p.SlotFor(day("2024-01-10")))
	assert.Equal(t, SlotParent1, p.SlotFor(day("2024-01-17")))
}

func TestSlotForAlternatingDays(t *testing.T) {
	p := Pattern{Type: PatternAlternatingDays, AlternatingDays: &AlternatingDaysPattern{
		StartingParent: SlotParent2,
		ReferenceDate:  "2024-03-10",
		DaysPerTurn:    2,
	}}

	got := make([]Slot, 0, 6)
	for d := day("2024-03-08"); !d.After(day("2024-03-13")); d = d.AddDate(0, 0, 1) {
		got = append(got, p.SlotFor(d))
	}
	assert.Equal(t, []Slot{SlotParent1, SlotParent1, SlotParent2, SlotParent2, SlotParent1, SlotParent1}, got)

	p.AlternatingDays.DaysPerTurn = 0
	assert.Equal(t, SlotParent2, p.SlotFor(day("2024-03-10")))
	assert.Equal(t, SlotParent1, p.SlotFor(day("2024-03-11")))
	assert.Equal(t, SlotParent1, p.SlotFor(day("2024-03-09")))
}

func TestSlotForCustom(t *testing.T) {
	// 2-2-3 rotation across two weeks
	seq := []Slot{
		SlotParent1, SlotParent1, SlotParent2, SlotParent2, SlotParent1, SlotParent1, SlotParent1,
		SlotParent2, SlotParent2, SlotParent1, SlotParent1, SlotParent2, SlotParent2, SlotParent2,
	}
	p := Pattern{Type: PatternCustom, Custom: &CustomPattern{Sequence: seq, ReferenceDate: "2024-05-06"}}

	for i, want := range seq {
		assert.Equal(t, want, p.SlotFor(day("2024-05-06").AddDate(0, 0, i)), "offset %d", i)
	}
	assert.Equal(t, seq[0], p.SlotFor(day("2024-05-20")))
	assert.Equal(t, seq[13], p.SlotFor(day("2024-05-05")))
	assert.Equal(t, seq[12], p.SlotFor(day("2024-05-04")))
}

func TestExpandWeeklyHandoffs(t *testing.T) {
	// Thu 2024-01-04 .. Tue 2024-01-09
	plan, err := Expand(Request{
		Pattern:    weekdaysWeekends(),
		Start:      day("2024-01-04"),
		End:        day("2024-01-09"),
		Custodians: custodians,
	})
	require.NoError(t, err)
	require.Len(t, plan.Assignments, 6)
	assert.Zero(t, plan.Skipped)
	assert.Zero(t, plan.Overwritten)

	thu := plan.Assignments[0]
	assert.Equal(t, "p1", thu.CustodianID)
	assert.False(t, thu.HandoffDay, "no previous custodian known")

	sat := plan.Assignments[2]
	assert.Equal(t, time.Saturday, sat.Date.Weekday())
	assert.Equal(t, "p2", sat.CustodianID)
	assert.True(t, sat.HandoffDay)
	assert.Equal(t, "12:00", sat.HandoffTime)
	assert.Equal(t, "other", sat.HandoffLocation)

	assert.False(t, plan.Assignments[3].HandoffDay)

	mon := plan.Assignments[4]
	assert.Equal(t, "p1", mon.CustodianID)
	assert.True(t, mon.HandoffDay)
	assert.Equal(t, "17:00", mon.HandoffTime)
	assert.Equal(t, "daycare", mon.HandoffLocation)
}

func TestExpandUsesPreviousCustodian(t *testing.T) {
	plan, err := Expand(Request{
		Pattern:           weekdaysWeekends(),
		Start:             day("2024-01-08"),
		End:               day("2024-01-08"),
		Custodians:        custodians,
		PreviousCustodian: "p2",
	})
	require.NoError(t, err)
	require.Len(t, plan.Assignments, 1)
	assert.True(t, plan.Assignments[0].HandoffDay)
}

func TestExpandRespectsExisting(t *testing.T) {
	// Saturday already recorded with p1, so Sunday (p2) becomes a handoff and Monday (p1) too.
	plan, err := Expand(Request{
		Pattern:    weekdaysWeekends(),
		Start:      day("2024-01-05"),
		End:        day("2024-01-08"),
		Custodians: custodians,
		Existing:   map[string]string{"2024-01-06": "p1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Skipped)
	require.Len(t, plan.Assignments, 3)

	sun := plan.Assignments[1]
	assert.Equal(t, "2024-01-07", DateKey(sun.Date))
	assert.True(t, sun.HandoffDay)
	assert.Equal(t, "12:00", sun.HandoffTime)

	mon := plan.Assignments[2]
	assert.True(t, mon.HandoffDay)
}

func TestExpandOverwrite(t *testing.T) {
	plan, err := Expand(Request{
		Pattern:    weekdaysWeekends(),
		Start:      day("2024-01-05"),
		End:        day("2024-01-07"),
		Custodians: custodians,
		Existing:   map[string]string{"2024-01-06": "p1", "2024-01-07": "p2"},
		Overwrite:  true,
	})
	require.NoError(t, err)
	assert.Zero(t, plan.Skipped)
	assert.Equal(t, 2, plan.Overwritten)
	require.Len(t, plan.Assignments, 3)
	assert.False(t, plan.Assignments[0].Replaces)
	assert.True(t, plan.Assignments[1].Replaces)
	assert.True(t, plan.Assignments[2].Replaces)
	assert.True(t, plan.Assignments[1].HandoffDay)
}

func TestExpandEmptySlotKeepsPrevious(t *testing.T) {
	p := Pattern{Type: PatternWeekly, Weekly: &WeeklyPattern{Friday: SlotParent1, Sunday: SlotParent2}}

	plan, err := Expand(Request{Pattern: p, Start: day("2024-01-05"), End: day("2024-01-07"), Custodians: custodians})
	require.NoError(t, err)
	require.Len(t, plan.Assignments, 2)
	assert.Equal(t, "2024-01-07", DateKey(plan.Assignments[1].Date))
	assert.True(t, plan.Assignments[1].HandoffDay)
}

func TestExpandErrors(t *testing.T) {
	base := Request{Pattern: weekdaysWeekends(), Start: day("2024-01-05"), End: day("2024-01-07"), Custodians: custodians}

	r := base
	r.End = day("2024-01-04")
	_, err := Expand(r)
	assert.ErrorIs(t, err, ErrInvalidRange)

	r = base
	r.End = r.Start.AddDate(0, 0, MaxRangeDays)
	_, err = Expand(r)
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	r = base
	r.End = r.Start.AddDate(0, 0, MaxRangeDays-1)
	_, err = Expand(r)
	assert.NoError(t, err)

	r = base
	r.Custodians = Custodians{Parent1: "p1"}
	_, err = Expand(r)
	assert.ErrorIs(t, err, ErrMissingCustodians)

	r = base
	r.Pattern = Pattern{Type: PatternWeekly}
	_, err = Expand(r)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestPlanMonths(t *testing.T) {
	plan, err := Expand(Request{Pattern: weekdaysWeekends(), Start: day("2024-01-30"), End: day("2024-02-02"), Custodians: custodians})
	require.NoError(t, err)

	months := plan.Months()
	require.Len(t, months, 2)
	assert.Equal(t, time.January, months[0].Month())
	assert.Equal(t, time.February, months[1].Month())
}

func TestPatternJSON(t *testing.T) {
	raw := `{"pattern_type":"alternating_weeks","alternating_weeks_pattern":{"week_a_pattern":{"monday":"parent1"},"week_b_pattern":{"monday":"parent2"},"starting_week":"A","reference_date":"2024-01-01"}}`

	var p Pattern
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.NoError(t, p.Validate())
	assert.Equal(t, SlotParent1, p.SlotFor(day("2024-01-01")))
	assert.Equal(t, SlotParent2, p.SlotFor(day("2024-01-08")))
}
