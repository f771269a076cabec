package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.January, 31)

	assert.Equal(t, NewDate(2024, time.February, 1), d.AddDays(1))
	assert.Equal(t, NewDate(2024, time.January, 1), d.MonthStart())
	assert.Equal(t, d, d.MonthEnd())
	assert.Equal(t, NewDate(2024, time.February, 29), NewDate(2024, time.February, 10).MonthEnd())
	assert.Equal(t, 30, d.MonthStart().DaysUntil(d))
	assert.True(t, d.MonthStart().Before(d))
	assert.True(t, d.After(d.MonthStart()))
	assert.Equal(t, time.Wednesday, d.Weekday())
}

func TestDateOfKeepsCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	late := time.Date(2024, 3, 1, 23, 30, 0, 0, loc)

	assert.Equal(t, NewDate(2024, time.March, 1), DateOf(late))
}

func TestDateJSON(t *testing.T) {
	var body struct {
		Date Date  `json:"date"`
		End  *Date `json:"end,omitempty"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-06-01"}`), &body))
	assert.Equal(t, NewDate(2024, time.June, 1), body.Date)
	assert.Nil(t, body.End)

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-01"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"June 1"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"date":20240601}`), &body))
}

func TestDateScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2024, time.July, 4), d)

	require.NoError(t, d.Scan([]byte("2024-07-05")))
	assert.Equal(t, NewDate(2024, time.July, 5), d)

	assert.Error(t, d.Scan(42))

	v, err := NewDate(2024, time.July, 4).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-07-04", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 8, Minute: 5}, tod)
	assert.Equal(t, "08:05", tod.String())

	tod, err = ParseTimeOfDay("17:30:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 17, Minute: 30}, tod)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)

	var scanned TimeOfDay
	require.NoError(t, scanned.Scan("12:00"))
	assert.Equal(t, TimeOfDay{Hour: 12}, scanned)

	at := TimeOfDay{Hour: 9, Minute: 15}.On(NewDate(2024, time.May, 2), time.UTC)
	assert.Equal(t, time.Date(2024, 5, 2, 9, 15, 0, 0, time.UTC), at)
}

func TestTimeOfDayJSON(t *testing.T) {
	var body struct {
		At *TimeOfDay `json:"at,omitempty"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"07:45"}`), &body))
	require.NotNil(t, body.At)
	assert.Equal(t, "07:45", body.At.String())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"07:45"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"at":"7pm"}`), &body))
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
}
