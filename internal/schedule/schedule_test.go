package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDaySet(t *testing.T) {
	mustSet := func(days ...Weekday) DaySet {
		s, err := NewDaySet(days...)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name string
		raw  string
		want DaySet
	}{
		{"json integers", "[1,3,5]", mustSet(Monday, Wednesday, Friday)},
		{"json integers with spaces", " [ 7 , 6 ] ", mustSet(Saturday, Sunday)},
		{"json names", `["MONDAY","sunday"]`, mustSet(Monday, Sunday)},
		{"mixed array", `[2,"FRIDAY"]`, mustSet(Tuesday, Friday)},
		{"bare name", "MONDAY", mustSet(Monday)},
		{"bare lower name", "tuesday", mustSet(Tuesday)},
		{"bare number", "4", mustSet(Thursday)},
		{"quoted name", `"SATURDAY"`, mustSet(Saturday)},
		{"duplicates collapse", "[1,1,1]", mustSet(Monday)},
		{"empty string", "", 0},
		{"blank", "   ", 0},
		{"undefined", "undefined", 0},
		{"null", "null", 0},
		{"empty array", "[]", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeDaySet(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeDaySet_Malformed(t *testing.T) {
	for _, raw := range []string{
		"[1,2",
		"[0]",
		"[8]",
		"[1.5]",
		`["FUNDAY"]`,
		"[null]",
		"FUNDAY",
		"9",
		`"MONDAY`,
		"{}",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := DecodeDaySet(raw)
			assert.Error(t, err)
		})
	}
}

func TestDaySet_EncodeRoundTrip(t *testing.T) {
	s, err := NewDaySet(Sunday, Monday, Friday)
	require.NoError(t, err)
	assert.Equal(t, "[1,5,7]", s.Encode())

	back, err := DecodeDaySet(s.Encode())
	require.NoError(t, err)
	assert.Equal(t, s, back)
	assert.Equal(t, "[]", DaySet(0).Encode())
}

func TestNewDaySet_RejectsInvalid(t *testing.T) {
	_, err := NewDaySet(Monday, Weekday(8))
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Sunday, WeekdayOf(time.Sunday))
	assert.Equal(t, Monday, WeekdayOf(time.Monday))
	assert.Equal(t, Saturday, WeekdayOf(time.Saturday))
	assert.Equal(t, "WEDNESDAY", Wednesday.String())
}

func TestValidateQuarterHour(t *testing.T) {
	for _, ok := range []string{"00:00", "09:15", "12:30", "23:45", "22:00"} {
		assert.NoError(t, ValidateQuarterHour(ok), ok)
	}
	for _, bad := range []string{"24:00", "9:00", "12:60", "12:5", "aa:bb", "", "12:00:00", " 12:00"} {
		assert.ErrorIs(t, ValidateQuarterHour(bad), ErrClockFormat, bad)
	}
	for _, off := range []string{"14:07", "10:01", "23:59", "00:50"} {
		assert.ErrorIs(t, ValidateQuarterHour(off), ErrClockStep, off)
	}
}

func TestMinuteOfDay(t *testing.T) {
	m, err := MinuteOfDay("22:00")
	require.NoError(t, err)
	assert.Equal(t, 1320, m)

	m, err = MinuteOfDay("01:30:59")
	require.NoError(t, err)
	assert.Equal(t, 90, m)

	_, err = MinuteOfDay("late")
	assert.ErrorIs(t, err, ErrClockFormat)
}

func TestWindow_SameDayMatchesHalfOpenInterval(t *testing.T) {
	for start := 0; start < MinutesPerDay; start += 15 {
		for end := start + 15; end < MinutesPerDay; end += 15 {
			w := Window{Start: start, End: end}
			for m := 0; m < MinutesPerDay; m += 5 {
				want := m >= start && m < end
				if w.Contains(m) != want {
					t.Fatalf("window %d-%d minute %d: got %v want %v", start, end, m, !want, want)
				}
			}
		}
	}
}

func TestWindow_OvernightMatchesWrappedInterval(t *testing.T) {
	for end := 0; end < MinutesPerDay; end += 15 {
		for start := end + 15; start < MinutesPerDay; start += 15 {
			w := Window{Start: start, End: end}
			require.True(t, w.Overnight())
			for m := 0; m < MinutesPerDay; m += 5 {
				want := (m >= start && m < MinutesPerDay) || (m >= 0 && m < end)
				if w.Contains(m) != want {
					t.Fatalf("window %d-%d minute %d: got %v want %v", start, end, m, !want, want)
				}
			}
		}
	}
}

func TestWindow_Boundaries(t *testing.T) {
	w, err := ParseWindow("22:00", "02:00")
	require.NoError(t, err)
	assert.True(t, w.Contains(22*60))
	assert.True(t, w.Contains(23*60))
	assert.True(t, w.Contains(0))
	assert.True(t, w.Contains(2*60-1))
	assert.False(t, w.Contains(2*60))
	assert.False(t, w.Contains(12*60))

	_, err = ParseWindow("22:00", "bad")
	assert.ErrorContains(t, err, "end")
}

func TestLoadLocation(t *testing.T) {
	fallback := time.FixedZone("fallback", -3*3600)

	loc, err := LoadLocation("", fallback)
	require.NoError(t, err)
	assert.Same(t, fallback, loc)

	loc, err = LoadLocation("Asia/Tokyo", fallback)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	_, err = LoadLocation("Not/AZone", fallback)
	assert.Error(t, err)

	_, err = LoadLocation("Local", fallback)
	assert.Error(t, err)
}

func TestLocal(t *testing.T) {
	// 2026-10-12 is a Monday. 01:30 UTC is Sunday 22:30 in Sao Paulo (UTC-3).
	at := time.Date(2026, 10, 12, 1, 30, 0, 0, time.UTC)
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	day, minute := Local(at, saoPaulo)
	assert.Equal(t, Sunday, day)
	assert.Equal(t, 22*60+30, minute)

	day, minute = Local(at, time.UTC)
	assert.Equal(t, Monday, day)
	assert.Equal(t, 90, minute)
}
