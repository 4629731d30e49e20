// Package schedule holds the calendar arithmetic behind promotion windows:
// ISO weekdays, weekday sets, HH:mm clock times and minute-of-day windows.
package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is an ISO weekday: 1 = Monday ... 7 = Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// ErrUnknownWeekday is returned for tokens outside 1..7 or the English day names.
var ErrUnknownWeekday = errors.New("unknown weekday")

// Valid reports whether w is within 1..7.
func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// WeekdayOf converts Go's Sunday-first weekday.
func WeekdayOf(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekday(d)
}

// ParseWeekday accepts "1".."7" or a day name such as "monday".
func ParseWeekday(token string) (Weekday, error) {
	token = strings.TrimSpace(token)
	if n, err := strconv.Atoi(token); err == nil {
		w := Weekday(n)
		if !w.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownWeekday, n)
		}
		return w, nil
	}
	upper := strings.ToUpper(token)
	for i := Monday; i <= Sunday; i++ {
		if weekdayNames[i] == upper {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, token)
}

// DaySet is a set of weekdays stored as a bit mask (bit 0 = Monday).
type DaySet uint8

// NewDaySet builds a set, rejecting invalid weekdays.
func NewDaySet(days ...Weekday) (DaySet, error) {
	var s DaySet
	for _, d := range days {
		if !d.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownWeekday, int(d))
		}
		s |= 1 << (d - 1)
	}
	return s, nil
}

// Has reports whether d is in the set.
func (s DaySet) Has(d Weekday) bool {
	return d.Valid() && s&(1<<(d-1)) != 0
}

// Empty reports whether no weekday is set.
func (s DaySet) Empty() bool { return s == 0 }

// Weekdays lists the members in Monday..Sunday order.
func (s DaySet) Weekdays() []Weekday {
	out := make([]Weekday, 0, 7)
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Encode returns the stored form, a JSON array of ISO weekday numbers.
func (s DaySet) Encode() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// MarshalJSON renders the set as an array of ISO weekday numbers.
func (s DaySet) MarshalJSON() ([]byte, error) {
	days := s.Weekdays()
	nums := make([]int, len(days))
	for i, d := range days {
		nums[i] = int(d)
	}
	return json.Marshal(nums)
}

// DecodeDaySet interprets a stored active-day field. Two encodings are accepted:
// a JSON array of weekday numbers or names, or a single bare token. A blank,
// "undefined" or "null" field decodes to the empty set. Anything else is an error.
func DecodeDaySet(raw string) (DaySet, error) {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "undefined", "null":
		return 0, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return 0, fmt.Errorf("decode day set %q: %w", raw, err)
		}
		var s DaySet
		for _, item := range items {
			d, err := decodeDayItem(item)
			if err != nil {
				return 0, fmt.Errorf("decode day set %q: %w", raw, err)
			}
			s |= 1 << (d - 1)
		}
		return s, nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var token string
		if err := json.Unmarshal([]byte(trimmed), &token); err != nil {
			return 0, fmt.Errorf("decode day set %q: %w", raw, err)
		}
		trimmed = token
	}
	d, err := ParseWeekday(trimmed)
	if err != nil {
		return 0, fmt.Errorf("decode day set %q: %w", raw, err)
	}
	return NewDaySet(d)
}

func decodeDayItem(item json.RawMessage) (Weekday, error) {
	var n int
	if err := json.Unmarshal(item, &n); err == nil {
		w := Weekday(n)
		if !w.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownWeekday, n)
		}
		return w, nil
	}
	var name string
	if err := json.Unmarshal(item, &name); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownWeekday, string(item))
	}
	return ParseWeekday(name)
}
