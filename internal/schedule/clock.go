package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of a window day.
const MinutesPerDay = 24 * 60

var (
	// ErrClockFormat is returned for times that are not HH:mm on a 24h clock.
	ErrClockFormat = errors.New("time must be HH:mm")
	// ErrClockStep is returned for minutes off the quarter hour.
	ErrClockStep = errors.New("minutes must be 00, 15, 30 or 45")
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidateQuarterHour checks an input time: strict HH:mm with minutes on a quarter hour.
func ValidateQuarterHour(s string) error {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrClockFormat, s)
	}
	if minute, _ := strconv.Atoi(m[2]); minute%15 != 0 {
		return fmt.Errorf("%w: %q", ErrClockStep, s)
	}
	return nil
}

// MinuteOfDay parses a stored time (HH:mm or HH:mm:ss) into minutes after midnight.
// Seconds are ignored.
func MinuteOfDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrClockFormat, s)
}

// Window is a minute-of-day range. Start is inclusive and End exclusive.
// When Start > End the window wraps past midnight.
type Window struct {
	Start int
	End   int
}

// ParseWindow builds a Window from two stored times.
func ParseWindow(start, end string) (Window, error) {
	s, err := MinuteOfDay(start)
	if err != nil {
		return Window{}, fmt.Errorf("start: %w", err)
	}
	e, err := MinuteOfDay(end)
	if err != nil {
		return Window{}, fmt.Errorf("end: %w", err)
	}
	return Window{Start: s, End: e}, nil
}

// Overnight reports whether the window crosses midnight.
func (w Window) Overnight() bool { return w.Start > w.End }

// Contains reports whether minute falls inside the window.
func (w Window) Contains(minute int) bool {
	if w.Overnight() {
		return minute >= w.Start || minute < w.End
	}
	return minute >= w.Start && minute < w.End
}
