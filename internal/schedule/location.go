package schedule

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without /usr/share/zoneinfo
)

// LoadLocation resolves an IANA zone name. A blank name yields fallback.
// "Local" is refused so that results never depend on the server's zone.
func LoadLocation(name string, fallback *time.Location) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback, nil
	}
	if name == "Local" {
		return nil, fmt.Errorf("timezone %q is not allowed", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}

// Local returns the weekday and minute of day of t as seen in loc.
func Local(t time.Time, loc *time.Location) (Weekday, int) {
	lt := t.In(loc)
	return WeekdayOf(lt.Weekday()), lt.Hour()*60 + lt.Minute()
}
